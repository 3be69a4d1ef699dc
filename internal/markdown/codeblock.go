// Package markdown extracts fenced code blocks from model responses and
// partitions message content into prose and fenced segments for rendering.
package markdown

import (
	"regexp"
	"strings"
)

// DefaultLanguage is assigned to fences that carry no language tag.
const DefaultLanguage = "text"

// CodeBlock is a fenced region extracted from a message. Language is
// never empty; untagged fences default to "text".
type CodeBlock struct {
	Language string
	Code     string
}

// fenceRe matches a fenced region: an opening triple-backtick fence with an
// optional immediately-following language tag, then a body matched
// non-greedily across newlines up to the closing fence.
var fenceRe = regexp.MustCompile("(?s)```(\\w*)\\n(.*?)```")

// ExtractCodeBlocks scans text for fenced regions and returns them in
// source order. Zero blocks is a valid result for plain-text messages.
func ExtractCodeBlocks(text string) []CodeBlock {
	matches := fenceRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	blocks := make([]CodeBlock, 0, len(matches))
	for _, m := range matches {
		lang := m[1]
		if lang == "" {
			lang = DefaultLanguage
		}
		blocks = append(blocks, CodeBlock{
			Language: lang,
			Code:     strings.TrimSpace(m[2]),
		})
	}
	return blocks
}

// SegmentKind distinguishes prose from fenced regions.
type SegmentKind int

const (
	SegmentProse SegmentKind = iota
	SegmentFenced
)

// Segment is one rendering unit of a message: either accumulated prose
// or the interior of a fenced region (fence lines themselves excluded).
type Segment struct {
	Kind SegmentKind
	Text string
}

// Segments partitions text line-by-line into alternating prose and fenced
// segments, toggling on lines whose trimmed form starts with a triple
// backtick. For well-formed input (no unterminated fences) the fenced
// segment count agrees with ExtractCodeBlocks.
func Segments(text string) []Segment {
	var segments []Segment
	var current []string
	inFence := false

	flush := func(kind SegmentKind) {
		if len(current) == 0 {
			return
		}
		segments = append(segments, Segment{
			Kind: kind,
			Text: strings.Join(current, "\n"),
		})
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if inFence {
				flush(SegmentFenced)
			} else {
				flush(SegmentProse)
			}
			inFence = !inFence
			continue
		}
		current = append(current, line)
	}

	if inFence {
		flush(SegmentFenced)
	} else {
		flush(SegmentProse)
	}

	return segments
}

// FencedCount returns the number of fenced segments in text.
func FencedCount(text string) int {
	n := 0
	for _, seg := range Segments(text) {
		if seg.Kind == SegmentFenced {
			n++
		}
	}
	return n
}
