// Package runner executes code snippets extracted from model responses.
// The language registry declares every tag the assistant is likely to
// emit with its file extension and toolchain command; only the tags
// marked Supported are ever executed.
package runner

import "sort"

// Language describes one registry entry.
type Language struct {
	// Tag is the fenced-code-block language tag.
	Tag string
	// Ext is the file extension used for the temporary snippet file.
	Ext string
	// Command is the interpreter or toolchain binary associated with the
	// tag. For unsupported languages it is declarative metadata only.
	Command string
	// Supported marks languages the runner will actually execute.
	Supported bool
}

// registry enumerates the declared language tags. Only python and
// javascript are executable; the rest are declared-but-unsupported.
var registry = map[string]Language{
	"python":     {Tag: "python", Ext: ".py", Command: "python3", Supported: true},
	"javascript": {Tag: "javascript", Ext: ".js", Command: "node", Supported: true},
	"java":       {Tag: "java", Ext: ".java", Command: "java"},
	"cpp":        {Tag: "cpp", Ext: ".cpp", Command: "g++"},
	"c":          {Tag: "c", Ext: ".c", Command: "gcc"},
	"go":         {Tag: "go", Ext: ".go", Command: "go"},
	"rust":       {Tag: "rust", Ext: ".rs", Command: "rustc"},
	"php":        {Tag: "php", Ext: ".php", Command: "php"},
	"ruby":       {Tag: "ruby", Ext: ".rb", Command: "ruby"},
	"swift":      {Tag: "swift", Ext: ".swift", Command: "swift"},
	"kotlin":     {Tag: "kotlin", Ext: ".kt", Command: "kotlinc"},
	"typescript": {Tag: "typescript", Ext: ".ts", Command: "ts-node"},
	"bash":       {Tag: "bash", Ext: ".sh", Command: "bash"},
	"powershell": {Tag: "powershell", Ext: ".ps1", Command: "powershell"},
	"sql":        {Tag: "sql", Ext: ".sql", Command: "sqlite3"},
	"html":       {Tag: "html", Ext: ".html", Command: "browser"},
	"css":        {Tag: "css", Ext: ".css", Command: "browser"},
	"r":          {Tag: "r", Ext: ".r", Command: "Rscript"},
	"matlab":     {Tag: "matlab", Ext: ".m", Command: "octave"},
}

// Lookup resolves a language tag to its registry entry.
func Lookup(tag string) (Language, bool) {
	lang, ok := registry[tag]
	return lang, ok
}

// IsExecutable reports whether the runner can execute snippets with the
// given tag.
func IsExecutable(tag string) bool {
	lang, ok := registry[tag]
	return ok && lang.Supported
}

// Languages returns all registry entries sorted by tag.
func Languages() []Language {
	out := make([]Language, 0, len(registry))
	for _, lang := range registry {
		out = append(out, lang)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Tag < out[j].Tag
	})
	return out
}
