package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kss0704/codellm/internal/api"
	apierrors "github.com/kss0704/codellm/internal/errors"
	"github.com/kss0704/codellm/internal/markdown"
	"github.com/kss0704/codellm/internal/models"
	"github.com/kss0704/codellm/internal/render"
	"github.com/kss0704/codellm/internal/session"
	"github.com/kss0704/codellm/pkg/runner"
)

// Animation tick message
type animationTickMsg time.Time

// Message types for the TUI
type (
	responseMsg struct {
		text string
	}
	errMsg struct {
		err error
	}
	// runDoneMsg is sent when an executed code snippet finishes.
	runDoneMsg struct {
		index  int
		lang   string
		result *runner.Result
	}
)

// Roles for chat transcript entries. User and assistant entries mirror
// the session history; run entries are local execution results.
const (
	entryUser      = "user"
	entryAssistant = "assistant"
	entryRun       = "run"
	entryNotice    = "notice"
)

// chatMessage represents an entry in the transcript view
type chatMessage struct {
	role    string
	content string
}

// Model represents the TUI state
type Model struct {
	client *api.Client
	sess   *session.Session
	runner *runner.Runner
	params models.Params

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	messages       []chatMessage
	loading        bool
	loadingText    string
	ready          bool
	err            error
	animationFrame int // Frame counter for loading animation

	// Model selection state
	selectingModel bool
	modelCursor    int
	modelFilter    string

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a new chat TUI model
func NewChatModel(client *api.Client, sess *session.Session, params models.Params) Model {
	// Create textarea for input
	ta := textarea.New()
	ta.Placeholder = "Ask a coding question, or /run N to execute a snippet..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	// Style the textarea
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	// Create spinner
	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	m := Model{
		client:   client,
		sess:     sess,
		runner:   runner.New(),
		params:   params.Clamped(),
		textarea: ta,
		spinner:  s,
	}

	// Rehydrate the transcript from an existing session.
	for _, msg := range sess.Messages() {
		m.messages = append(m.messages, chatMessage{
			role:    msg.Role,
			content: msg.Content,
		})
	}
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	// Handle model selection mode
	if m.selectingModel {
		return m.updateModelSelection(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Calculate component heights
		headerHeight := 4 // Header panel with border
		inputHeight := 6  // Input panel with border
		statusHeight := 1 // Status bar
		padding := 2      // Extra spacing

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}

		contentWidth := m.width - 4

		// Initialize viewport on first size message
		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.textarea.SetWidth(contentWidth - 4)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
			m.textarea.SetWidth(contentWidth - 4)
		}
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.loading {
				m.loading = false
			} else {
				return m, tea.Quit
			}

		case "enter":
			if !m.loading && strings.TrimSpace(m.textarea.Value()) != "" {
				input := strings.TrimSpace(m.textarea.Value())
				return m.handleInput(input)
			}
		}

	case responseMsg:
		m.loading = false
		m.sess.Append(models.RoleAssistant, msg.text)
		m.messages = append(m.messages, chatMessage{
			role:    entryAssistant,
			content: msg.text,
		})
		m.updateViewport()
		m.viewport.GotoBottom()

	case runDoneMsg:
		m.loading = false
		m.messages = append(m.messages, chatMessage{
			role:    entryRun,
			content: formatRunResult(msg.index, msg.lang, msg.result),
		})
		m.updateViewport()
		m.viewport.GotoBottom()

	case errMsg:
		m.loading = false
		m.err = msg.err

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.loading {
			m.animationFrame++
			cmds = append(cmds, animationTick())
		}
	}

	// Update child components - only pass KeyMsg to textarea to prevent escape sequence leaks
	if !m.loading {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleInput dispatches a submitted input line: slash commands are
// handled locally, everything else goes to the API.
func (m Model) handleInput(input string) (tea.Model, tea.Cmd) {
	switch {
	case input == "exit" || input == "quit" || input == "/exit" || input == "/quit":
		return m, tea.Quit

	case input == "/clear":
		m.textarea.Reset()
		m.sess.Clear()
		m.messages = nil
		m.err = nil
		m.updateViewport()
		return m, nil

	case input == "/models" || input == "/model":
		m.textarea.Reset()
		m.selectingModel = true
		m.modelCursor = 0
		m.modelFilter = ""
		return m, nil

	case strings.HasPrefix(input, "/run"):
		m.textarea.Reset()
		return m.handleRun(strings.TrimSpace(strings.TrimPrefix(input, "/run")))
	}

	// Regular prompt: record it and fire the completion request.
	m.textarea.Reset()
	m.sess.Append(models.RoleUser, input)
	m.messages = append(m.messages, chatMessage{
		role:    entryUser,
		content: input,
	})
	m.updateViewport()
	m.viewport.GotoBottom()

	m.loading = true
	m.loadingText = "CodeMaster is thinking"
	m.err = nil
	m.animationFrame = 0

	return m, tea.Batch(
		m.sendMessage(),
		m.spinner.Tick,
		animationTick(),
	)
}

// handleRun executes the Nth code block of the latest assistant reply.
func (m Model) handleRun(arg string) (tea.Model, tea.Cmd) {
	last, ok := m.sess.Last(models.RoleAssistant)
	if !ok {
		m.messages = append(m.messages, chatMessage{
			role:    entryNotice,
			content: "Nothing to run yet: no assistant reply in this session.",
		})
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, nil
	}

	blocks := markdown.ExtractCodeBlocks(last.Content)
	if len(blocks) == 0 {
		m.messages = append(m.messages, chatMessage{
			role:    entryNotice,
			content: "The latest reply contains no code blocks.",
		})
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, nil
	}

	n := 1
	if arg != "" {
		v, err := strconv.Atoi(arg)
		if err != nil || v < 1 || v > len(blocks) {
			m.messages = append(m.messages, chatMessage{
				role:    entryNotice,
				content: fmt.Sprintf("Usage: /run N with N between 1 and %d.", len(blocks)),
			})
			m.updateViewport()
			m.viewport.GotoBottom()
			return m, nil
		}
		n = v
	}

	block := blocks[n-1]
	if !runner.IsExecutable(block.Language) {
		m.messages = append(m.messages, chatMessage{
			role:    entryNotice,
			content: fmt.Sprintf("Language %q is not supported for execution. Only python and javascript snippets run locally.", block.Language),
		})
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, nil
	}

	m.loading = true
	m.loadingText = fmt.Sprintf("Running snippet %d (%s)", n, block.Language)
	m.err = nil
	m.animationFrame = 0

	return m, tea.Batch(
		m.runSnippet(block, n),
		m.spinner.Tick,
		animationTick(),
	)
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	if m.selectingModel {
		return m.renderModelSelector()
	}

	var sections []string
	contentWidth := m.width - 4

	// Header
	headerParts := []string{
		titleStyle.Render("⌘ CodeLLM Chat"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.client.Model().Label),
	}
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center, headerParts...)
	header := headerStyle.Width(contentWidth).Render(headerContent)
	sections = append(sections, header)

	// Messages area
	var messagesContent string
	if len(m.messages) == 0 {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}

	messagesPanel := messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent)
	sections = append(sections, messagesPanel)

	// Input area
	var inputContent string
	if m.loading {
		inputContent = m.renderLoadingAnimation()
	} else {
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	}

	inputPanel := inputPanelStyle.Width(contentWidth).Render(inputContent)
	sections = append(sections, inputPanel)

	// Status bar
	sections = append(sections, m.renderStatusBar(contentWidth))

	// Error display
	if m.err != nil {
		sections = append(sections, m.formatError(m.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderWelcome renders the welcome screen when no messages exist
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	icon := welcomeIconStyle.Width(width).Render("⌘")
	title := welcomeTitleStyle.Width(width).Render("Welcome to CodeLLM")
	subtitle := welcomeStyle.Width(width).Render(
		"Ask a coding question to get started.\n" +
			"/models picks a model, /run N executes a snippet, /clear resets the session.",
	)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		icon,
		"",
		title,
		"",
		subtitle,
		"",
	)

	// Center vertically
	contentHeight := lipgloss.Height(content)
	topPadding := (height - contentHeight) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

// renderLoadingAnimation renders a colorful animated loading indicator
func (m Model) renderLoadingAnimation() string {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	barChars := []string{"█", "█", "█", "█", "█", "█", "█", "█", "▓", "▒", "░"}

	frame := m.animationFrame

	spinIdx := frame % len(chars)
	spinColor := gradientColors[frame%len(gradientColors)]
	spin := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[spinIdx])

	barWidth := 20
	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		colorIdx := (i + frame) % len(gradientColors)
		charIdx := (i + frame/2) % len(barChars)

		style := lipgloss.NewStyle().Foreground(gradientColors[colorIdx])
		bar.WriteString(style.Render(barChars[charIdx]))
	}

	dots := ""
	numDots := (frame / 3) % 4
	for i := 0; i < numDots; i++ {
		dotColor := gradientColors[(frame+i)%len(gradientColors)]
		dots += lipgloss.NewStyle().Foreground(dotColor).Render("●")
	}
	for i := numDots; i < 3; i++ {
		dots += lipgloss.NewStyle().Foreground(colorTextMute).Render("○")
	}

	text := lipgloss.NewStyle().Foreground(colorText).Render(" " + m.loadingText + " ")

	return fmt.Sprintf("%s %s %s %s", spin, bar.String(), text, dots)
}

// renderStatusBar renders the bottom status bar with shortcuts and
// session stats
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Esc", "Quit"},
		{"↑↓", "Scroll"},
		{"/run N", "Execute"},
		{"/models", "Model"},
	}

	var items []string
	for _, s := range shortcuts {
		item := lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s.key),
			statusDescStyle.Render(" "+s.desc),
		)
		items = append(items, item)
	}

	stats := m.sess.Stats()
	items = append(items, statusDescStyle.Render(
		fmt.Sprintf("%d msgs · %d chars", stats.Messages, stats.Characters),
	))

	bar := lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(items, "  │  "))
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// sendMessage creates a command that sends the session window to the API
func (m Model) sendMessage() tea.Cmd {
	outbound := m.sess.Outbound()
	return func() tea.Msg {
		text, err := m.client.Complete(context.Background(), outbound, m.params)
		if err != nil {
			return errMsg{err: err}
		}
		return responseMsg{text: text}
	}
}

// runSnippet creates a command that executes a code block locally
func (m Model) runSnippet(block markdown.CodeBlock, index int) tea.Cmd {
	r := m.runner
	return func() tea.Msg {
		res := r.Run(context.Background(), block.Code, block.Language)
		return runDoneMsg{index: index, lang: block.Language, result: res}
	}
}

// formatRunResult builds the transcript entry for a finished execution.
func formatRunResult(index int, lang string, res *runner.Result) string {
	var sb strings.Builder
	if res.Success {
		fmt.Fprintf(&sb, "snippet %d (%s) finished in %s\n", index, lang, res.Duration.Round(time.Millisecond))
	} else {
		fmt.Fprintf(&sb, "snippet %d (%s) failed (exit %d) after %s\n", index, lang, res.ExitCode, res.Duration.Round(time.Millisecond))
	}
	out := strings.TrimRight(res.Output, "\n")
	if out == "" {
		out = "(no output)"
	}
	sb.WriteString(out)
	return sb.String()
}

// updateViewport refreshes the viewport content with styled messages
func (m *Model) updateViewport() {
	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6

	for i, msg := range m.messages {
		if i > 0 {
			content.WriteString("\n")
		}

		switch msg.role {
		case entryUser:
			label := userLabelStyle.Render("⬤ You")
			bubble := userBubbleStyle.Width(bubbleWidth).Render(msg.content)
			content.WriteString(label + "\n" + bubble)

		case entryAssistant:
			label := assistantLabelStyle.Render("⌘ CodeMaster")
			content.WriteString(label + "\n")

			bubble := assistantBubbleStyle.Width(bubbleWidth).Render(
				renderAssistant(msg.content, bubbleWidth-4),
			)
			content.WriteString(bubble)

		case entryRun:
			label := runLabelStyle.Render("▶ Run")
			bubble := runBubbleStyle.Width(bubbleWidth).Render(msg.content)
			content.WriteString(label + "\n" + bubble)

		default:
			content.WriteString(hintStyle.Render(msg.content))
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// renderAssistant renders a reply segment by segment: prose goes
// through glamour, and each fenced region gets a numbered header that
// matches the /run N targets before its highlighted code.
func renderAssistant(text string, width int) string {
	blocks := markdown.ExtractCodeBlocks(text)

	var parts []string
	blockNum := 0
	for _, seg := range markdown.Segments(text) {
		if seg.Kind == markdown.SegmentFenced && blockNum < len(blocks) {
			block := blocks[blockNum]
			blockNum++

			tag := block.Language
			if runner.IsExecutable(tag) {
				tag += "  · /run " + strconv.Itoa(blockNum)
			} else {
				tag += "  (view only)"
			}
			header := codeBadgeStyle.Render(fmt.Sprintf("[%d]", blockNum)) + hintStyle.Render(" "+tag)

			// Re-fence the trimmed block so glamour still does the
			// syntax highlighting.
			fenced := "```" + block.Language + "\n" + block.Code + "\n```"
			rendered, err := render.MarkdownWithWidth(fenced, width)
			if err != nil {
				rendered = block.Code
			}
			parts = append(parts, header+"\n"+strings.TrimRight(rendered, "\n"))
			continue
		}

		rendered, err := render.MarkdownWithWidth(seg.Text, width)
		if err != nil {
			rendered = seg.Text
		}
		parts = append(parts, strings.TrimRight(rendered, "\n"))
	}

	if len(parts) == 0 {
		return text
	}
	return strings.Join(parts, "\n")
}

// formatError formats an error with structured error details for display
func (m Model) formatError(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(errorStyle.Render(fmt.Sprintf("⚠ Error: %v", err)))

	detailStyle := lipgloss.NewStyle().Foreground(colorTextDim).PaddingLeft(2)

	if status := apierrors.GetHTTPStatus(err); status > 0 {
		sb.WriteString("\n")
		sb.WriteString(detailStyle.Render(fmt.Sprintf("HTTP Status: %d", status)))
	}

	if detail := apierrors.GetDetail(err); detail != "" {
		sb.WriteString("\n")
		sb.WriteString(detailStyle.Render(detail))
	}

	// Add helpful hints
	helpStyle := lipgloss.NewStyle().Foreground(colorPrimary).PaddingLeft(2)
	switch {
	case apierrors.IsAuthError(err):
		sb.WriteString("\n")
		sb.WriteString(helpStyle.Render("💡 Check your GROQ_API_KEY or pass --api-key"))
	case apierrors.IsRateLimitError(err):
		sb.WriteString("\n")
		sb.WriteString(helpStyle.Render("💡 Rate limit reached. Wait a moment or switch models with /models"))
	case apierrors.IsNetworkError(err):
		sb.WriteString("\n")
		sb.WriteString(helpStyle.Render("💡 Check your internet connection"))
	case apierrors.IsTimeoutError(err):
		sb.WriteString("\n")
		sb.WriteString(helpStyle.Render("💡 Request timed out. Try again"))
	case apierrors.IsMalformedResponseError(err):
		sb.WriteString("\n")
		sb.WriteString(helpStyle.Render("💡 The API returned an unexpected payload. Try again or switch models"))
	}

	return sb.String()
}

// updateModelSelection handles updates when in model selection mode
func (m Model) updateModelSelection(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			m.selectingModel = false
			m.modelCursor = 0
			m.modelFilter = ""

		case "up", "k":
			if n := len(m.filteredModels()); n > 0 {
				m.modelCursor--
				if m.modelCursor < 0 {
					m.modelCursor = n - 1
				}
			}

		case "down", "j":
			if n := len(m.filteredModels()); n > 0 {
				m.modelCursor++
				if m.modelCursor >= n {
					m.modelCursor = 0
				}
			}

		case "enter":
			filtered := m.filteredModels()
			if len(filtered) > 0 && m.modelCursor < len(filtered) {
				m.client.SetModel(filtered[m.modelCursor])
				m.selectingModel = false
				m.modelCursor = 0
				m.modelFilter = ""
			}

		case "backspace":
			if len(m.modelFilter) > 0 {
				m.modelFilter = m.modelFilter[:len(m.modelFilter)-1]
				m.modelCursor = 0
			}

		default:
			// Handle typing for filter (only printable characters)
			if len(msg.String()) == 1 {
				r := []rune(msg.String())[0]
				if r >= ' ' && r <= '~' {
					m.modelFilter += msg.String()
					m.modelCursor = 0
				}
			}
		}
	}

	return m, nil
}

// filteredModels returns the catalog filtered by modelFilter
func (m Model) filteredModels() []models.Model {
	catalog := models.AvailableModels()
	if m.modelFilter == "" {
		return catalog
	}

	filter := strings.ToLower(m.modelFilter)
	var filtered []models.Model
	for _, entry := range catalog {
		if strings.Contains(strings.ToLower(entry.ID), filter) ||
			strings.Contains(strings.ToLower(entry.Label), filter) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

func tierStyleFor(t models.Tier) lipgloss.Style {
	switch t {
	case models.TierRecommended:
		return tierRecommendedStyle
	case models.TierAlternative:
		return tierAlternativeStyle
	default:
		return tierLegacyStyle
	}
}

// renderModelSelector renders the model selection overlay
func (m Model) renderModelSelector() string {
	width := m.width - 8
	if width < 40 {
		width = 40
	}

	var content strings.Builder

	title := selectorTitleStyle.Render("⚙ Select a Model")
	title += hintStyle.Render(fmt.Sprintf("  (current: %s)", m.client.Model().ID))
	content.WriteString(title)
	content.WriteString("\n\n")

	if m.modelFilter != "" {
		filterLine := inputLabelStyle.Render("🔍 ") + m.modelFilter + "_"
		content.WriteString(filterLine)
		content.WriteString("\n\n")
	}

	filtered := m.filteredModels()
	if len(filtered) == 0 {
		content.WriteString(hintStyle.Render("  No models match filter"))
		content.WriteString("\n")
	} else {
		for i, entry := range filtered {
			cursor := "  "
			nameStyle := selectorItemStyle
			if i == m.modelCursor {
				cursor = selectorCursorStyle.Render("▸ ")
				nameStyle = selectorSelectedStyle
			}

			tier := tierStyleFor(entry.Tier).Render("[" + entry.Tier.String() + "]")
			line := fmt.Sprintf("%s%s %s %s", cursor, nameStyle.Render(entry.Label), tier,
				hintStyle.Render(entry.ID))

			content.WriteString(line)
			content.WriteString("\n")
		}
	}

	content.WriteString("\n")

	shortcuts := []string{
		statusKeyStyle.Render("↑↓") + statusDescStyle.Render(" Navigate"),
		statusKeyStyle.Render("Enter") + statusDescStyle.Render(" Select"),
		statusKeyStyle.Render("Esc") + statusDescStyle.Render(" Cancel"),
	}
	content.WriteString(strings.Join(shortcuts, "  │  "))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(1, 2).
		Width(width)

	return boxStyle.Render(content.String())
}

// RunChat starts the chat TUI
func RunChat(client *api.Client, sess *session.Session, params models.Params) error {
	m := NewChatModel(client, sess, params)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
