package tui

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/crsthn-slv/poker-game-sub001/internal/equity"
	"github.com/crsthn-slv/poker-game-sub001/internal/randutil"
	"github.com/crsthn-slv/poker-game-sub001/poker"
)

// resultMsg delivers a finished estimate back to the update loop.
type resultMsg struct {
	query   Query
	result  equity.Result
	elapsed time.Duration
}

// Model is the Bubble Tea model for the interactive equity explorer.
// Estimates run as commands so the input stays live while a batch is
// in flight; results append to the history when they land.
type Model struct {
	estimator *equity.Estimator
	logger    *log.Logger

	historyViewport viewport.Model
	queryInput      textinput.Model

	history     []string
	running     int // estimates in flight
	focusedPane int // 0 = history, 1 = input
	width       int
	height      int
	initialized bool
	quitting    bool

	// Each query gets its own rng derived from the seeder so that
	// concurrent estimates never share one stream.
	mu     sync.Mutex
	seeder *rand.Rand
}

// New creates an explorer model around the shared estimator. The seed
// drives every estimate the session runs; a fixed seed replays the
// whole session.
func New(estimator *equity.Estimator, seed int64, logger *log.Logger) *Model {
	// Viewport gets minimal initial size; WindowSizeMsg fixes it up
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "SA SK / H7 D8 C9 vs 2 x 5000"
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 100
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	m := &Model{
		estimator:       estimator,
		logger:          logger.WithPrefix("tui"),
		historyViewport: vp,
		queryInput:      ti,
		focusedPane:     1, // Start with input focused
		seeder:          randutil.New(seed),
	}
	m.appendLines(
		HeaderStyle.Render(" Equity explorer "),
		"",
		InfoStyle.Render("Enter a hole, an optional board, and press Enter to estimate."),
		InfoStyle.Render("Type 'help' for the query syntax, 'quit' to leave."),
		"",
	)
	return m
}

// Init initializes the explorer model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the explorer
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case resultMsg:
		m.running--
		m.appendResult(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.logger.Debug("Updating dimensions", "width", msg.Width, "height", msg.Height)
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			// Switch focus between history and input
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.queryInput.Focus()
			} else {
				m.focusedPane = 0
				m.queryInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 { // Only process enter in input pane
				query := strings.TrimSpace(m.queryInput.Value())
				m.queryInput.SetValue("")
				if cmd := m.handleQuery(query); cmd != nil {
					cmds = append(cmds, cmd)
				}
				if m.quitting {
					return m, tea.Batch(cmds...)
				}
			}
		case "up", "k":
			if m.focusedPane == 0 { // History pane focused
				m.historyViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 { // History pane focused
				m.historyViewport.ScrollDown(1)
			}
		case "pgup", "b":
			if m.focusedPane == 0 { // History pane focused
				m.historyViewport.HalfPageUp()
			}
		case "pgdown", "f":
			if m.focusedPane == 0 { // History pane focused
				m.historyViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 { // History pane focused
				m.historyViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 { // History pane focused
				m.historyViewport.GotoBottom()
			}
		}
	}

	// Update components
	var cmd tea.Cmd

	// Only update input if it's focused
	if m.focusedPane == 1 {
		m.queryInput, cmd = m.queryInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Always update viewport (for scrolling)
	m.historyViewport, cmd = m.historyViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleQuery turns one line of input into history output and, for
// estimate queries, the command that runs the batch.
func (m *Model) handleQuery(input string) tea.Cmd {
	switch strings.ToLower(input) {
	case "":
		return nil
	case "quit", "exit":
		m.quitting = true
		return tea.Sequence(tea.ClearScreen, tea.Quit)
	case "clear":
		m.history = nil
		m.historyViewport.SetContent("")
		return nil
	case "help":
		m.appendLines(helpLines()...)
		return nil
	}

	m.appendLines(PromptStyle.Render("> " + input))

	query, err := ParseQuery(input)
	if err != nil {
		m.appendLines(ErrorStyle.Render("  " + err.Error()))
		return nil
	}

	m.running++
	rng := m.nextRNG()
	estimator := m.estimator
	return func() tea.Msg {
		start := time.Now()
		result := estimator.Estimate(equity.Request{
			Hole:       query.Hole,
			Community:  query.Board,
			Opponents:  query.Opponents,
			Iterations: query.Iterations,
		}, rng)
		return resultMsg{query: query, result: result, elapsed: time.Since(start)}
	}
}

// appendResult renders a finished estimate into the history. The header
// restates the query so interleaved async results stay readable.
func (m *Model) appendResult(msg resultMsg) {
	query := msg.query
	result := msg.result

	header := m.formatCards(query.Hole)
	if key := poker.HoleKey(query.Hole); key != "" {
		header += " " + SuccessStyle.Render("("+key+")")
	}
	if len(query.Board) > 0 {
		header += "  board " + m.formatCards(query.Board)
	}
	header += fmt.Sprintf("  vs %d", query.Opponents)

	if result.Trials == 0 {
		m.appendLines(
			"  "+header,
			ErrorStyle.Render("  no trials possible for this deal"),
			"",
		)
		return
	}

	lower, upper := result.ConfidenceInterval()
	m.appendLines(
		"  "+header,
		fmt.Sprintf("  %s  %s",
			ResultStyle.Render(fmt.Sprintf("win %.1f%%", result.Percent())),
			InfoStyle.Render(fmt.Sprintf("ci %.1f-%.1f · wins %d · ties %d · trials %d · %s",
				lower*100, upper*100, result.Wins, result.Ties, result.Trials,
				msg.elapsed.Round(time.Millisecond)))),
		"",
	)
}

func (m *Model) appendLines(lines ...string) {
	m.history = append(m.history, lines...)
	m.historyViewport.SetContent(strings.Join(m.history, "\n"))
	m.historyViewport.GotoBottom()
}

func (m *Model) nextRNG() *rand.Rand {
	m.mu.Lock()
	defer m.mu.Unlock()
	return randutil.New(m.seeder.Int63())
}

func helpLines() []string {
	return []string{
		InfoStyle.Render("  query: <hole> [/ <board>] [vs N] [x ITERS]"),
		InfoStyle.Render("  cards are suit then rank: SA = ace of spades, HT = ten of hearts"),
		InfoStyle.Render("  example: SA SK / H7 D8 C9 vs 2 x 10000"),
		InfoStyle.Render("  commands: help, clear, quit"),
		"",
	}
}

// View renders the explorer
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	// Don't render until we have valid dimensions
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Input pane (bottom, full width)
	inputContent := m.renderInputPane()
	inputHeight := lipgloss.Height(inputContent)
	calculatedInputWidth := m.width - 2      // Full width minus border
	calculatedInputHeight := inputHeight - 2 // Content height minus border

	// Ensure input pane dimensions are valid (minimum 1x1)
	if calculatedInputWidth < 1 {
		calculatedInputWidth = 1
	}
	if calculatedInputHeight < 1 {
		calculatedInputHeight = 1
	}

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(calculatedInputWidth).
		Height(calculatedInputHeight)

	if m.focusedPane == 1 {
		inputStyle = inputStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	inputPane := inputStyle.Render(inputContent)

	// Sidebar pane (right side of history pane, same height)
	sidebarContent := m.renderSidebarPane()
	sidebarWidth := lipgloss.Width(sidebarContent)

	calculatedSidebarWidth := 25
	if sidebarWidth > calculatedSidebarWidth {
		calculatedSidebarWidth = sidebarWidth
	}

	calculatedSidebarHeight := m.height - inputHeight - 4 // Account for border x 2 and input pane

	// Ensure sidebar dimensions are valid (minimum 1x1)
	if calculatedSidebarWidth < 1 {
		calculatedSidebarWidth = 1
	}
	if calculatedSidebarHeight < 1 {
		calculatedSidebarHeight = 1
	}

	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(calculatedSidebarWidth).
		Height(calculatedSidebarHeight)

	sidebarPane := sidebarStyle.Render(sidebarContent)

	// History pane (top, fills height minus input pane)
	calculatedHistoryWidth := m.width - calculatedSidebarWidth - 4 // Account for border x 2 and sidebar
	calculatedHistoryHeight := m.height - inputHeight - 4          // Account for border x 2 and input pane

	// Ensure viewport dimensions are valid (minimum 1x1)
	if calculatedHistoryWidth < 1 {
		calculatedHistoryWidth = 1
	}
	if calculatedHistoryHeight < 1 {
		calculatedHistoryHeight = 1
	}

	m.historyViewport.Width = calculatedHistoryWidth
	m.historyViewport.Height = calculatedHistoryHeight

	// On first proper sizing, reset to top to avoid starting scrolled down
	if !m.initialized && calculatedHistoryWidth > 1 && calculatedHistoryHeight > 1 {
		m.historyViewport.GotoTop()
		m.initialized = true
	}

	historyStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(calculatedHistoryWidth).
		Height(calculatedHistoryHeight)

	if m.focusedPane == 0 {
		historyStyle = historyStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	historyPane := historyStyle.Render(m.historyViewport.View())

	// Top row (history pane + sidebar pane)
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, historyPane, sidebarPane)

	return lipgloss.JoinVertical(lipgloss.Top, topRow, inputPane)
}

// renderSidebarPane creates the sidebar content
func (m *Model) renderSidebarPane() string {
	var content strings.Builder

	content.WriteString(InfoStyle.Render("Estimator"))
	content.WriteString("\n")
	content.WriteString(fmt.Sprintf("  hands: %s\n", m.estimator.Completion()))
	content.WriteString(fmt.Sprintf("  ties:  %s\n", m.estimator.TiePolicy()))
	content.WriteString(fmt.Sprintf("  iters: %d default\n", equity.DefaultIterations))

	if m.running > 0 {
		content.WriteString("\n")
		content.WriteString(WarningStyle.Render(fmt.Sprintf("%d estimate(s) running", m.running)))
		content.WriteString("\n")
	}

	return content.String()
}

// renderInputPane renders the query input pane
func (m *Model) renderInputPane() string {
	var content strings.Builder

	content.WriteString(m.queryInput.View())
	content.WriteString("\n")

	// Show help text
	if m.focusedPane == 0 {
		content.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).Render(
			"History focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"))
	} else {
		content.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).Render(
			"Tab to scroll history • Enter to estimate • Ctrl+C to quit"))
	}

	// Return content without styling - let the parent handle sizing and focus
	return content.String()
}

// formatCards formats cards with appropriate colors
func (m *Model) formatCards(cards []poker.Card) string {
	var formatted []string
	for _, card := range cards {
		if card.Suit.IsRed() {
			formatted = append(formatted, RedCardStyle.Render(card.String()))
		} else {
			formatted = append(formatted, BlackCardStyle.Render(card.String()))
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}
