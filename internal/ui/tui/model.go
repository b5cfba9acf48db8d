package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// recentKeys is how many recently encrypted keys the dashboard shows.
const recentKeys = 5

// RunInfo identifies the run shown in the header.
type RunInfo struct {
	Bucket string
	Region string
	Cipher string
}

// Model is the Bubble Tea model for the re-encryption dashboard.
type Model struct {
	Info RunInfo

	// Listing
	Phase  string
	Pages  int
	Listed int

	// Encryption
	Processed int
	Total     int
	Bytes     int64
	Retries   int
	Recent    []string
	FailedKey string

	StartTime time.Time

	// Animation
	SpinnerFrame int

	// UI state
	Width       int
	Height      int
	Err         error
	Done        bool
	Interrupted bool
}

// NewEncryptModel creates a model for the encrypt command TUI.
func NewEncryptModel(info RunInfo) Model {
	return Model{
		Info:      info,
		Phase:     "list",
		StartTime: time.Now(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Interrupted = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case PhaseMsg:
		m.Phase = msg.Phase
		if msg.Phase == "encrypt" {
			m.Total = msg.Total
		}

	case ListPageMsg:
		m.Pages = msg.Page
		m.Listed = msg.Listed

	case ObjectMsg:
		m.updateObject(msg)

	case RetryMsg:
		m.Retries++

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) updateObject(msg ObjectMsg) {
	m.Total = msg.Total
	if msg.Err != nil {
		m.FailedKey = msg.Key
		return
	}
	// Progress only moves forward.
	if msg.Processed > m.Processed {
		m.Processed = msg.Processed
	}
	m.Bytes += msg.Bytes
	m.Recent = append(m.Recent, msg.Key)
	if len(m.Recent) > recentKeys {
		m.Recent = m.Recent[len(m.Recent)-recentKeys:]
	}
}

// progress returns the completed fraction of the run in [0, 1].
func (m Model) progress() float64 {
	switch {
	case m.Done:
		return 1
	case m.Phase != "encrypt" || m.Total == 0:
		return 0
	}
	return float64(m.Processed) / float64(m.Total)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
