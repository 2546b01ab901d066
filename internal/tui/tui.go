// Package tui renders the room navigator: description and event on the
// left, map and variables on the right, actions picked by number.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/storywalk/internal/models"
	"github.com/tatianab/storywalk/internal/world"
)

// generateTimeout bounds every generator call made from the UI.
const generateTimeout = 90 * time.Second

type model struct {
	session  *world.Session
	viewport viewport.Model
	pending  bool
	errText  string
	gameLog  string
	width    int
	height   int
}

var (
	roomStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	eventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	canonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87D787")).
			Bold(true)

	nonCanonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D78787")).
			Bold(true)

	deadActionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555")).
			Strikethrough(true)

	sideStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555"))
)

func NewModel(session *world.Session) model {
	m := model{session: session}
	m.gameLog = m.roomText()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

type movedMsg struct {
	moved bool
}

type actedMsg struct {
	description string
}

type genFailedMsg struct {
	err error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		if m.pending {
			return m, nil
		}
		switch msg.Type {
		case tea.KeyUp:
			return m.startMove(models.North)
		case tea.KeyDown:
			return m.startMove(models.South)
		case tea.KeyRight:
			return m.startMove(models.East)
		case tea.KeyLeft:
			return m.startMove(models.West)
		}
		if n := actionIndex(msg.String()); n >= 0 && n < len(m.session.Actions()) {
			action := m.session.Actions()[n]
			m.pending = true
			m.errText = ""
			return m, m.takeAction(action)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = int(float64(msg.Width) * 0.55)
		m.viewport.Height = msg.Height - 8
		m.viewport.SetContent(m.gameLog)
		m.viewport.GotoBottom()

	case movedMsg:
		m.pending = false
		if msg.moved {
			m.gameLog += "\n\n" + m.roomText()
			m.viewport.SetContent(m.gameLog)
			m.viewport.GotoBottom()
		}
		return m, nil

	case actedMsg:
		m.pending = false
		m.gameLog += "\n\n> " + msg.description
		m.viewport.SetContent(m.gameLog)
		m.viewport.GotoBottom()
		return m, nil

	case genFailedMsg:
		// Prior state is intact; just surface the failure and allow a retry.
		m.pending = false
		m.errText = msg.err.Error()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) startMove(dir models.Direction) (tea.Model, tea.Cmd) {
	if _, ok := m.session.Graph().Neighbor(m.session.CurrentRoom(), dir); !ok {
		// Closed direction: inert, not an error.
		return m, nil
	}
	m.pending = true
	m.errText = ""
	return m, m.move(dir)
}

func (m model) move(dir models.Direction) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		defer cancel()
		moved, err := m.session.Move(ctx, dir)
		if err != nil {
			return genFailedMsg{err}
		}
		return movedMsg{moved}
	}
}

func (m model) takeAction(action models.Action) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		defer cancel()
		if err := m.session.TakeAction(ctx, action); err != nil {
			return genFailedMsg{err}
		}
		return actedMsg{action.Description}
	}
}

func (m model) View() string {
	logView := m.viewport.View()
	actions := m.renderActions()
	side := m.renderSide()

	mainView := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, logView, "\n"+actions),
		side,
	)

	status := ""
	if m.pending {
		status = helpStyle.Render("Generating...")
	} else if m.errText != "" {
		status = errStyle.Render("Generation failed: "+m.errText) + "\n" +
			helpStyle.Render("The world is unchanged; try again.")
	}

	help := helpStyle.Render("Arrows to move, 1-9 to act, q to quit.")

	return "\n" + lipgloss.JoinVertical(lipgloss.Left, mainView, "\n"+status, help) + "\n"
}

func (m model) roomText() string {
	room := m.session.CurrentRoom()
	event := m.session.CurrentEvent()

	kind := canonStyle.Render("Canon Event")
	if !event.Canon {
		kind = nonCanonStyle.Render("Non-Canon Event")
	}

	width := int(float64(m.width) * 0.55)
	if width <= 0 {
		width = 60
	}
	body := eventStyle.Width(width).Render(room.Description) + "\n\n" +
		kind + ": " + eventStyle.Width(width).Render(event.Text)
	out := roomStyle.Render(room.Name) + "\n" + body
	if room.ImagePath != "" {
		out += "\n" + helpStyle.Render("Illustration: "+room.ImagePath)
	}
	return out
}

func (m model) renderActions() string {
	actions := m.session.Actions()
	if len(actions) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(roomStyle.Render("ACTIONS") + "\n")
	for i, action := range actions {
		line := fmt.Sprintf("%d. %s", i+1, action.Description)
		if !m.session.Actionable(action) {
			// Flag actions whose variables aren't tracked; they'd have no effect.
			line = deadActionStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m model) renderSide() string {
	mapView := roomStyle.Render("MAP") + "\n" + renderMap(m.session.Graph())

	varsView := roomStyle.Render("VARIABLES") + "\n"
	store := m.session.Variables()
	for _, name := range store.Names() {
		v, _ := store.Get(name)
		varsView += fmt.Sprintf("%s: %s\n", name, v)
	}

	route := "on canon route"
	if !m.session.OnCanon() {
		route = "off canon route"
	}

	width := int(float64(m.width) * 0.4)
	if width <= 0 {
		width = 40
	}
	return sideStyle.Width(width).Render(mapView + "\n" + varsView + "\n" + helpStyle.Render(route))
}

// actionIndex maps a digit key to an action slot, -1 otherwise.
func actionIndex(key string) int {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return -1
	}
	return int(key[0] - '1')
}

// Run starts the navigator for a prepared session.
func Run(session *world.Session) error {
	p := tea.NewProgram(NewModel(session), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
