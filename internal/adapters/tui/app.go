package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"flowshow/internal/adapters/tui/styles"
	"flowshow/internal/adapters/tui/views"
	"flowshow/internal/application/controller"
	"flowshow/internal/domain"
	"flowshow/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewMain ViewState = iota
	ViewRename
	ViewHelp
)

// Focus is the pane that receives keys in the main view
type Focus int

const (
	FocusCanvas Focus = iota
	FocusPanel
)

// AppKeyMap defines the keys handled before the focused pane sees them
type AppKeyMap struct {
	Quit  key.Binding
	Focus key.Binding
	Help  key.Binding
}

var AppKeys = AppKeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Focus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch pane"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
}

// Document is the document the TUI works on: the controller's view of it
// plus the canvas operations the user performs directly
type Document interface {
	ports.Document
	ports.Host
}

// Options configures the App. Zero sizes fall back to the defaults.
type Options struct {
	Logger    zerolog.Logger
	Collapsed domain.PanelSize
	Expanded  domain.PanelSize
}

// App is the main TUI application model. bubbletea delivers every message
// to Update on one goroutine, so the controller needs no Loop here.
type App struct {
	ctx   context.Context
	ctrl  *controller.Controller
	queue *queuePanel
	log   zerolog.Logger

	state  ViewState
	focus  Focus
	canvas *views.CanvasModel
	panel  *views.FlowPanelModel
	rename *views.RenameModel
	help   *views.HelpModel

	width  int
	height int
}

type launchMsg struct{}

// NewApp creates a new TUI application over doc
func NewApp(ctx context.Context, doc Document, opts Options) *App {
	if opts.Collapsed == (domain.PanelSize{}) {
		opts.Collapsed = domain.PanelSize{Width: domain.DefaultPanelWidth, Height: domain.DefaultCollapsedHeight}
	}
	if opts.Expanded == (domain.PanelSize{}) {
		opts.Expanded = domain.PanelSize{Width: domain.DefaultPanelWidth, Height: domain.DefaultExpandedHeight}
	}

	queue := &queuePanel{}
	a := &App{
		ctx:   ctx,
		queue: queue,
		log:   opts.Logger.With().Str("component", "tui").Logger(),
		ctrl: controller.New(doc, queue,
			controller.WithLogger(opts.Logger),
			controller.WithPanelSizes(opts.Collapsed, opts.Expanded),
		),
		canvas: views.NewCanvasModel(doc),
		panel:  views.NewFlowPanelModel(opts.Collapsed),
		help:   views.NewHelpModel(),
	}
	a.setFocus(FocusCanvas)
	return a
}

// Init loads the canvas and launches the controller
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.canvas.Init(),
		func() tea.Msg { return launchMsg{} },
	)
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.canvas.SetSize(a.canvasWidth(), msg.Height-2)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case launchMsg:
		a.report(a.ctrl.Launch(a.ctx))
		a.flush()
		return a, nil

	case views.SelectionChangedMsg:
		a.report(a.ctrl.SelectionChanged(a.ctx))
		a.flush()
		return a, a.canvas.Reload()

	case views.DocumentChangedMsg:
		a.canvas.SetMessage(msg.Message, false)
		return a, a.canvas.Reload()

	case views.IntentMsg:
		err := a.ctrl.HandleIntent(a.ctx, msg.Intent)
		a.report(err)
		if err == nil && msg.Intent.Type == domain.IntentSaveFlowNames {
			a.panel.SetNames(msg.Intent.NameArray)
			a.panel.SetMessage("Flow names saved", false)
		}
		a.flush()
		return a, a.canvas.Reload()

	case views.ErrMsg:
		a.report(msg.Err)
		return a, nil

	case views.SwitchToRenameMsg:
		a.rename = views.NewRenameModel(msg.Names)
		a.state = ViewRename
		return a, a.rename.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToMainMsg:
		a.state = ViewMain
		return a, nil
	}

	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey && keyMsg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	var cmds []tea.Cmd
	if !isKey {
		// canvas loads finish in the background whatever the view
		_, cmd := a.canvas.Update(msg)
		cmds = append(cmds, cmd)
	}

	switch a.state {
	case ViewRename:
		_, cmd := a.rename.Update(msg)
		cmds = append(cmds, cmd)
	case ViewHelp:
		_, cmd := a.help.Update(msg)
		cmds = append(cmds, cmd)
	default:
		if isKey {
			cmds = append(cmds, a.handleMainKey(keyMsg))
		}
	}

	return a, tea.Batch(cmds...)
}

func (a *App) handleMainKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, AppKeys.Quit):
		return tea.Quit

	case key.Matches(msg, AppKeys.Focus):
		if a.focus == FocusCanvas {
			a.setFocus(FocusPanel)
		} else {
			a.setFocus(FocusCanvas)
		}
		return nil

	case key.Matches(msg, AppKeys.Help):
		return func() tea.Msg { return views.SwitchToHelpMsg{} }
	}

	var cmd tea.Cmd
	if a.focus == FocusPanel {
		_, cmd = a.panel.Update(msg)
	} else {
		_, cmd = a.canvas.Update(msg)
	}
	return cmd
}

func (a *App) setFocus(f Focus) {
	a.focus = f
	a.canvas.Focused = f == FocusCanvas
	a.panel.Focused = f == FocusPanel
}

// flush applies what the controller posted to the panel
func (a *App) flush() {
	updates, sizes := a.queue.drain()
	for _, u := range updates {
		a.panel.Apply(u)
	}
	for _, s := range sizes {
		a.panel.Resize(s)
	}
	if len(sizes) > 0 {
		a.canvas.SetSize(a.canvasWidth(), a.height-2)
	}
}

func (a *App) report(err error) {
	if err == nil {
		return
	}
	a.log.Error().Err(err).Msg("controller call failed")
	a.panel.SetMessage(err.Error(), true)
}

func (a *App) canvasWidth() int {
	return max(a.width-a.panel.Size().Width/views.CellWidth-6, 20)
}

// Focus returns the pane that receives keys
func (a *App) Focus() Focus {
	return a.focus
}

// State returns the current view
func (a *App) State() ViewState {
	return a.state
}

// Panel exposes the flow panel model
func (a *App) Panel() *views.FlowPanelModel {
	return a.panel
}

// Canvas exposes the canvas model
func (a *App) Canvas() *views.CanvasModel {
	return a.canvas
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewRename:
		return a.rename.View()
	case ViewHelp:
		return a.help.View()
	}

	frame := styles.Pane
	if a.focus == FocusCanvas {
		frame = styles.PaneFocused
	}
	canvas := frame.Width(a.canvasWidth()).Render(a.canvas.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, canvas, " ", a.panel.View())
	status := styles.StatusBar.Render(views.HelpLine(AppKeys.Focus, AppKeys.Help, AppKeys.Quit))
	return lipgloss.JoinVertical(lipgloss.Left, body, status)
}
