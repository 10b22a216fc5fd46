package form

import (
	"context"
	"errors"
	"strings"

	"github.com/Altinity/site-sync/internal/publish"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
)

type control int

const (
	controlFolder control = iota
	controlBrowse
	controlRun
	controlCopy
	controlOpen

	controlCount
)

var buttonLabels = map[control]string{
	controlBrowse: "Browse",
	controlRun:    "Upload and Configure",
	controlCopy:   "Copy",
	controlOpen:   "Open",
}

type dialogKind int

const (
	dialogInfo dialogKind = iota
	dialogError
)

// dialog is a modal message; any key dismisses it.
type dialog struct {
	kind  dialogKind
	title string
	body  string
}

// publishedMsg carries the result of a publish job back to the UI goroutine.
type publishedMsg Result

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle    = lipgloss.NewStyle().Width(8).Bold(true)
	urlStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	buttonStyle   = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder())
	focusedStyle  = buttonStyle.BorderForeground(lipgloss.Color("205")).Bold(true)
	disabledStyle = buttonStyle.Foreground(lipgloss.Color("241")).BorderForeground(lipgloss.Color("238"))
	dialogStyle   = lipgloss.NewStyle().Padding(1, 2).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("39"))
	errorStyle    = dialogStyle.BorderForeground(lipgloss.Color("196"))
)

// Model is the terminal form: a folder field, the website URL and the
// Browse, Upload and Configure, Copy and Open actions.
type Model struct {
	ctx  context.Context
	ctrl *Controller

	folder  textinput.Model
	spinner spinner.Model
	focus   control
	dialog  *dialog

	// quitting is set when the user asked to quit during a run; the form
	// exits once the run completes.
	quitting bool
}

// NewModel builds the form around ctrl. Jobs started from the form run with
// ctx.
func NewModel(ctx context.Context, ctrl *Controller) Model {
	ti := textinput.New()
	ti.Placeholder = "path to the site folder"
	ti.Prompt = ""
	ti.CharLimit = 4096
	ti.Width = 60
	ti.SetValue(ctrl.Folder())
	ti.Focus()

	return Model{
		ctx:     ctx,
		ctrl:    ctrl,
		folder:  ti,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		focus:   controlFolder,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case publishedMsg:
		m.ctrl.Complete(Result(msg))
		if m.quitting {
			logResult(Result(msg))
			return m, tea.Quit
		}
		m.dialog = resultDialog(Result(msg))
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.Busy() {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == controlFolder {
		var cmd tea.Cmd
		m.folder, cmd = m.folder.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A run is never interrupted: ctrl+c waits for it, esc and q are ignored.
	if msg.Type == tea.KeyCtrlC {
		if m.ctrl.Busy() {
			m.quitting = true
			return m, nil
		}
		return m, tea.Quit
	}

	if m.dialog != nil {
		m.dialog = nil
		return m, nil
	}

	switch msg.String() {
	case "esc":
		if m.ctrl.Busy() {
			return m, nil
		}
		return m, tea.Quit
	case "tab", "down":
		return m.moveFocus(1)
	case "shift+tab", "up":
		return m.moveFocus(-1)
	case "ctrl+b":
		return m.activate(controlBrowse)
	case "ctrl+r":
		return m.activate(controlRun)
	case "ctrl+y":
		return m.activate(controlCopy)
	case "ctrl+o":
		return m.activate(controlOpen)
	case "enter":
		if m.focus == controlFolder {
			return m.activate(controlBrowse)
		}
		return m.activate(m.focus)
	}

	if m.focus != controlFolder {
		if msg.String() == "q" && !m.ctrl.Busy() {
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.folder, cmd = m.folder.Update(msg)

	return m, cmd
}

func (m Model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	m.focus = control((int(m.focus) + delta + int(controlCount)) % int(controlCount))

	if m.focus == controlFolder {
		return m, m.folder.Focus()
	}

	m.folder.Blur()

	return m, nil
}

func (m Model) activate(c control) (tea.Model, tea.Cmd) {
	switch c {
	case controlBrowse:
		if err := m.selectFolder(); err != nil {
			m.dialog = errorDialog(err)
		}

	case controlRun:
		if m.ctrl.Busy() {
			return m, nil
		}

		if m.folder.Value() != m.ctrl.Folder() {
			if err := m.selectFolder(); err != nil {
				m.dialog = errorDialog(err)
				return m, nil
			}
		}

		// The run outlives the form: quitting waits for it instead.
		job, err := m.ctrl.Begin(context.WithoutCancel(m.ctx))
		if err != nil {
			m.dialog = errorDialog(err)
			return m, nil
		}

		log.Info().
			Str("folder", m.ctrl.Folder()).
			Msg("Publish started")

		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			return publishedMsg(job())
		})

	case controlCopy:
		url, err := m.ctrl.Copy()
		if err != nil {
			m.dialog = errorDialog(err)
			return m, nil
		}
		m.dialog = &dialog{kind: dialogInfo, title: "Copied", body: "URL copied to clipboard!\n" + url}

	case controlOpen:
		if err := m.ctrl.Open(); err != nil {
			m.dialog = errorDialog(err)
		}
	}

	return m, nil
}

// selectFolder makes the folder field the controller's selection. An empty
// field clears the selection.
func (m *Model) selectFolder() error {
	if strings.TrimSpace(m.folder.Value()) == "" {
		m.ctrl.ClearFolder()
		return &publish.ValidationError{Err: publish.ErrNoFolder}
	}

	if err := m.ctrl.Browse(m.folder.Value()); err != nil {
		return err
	}

	m.folder.SetValue(m.ctrl.Folder())

	return nil
}

func logResult(r Result) {
	if r.Err != nil {
		log.Error().
			Err(r.Err).
			Msg("Publish failed")
		return
	}

	log.Info().
		Str("url", r.URL).
		Msg("Publish finished")
}

func resultDialog(r Result) *dialog {
	if r.Err != nil {
		return errorDialog(r.Err)
	}

	return &dialog{
		kind:  dialogInfo,
		title: "Success",
		body:  "Files uploaded and hosting configured successfully!\n" + r.URL,
	}
}

func errorDialog(err error) *dialog {
	d := &dialog{kind: dialogError, title: "Error", body: err.Error()}

	var vErr *publish.ValidationError
	var pErr *publish.PhaseError

	switch {
	case errors.Is(err, publish.ErrNoFolder):
		d.body = "Please select a folder to upload."
	case errors.As(err, &vErr):
		d.title = "Invalid folder"
	case errors.As(err, &pErr):
		d.title = "Error: " + pErr.Message()
		d.body = pErr.Err.Error()
		if pErr.Key != "" {
			d.body = pErr.Key + "\n" + d.body
		}
		if pErr.Partial {
			d.body += "\n\nThe bucket may now hold a mix of old and new content. Run again to replace it."
		}
	case errors.Is(err, ErrNoURL):
		d.title = "Nothing to copy"
		d.body = "Publish the site first."
	}

	return d
}

func (m Model) View() string {
	if m.dialog != nil {
		style := dialogStyle
		if m.dialog.kind == dialogError {
			style = errorStyle
		}

		return style.Render(
			lipgloss.JoinVertical(lipgloss.Left,
				titleStyle.Render(m.dialog.title),
				m.dialog.body,
				"",
				mutedStyle.Render("press any key"),
			),
		) + "\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Upload site to S3"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Folder") + m.folder.View() + "\n")

	url := mutedStyle.Render("(not published yet)")
	if m.ctrl.URL() != "" {
		url = urlStyle.Render(m.ctrl.URL())
	}
	b.WriteString(labelStyle.Render("URL") + url + "\n\n")

	buttons := make([]string, 0, len(buttonLabels))
	for c := controlBrowse; c < controlCount; c++ {
		buttons = append(buttons, m.renderButton(c))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttons...) + "\n")

	switch {
	case m.ctrl.Busy() && m.quitting:
		b.WriteString(m.spinner.View() + " Publishing " + m.ctrl.Folder() + ", will quit when done\n")
	case m.ctrl.Busy():
		b.WriteString(m.spinner.View() + " Publishing " + m.ctrl.Folder() + "\n")
	case m.ctrl.State() == Failed:
		b.WriteString(mutedStyle.Render("Last run failed.") + "\n")
	default:
		b.WriteString("\n")
	}

	b.WriteString(mutedStyle.Render("tab: next  enter: select  ctrl+r: upload  ctrl+y: copy  ctrl+o: open  esc: quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderButton(c control) string {
	label := buttonLabels[c]

	switch {
	case c == controlRun && m.ctrl.Busy():
		return disabledStyle.Render(label)
	case m.focus == c:
		return focusedStyle.Render(label)
	default:
		return buttonStyle.Render(label)
	}
}
