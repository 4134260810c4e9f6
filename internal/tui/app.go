// internal/tui/app.go
//
// This is the terminal front end for the questionnaire.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen
//
// All questionnaire state lives in quiz.Session; App only translates key
// presses into session transitions and keeps the widgets in sync.

package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/kingrea/pathway/internal/quiz"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	defaultLabel  = "Schedule 1:1 Advising"
)

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithCollaborators overrides the email and advising hand-offs.
func WithCollaborators(c quiz.Collaborators) AppOption {
	return func(a *App) {
		a.handoff = c
	}
}

// WithLogger attaches a structured logger.
func WithLogger(log *zap.Logger) AppOption {
	return func(a *App) {
		if log != nil {
			a.log = log
		}
	}
}

// WithAdvising sets the label and optional link shown on the result screen.
func WithAdvising(label, url string) AppOption {
	return func(a *App) {
		if label != "" {
			a.advisingLabel = label
		}
		a.advisingURL = url
	}
}

// WithMarkdownStyle selects the glamour style for the result report. "auto"
// detects the terminal background; any other value is a glamour style name
// such as "dark", "light", or "notty".
func WithMarkdownStyle(style string) AppOption {
	return func(a *App) {
		if style != "" {
			a.markdownStyle = style
		}
	}
}

type emailSubmittedMsg struct {
	err error
}

type advisingScheduledMsg struct {
	err error
}

// optionItem implements list.Item for one answer choice.
type optionItem struct {
	index  int
	text   string
	chosen bool
}

func (i optionItem) Title() string {
	mark := " "
	if i.chosen {
		mark = "✓"
	}
	return fmt.Sprintf("%s %d. %s", mark, i.index+1, i.text)
}
func (i optionItem) Description() string { return "" }
func (i optionItem) FilterValue() string { return i.text }

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	content *quiz.Content
	session *quiz.Session
	handoff quiz.Collaborators
	log     *zap.Logger

	advisingLabel string
	advisingURL   string
	markdownStyle string

	// UI components
	options   list.Model
	email     textinput.Model
	progress  progress.Model
	renderer  *glamour.TermRenderer
	report    string
	statusMsg string
	scheduled bool

	// Window size (we get this from bubbletea)
	width  int
	height int
}

// NewApp creates a new App instance with a fresh session.
func NewApp(content *quiz.Content, opts ...AppOption) *App {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	options := list.New(nil, delegate, defaultWidth-6, quiz.OptionCount+4)
	options.SetShowStatusBar(false)
	options.SetFilteringEnabled(false)
	options.SetShowHelp(false)
	options.SetShowPagination(false)

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = "│ "
	email.CharLimit = 254
	email.Width = 40

	app := &App{
		content:       content,
		session:       quiz.NewSession(content),
		log:           zap.NewNop(),
		advisingLabel: defaultLabel,
		markdownStyle: "auto",
		options:       options,
		email:         email,
		progress:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(defaultWidth-12)),
		width:         defaultWidth,
		height:        defaultHeight,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	app.log = app.log.With(zap.String("session", app.session.ID))
	app.log.Info("session started", zap.Int("questions", len(content.Questions)))
	app.syncOptions()
	return app
}

// Session exposes the underlying session, mainly for tests and callers that
// want the final result after the program exits.
func (a *App) Session() *quiz.Session {
	return a.session
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.options.SetSize(max(20, msg.Width-6), quiz.OptionCount+4)
		a.progress.Width = max(10, msg.Width-12)
		a.email.Width = max(20, min(60, msg.Width-10))
		a.renderer = nil
		if a.session.Stage() == quiz.StageShowingResult {
			a.renderReport()
		}
		return a, nil

	case emailSubmittedMsg:
		if msg.err != nil {
			a.statusMsg = fmt.Sprintf("Could not send your email: %v", msg.err)
			a.log.Warn("email hand-off failed", zap.Error(msg.err))
		}
		return a, nil

	case advisingScheduledMsg:
		if msg.err != nil {
			a.statusMsg = fmt.Sprintf("Advising request failed: %v", msg.err)
			a.log.Warn("advising hand-off failed", zap.Error(msg.err))
			return a, nil
		}
		a.scheduled = true
		a.statusMsg = "Advising request sent. An advisor will reach out."
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.session.Stage() {
		case quiz.StageAsking:
			return a.updateAsking(msg)
		case quiz.StageCollectingEmail:
			return a.updateEmail(msg)
		case quiz.StageShowingResult:
			return a.updateResult(msg)
		}
	}

	return a, nil
}

func (a *App) updateAsking(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "esc":
		return a, tea.Quit
	case "left", "h", "b", "backspace":
		return a, a.back()
	case "enter":
		return a, a.choose(a.options.Index())
	}
	if n, err := strconv.Atoi(key); err == nil {
		return a, a.choose(n - 1)
	}
	var cmd tea.Cmd
	a.options, cmd = a.options.Update(msg)
	return a, cmd
}

func (a *App) updateEmail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		return a, a.submit()
	}
	var cmd tea.Cmd
	a.email, cmd = a.email.Update(msg)
	a.session.SetEmail(a.email.Value())
	return a, cmd
}

func (a *App) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return a, tea.Quit
	case "enter", "a":
		return a, a.scheduleAdvising()
	}
	return a, nil
}

// choose records option idx (zero-based) for the current question.
func (a *App) choose(idx int) tea.Cmd {
	if idx < 0 || idx >= quiz.OptionCount {
		return nil
	}
	step := a.session.Step()
	if !a.session.Choose(quiz.Answer(idx)) {
		return nil
	}
	a.statusMsg = ""
	a.log.Debug("answer recorded", zap.Int("step", step), zap.Int("answer", idx))
	if a.session.Stage() == quiz.StageCollectingEmail {
		a.log.Info("questions complete", zap.Stringer("answers", a.session.Answers()))
		return a.email.Focus()
	}
	a.syncOptions()
	return nil
}

func (a *App) back() tea.Cmd {
	if !a.session.Back() {
		a.statusMsg = "Already at the first question."
		return nil
	}
	a.statusMsg = ""
	a.syncOptions()
	return nil
}

// submit moves the session to its result regardless of what was typed and
// hands the address to the email collaborator in the background.
func (a *App) submit() tea.Cmd {
	a.session.SetEmail(a.email.Value())
	result, ok := a.session.Submit()
	if !ok {
		return nil
	}
	a.email.Blur()
	fields := []zap.Field{
		zap.String("title", result.Title),
		zap.String("program", result.Recommended),
		zap.Stringer("answers", a.session.Answers()),
	}
	if a.session.Matched() {
		a.log.Info("result resolved", fields...)
	} else {
		a.log.Warn("no exact pattern match, showing default result", fields...)
	}
	a.renderReport()

	handoff := a.handoff
	session := a.session
	return func() tea.Msg {
		return emailSubmittedMsg{err: handoff.SubmitEmail(context.Background(), session)}
	}
}

func (a *App) scheduleAdvising() tea.Cmd {
	if a.scheduled {
		a.statusMsg = "Advising request already sent."
		return nil
	}
	a.statusMsg = "Requesting advising..."
	a.log.Info("advising action selected")
	handoff := a.handoff
	session := a.session
	return func() tea.Msg {
		return advisingScheduledMsg{err: handoff.ScheduleAdvising(context.Background(), session)}
	}
}

// syncOptions loads the current question into the option list and
// highlights a previously recorded answer.
func (a *App) syncOptions() {
	q, ok := a.session.Question()
	if !ok {
		return
	}
	prev, answered := a.session.Answer(a.session.Step())
	items := make([]list.Item, len(q.Options))
	for i, text := range q.Options {
		items[i] = optionItem{index: i, text: text, chosen: answered && int(prev) == i}
	}
	a.options.Title = q.Prompt
	a.options.SetItems(items)
	if answered {
		a.options.Select(int(prev))
	} else {
		a.options.Select(0)
	}
}

func (a *App) renderReport() {
	result, ok := a.session.Result()
	if !ok {
		return
	}
	md := a.content.Report(result).Markdown()
	if a.renderer == nil {
		r, err := a.newRenderer()
		if err != nil {
			a.log.Warn("markdown renderer unavailable", zap.Error(err))
			a.report = md
			return
		}
		a.renderer = r
	}
	out, err := a.renderer.Render(md)
	if err != nil {
		a.log.Warn("render report", zap.Error(err))
		a.report = md
		return
	}
	a.report = out
}

func (a *App) newRenderer() (*glamour.TermRenderer, error) {
	wrap := max(40, a.width-8)
	if a.markdownStyle == "auto" {
		return glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(wrap))
	}
	return glamour.NewTermRenderer(glamour.WithStylePath(a.markdownStyle), glamour.WithWordWrap(wrap))
}
