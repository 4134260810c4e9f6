package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/pathway/internal/quiz"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")).MarginBottom(1)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1)
	accentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).MarginTop(1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).MarginTop(1)
	buttonStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#5B8DEF")).Padding(0, 2)
	doneStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4CAF50"))
)

// View renders the current state to a string.
func (a *App) View() string {
	var content, hint string
	switch a.session.Stage() {
	case quiz.StageAsking:
		content = a.renderQuestion()
		hint = "↑/↓ or 1-3 → choose    Enter → answer    ← → previous    q → quit"
	case quiz.StageCollectingEmail:
		content = a.renderEmail()
		hint = "Enter → see my results    Ctrl+C → quit"
	case quiz.StageShowingResult:
		content = a.renderResult()
		hint = "Enter → " + a.advisingLabel + "    q → quit"
	}
	width := max(40, a.width-2)
	sections := []string{
		headerStyle.Render("⬡ PATHWAY · Find your graduate program"),
		a.renderProgress(),
		boxStyle.Width(width - 4).Render(content),
		hintStyle.Render(hint),
	}
	if a.statusMsg != "" {
		sections = append(sections, statusStyle.Render(a.statusMsg))
	}
	return strings.Join(sections, "\n")
}

func (a *App) renderProgress() string {
	label := "Almost done"
	if a.session.Stage() == quiz.StageAsking {
		label = fmt.Sprintf("Question %d of %d", a.session.Step()+1, quiz.QuestionCount)
	} else if a.session.Stage() == quiz.StageShowingResult {
		label = "Your results"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		accentStyle.Render(label),
		a.progress.ViewAs(a.session.Progress()),
	)
}

func (a *App) renderQuestion() string {
	return a.options.View()
}

func (a *App) renderEmail() string {
	title := accentStyle.Render("Where should we send your results?")
	note := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render("We'll share program details and next steps. You can leave this blank.")
	return lipgloss.JoinVertical(lipgloss.Left, title, "", a.email.View(), "", note)
}

func (a *App) renderResult() string {
	report := strings.TrimRight(a.report, "\n")
	button := buttonStyle.Render(a.advisingLabel)
	if a.scheduled {
		button = doneStyle.Render("✓ " + a.advisingLabel)
	}
	lines := []string{report, "", button}
	if a.advisingURL != "" {
		lines = append(lines, hintStyle.Render(a.advisingURL))
	}
	if email := a.session.Email(); email != "" {
		lines = append(lines, statusStyle.Render("Results will be sent to "+email))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
