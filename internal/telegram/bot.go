// Package telegram serves the questionnaire over a Telegram chat. Each chat
// gets its own quiz.Session; replies of 1-3 answer the current question.
package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/kingrea/pathway/internal/quiz"
)

const helpText = `I'll ask you five quick questions and suggest a graduate program that fits.

/start – begin (or restart) the questionnaire
/back – return to the previous question
/advising – request a 1:1 advising session after your result
/help – show this message`

// Sender is the part of *bot.Bot the handler needs.
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Handler routes chat updates to per-chat sessions.
type Handler struct {
	content       *quiz.Content
	handoff       quiz.Collaborators
	log           *zap.Logger
	advisingLabel string

	mu       sync.Mutex
	sessions map[int64]*chatSession
}

// chatSession serializes updates from one chat; the bot dispatches updates
// concurrently.
type chatSession struct {
	mu      sync.Mutex
	session *quiz.Session
}

// NewHandler builds a chat handler over content.
func NewHandler(content *quiz.Content, handoff quiz.Collaborators, log *zap.Logger, advisingLabel string) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if advisingLabel == "" {
		advisingLabel = "Schedule 1:1 Advising"
	}
	return &Handler{
		content:       content,
		handoff:       handoff,
		log:           log.Named("telegram"),
		advisingLabel: advisingLabel,
		sessions:      make(map[int64]*chatSession),
	}
}

// Run starts long polling and blocks until ctx is cancelled.
func Run(ctx context.Context, token string, h *Handler) error {
	b, err := bot.New(token, bot.WithDefaultHandler(h.Handle))
	if err != nil {
		return fmt.Errorf("telegram: create bot: %w", err)
	}
	h.log.Info("bot started")
	b.Start(ctx)
	h.log.Info("bot stopped")
	return nil
}

// Handle satisfies bot.HandlerFunc.
func (h *Handler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.HandleUpdate(ctx, b, update)
}

// HandleUpdate processes one update and replies through s.
func (h *Handler) HandleUpdate(ctx context.Context, s Sender, update *models.Update) {
	if update == nil || update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	reply := h.respond(ctx, chatID, text)
	if reply == "" {
		return
	}
	if _, err := s.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: reply}); err != nil {
		h.log.Warn("send message", zap.Int64("chat", chatID), zap.Error(err))
	}
}

func (h *Handler) respond(ctx context.Context, chatID int64, text string) string {
	switch text {
	case "/start":
		s := h.start(chatID)
		return "Let's find your program.\n\n" + h.renderQuestion(s)
	case "/help":
		return helpText
	}

	h.mu.Lock()
	cs, ok := h.sessions[chatID]
	h.mu.Unlock()
	if !ok {
		return "Send /start to begin the questionnaire."
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	s := cs.session
	log := h.log.With(zap.Int64("chat", chatID), zap.String("session", s.ID))

	switch s.Stage() {
	case quiz.StageAsking:
		if text == "/back" {
			if !s.Back() {
				return "You're already on the first question.\n\n" + h.renderQuestion(s)
			}
			return h.renderQuestion(s)
		}
		n, err := strconv.Atoi(text)
		if err != nil || n < 1 || n > quiz.OptionCount || !s.Choose(quiz.Answer(n-1)) {
			return fmt.Sprintf("Please reply with a number from 1 to %d.\n\n%s", quiz.OptionCount, h.renderQuestion(s))
		}
		if s.Stage() == quiz.StageCollectingEmail {
			log.Info("questions complete", zap.Stringer("answers", s.Answers()))
			return "Last step: what email should we send your results to? Reply with your address, or /skip."
		}
		return h.renderQuestion(s)

	case quiz.StageCollectingEmail:
		if text == "/back" {
			return "Reply with your email address, or /skip to see your results."
		}
		if text != "/skip" {
			s.SetEmail(text)
		}
		result, _ := s.Submit()
		if s.Matched() {
			log.Info("result resolved", zap.String("program", result.Recommended))
		} else {
			log.Warn("no exact pattern match, showing default result", zap.Stringer("answers", s.Answers()))
		}
		if err := h.handoff.SubmitEmail(ctx, s); err != nil {
			log.Warn("email hand-off failed", zap.Error(err))
		}
		report := h.content.Report(result).PlainText()
		return fmt.Sprintf("%s\n\nReply /advising to %s.", report, strings.ToLower(h.advisingLabel))

	case quiz.StageShowingResult:
		if text != "/advising" {
			return "Reply /advising to talk with an advisor, or /start to take the questionnaire again."
		}
		if err := h.handoff.ScheduleAdvising(ctx, s); err != nil {
			log.Warn("advising hand-off failed", zap.Error(err))
			return "Sorry, we couldn't request advising right now. Please try again later."
		}
		return "Thanks! An advisor will reach out to schedule your 1:1 session."
	}
	return ""
}

// start replaces any existing session for the chat.
func (h *Handler) start(chatID int64) *quiz.Session {
	s := quiz.NewSession(h.content)
	h.mu.Lock()
	h.sessions[chatID] = &chatSession{session: s}
	h.mu.Unlock()
	h.log.Info("session started", zap.Int64("chat", chatID), zap.String("session", s.ID))
	return s
}

// Session returns the active session for a chat.
func (h *Handler) Session(chatID int64) (*quiz.Session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	cs, ok := h.sessions[chatID]
	if !ok {
		return nil, false
	}
	return cs.session, true
}

func (h *Handler) renderQuestion(s *quiz.Session) string {
	q, ok := s.Question()
	if !ok {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Question %d of %d\n%s\n", s.Step()+1, quiz.QuestionCount, q.Prompt)
	prev, answered := s.Answer(s.Step())
	for i, opt := range q.Options {
		mark := ""
		if answered && int(prev) == i {
			mark = " ✓"
		}
		fmt.Fprintf(&b, "\n%d. %s%s", i+1, opt, mark)
	}
	if s.Step() > 0 {
		b.WriteString("\n\n/back – previous question")
	}
	return b.String()
}
