// Package handoff provides the default email and advising collaborators.
// Neither delivers anything; each records the hand-off in the log so an
// operator can follow up.
package handoff

import (
	"context"

	"go.uber.org/zap"

	"github.com/kingrea/pathway/internal/logging"
	"github.com/kingrea/pathway/internal/quiz"
)

// Logged implements quiz.EmailSubmitter and quiz.AdvisingScheduler by writing
// structured log entries.
type Logged struct {
	log         *zap.Logger
	advisingURL string
}

// NewLogged builds the default collaborators. advisingURL is optional and
// only recorded alongside scheduling requests.
func NewLogged(log *zap.Logger, advisingURL string) *Logged {
	if log == nil {
		log = zap.NewNop()
	}
	return &Logged{log: log.Named("handoff"), advisingURL: advisingURL}
}

// Collaborators wires both hand-offs for a session front end.
func (l *Logged) Collaborators() quiz.Collaborators {
	return quiz.Collaborators{Email: l, Advising: l}
}

// SubmitEmail records the captured address and answers.
func (l *Logged) SubmitEmail(ctx context.Context, email string, answers quiz.AnswerSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.log.Info("email captured",
		zap.String("email", logging.MaskEmail(email)),
		zap.Bool("empty", email == ""),
		zap.Stringer("answers", answers),
	)
	return nil
}

// ScheduleAdvising records an advising request for the resolved program.
func (l *Logged) ScheduleAdvising(ctx context.Context, email string, result quiz.ResultRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fields := []zap.Field{
		zap.String("email", logging.MaskEmail(email)),
		zap.String("program", result.Recommended),
		zap.String("title", result.Title),
	}
	if l.advisingURL != "" {
		fields = append(fields, zap.String("url", l.advisingURL))
	}
	l.log.Info("advising requested", fields...)
	return nil
}
