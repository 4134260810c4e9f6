package quiz

import "context"

// EmailSubmitter receives the address entered before the result is shown.
type EmailSubmitter interface {
	SubmitEmail(ctx context.Context, email string, answers AnswerSet) error
}

// AdvisingScheduler receives "schedule advising" requests from the result
// screen.
type AdvisingScheduler interface {
	ScheduleAdvising(ctx context.Context, email string, result ResultRecord) error
}

// EmailSubmitterFunc adapts a function to EmailSubmitter.
type EmailSubmitterFunc func(ctx context.Context, email string, answers AnswerSet) error

func (f EmailSubmitterFunc) SubmitEmail(ctx context.Context, email string, answers AnswerSet) error {
	return f(ctx, email, answers)
}

// AdvisingSchedulerFunc adapts a function to AdvisingScheduler.
type AdvisingSchedulerFunc func(ctx context.Context, email string, result ResultRecord) error

func (f AdvisingSchedulerFunc) ScheduleAdvising(ctx context.Context, email string, result ResultRecord) error {
	return f(ctx, email, result)
}

// Collaborators groups the external hand-offs. Nil members are treated as
// no-ops.
type Collaborators struct {
	Email    EmailSubmitter
	Advising AdvisingScheduler
}

// SubmitEmail forwards to the configured submitter.
func (c Collaborators) SubmitEmail(ctx context.Context, s *Session) error {
	if c.Email == nil || s == nil {
		return nil
	}
	return c.Email.SubmitEmail(ctx, s.Email(), s.Answers())
}

// ScheduleAdvising forwards to the configured scheduler once the session has
// a result.
func (c Collaborators) ScheduleAdvising(ctx context.Context, s *Session) error {
	if c.Advising == nil || s == nil {
		return nil
	}
	result, ok := s.Result()
	if !ok {
		return nil
	}
	return c.Advising.ScheduleAdvising(ctx, s.Email(), result)
}
