// internal/quiz/session.go
//
// Session is the per-user state machine:
//
//	Asking(0..4) -> CollectingEmail -> ShowingResult
//
// Every method is a transition triggered by a user event. Invalid events are
// ignored rather than reported, so front ends never need an error path.

package quiz

import (
	"github.com/google/uuid"
)

// Stage names where a session is in the flow.
type Stage int

const (
	StageAsking Stage = iota
	StageCollectingEmail
	StageShowingResult
)

func (s Stage) String() string {
	switch s {
	case StageAsking:
		return "asking"
	case StageCollectingEmail:
		return "collecting-email"
	case StageShowingResult:
		return "showing-result"
	default:
		return "unknown"
	}
}

// Session tracks one pass through the questionnaire.
type Session struct {
	ID string

	content  *Content
	stage    Stage
	step     int
	answers  AnswerSet
	answered [QuestionCount]bool
	email    string
	result   ResultRecord
	matched  bool
}

// NewSession starts a session at the first question.
func NewSession(content *Content) *Session {
	return &Session{
		ID:      uuid.NewString(),
		content: content,
		stage:   StageAsking,
	}
}

// Content returns the questionnaire backing the session.
func (s *Session) Content() *Content { return s.content }

// Stage returns the current stage.
func (s *Session) Stage() Stage { return s.stage }

// Step returns the index of the question being asked. Once every question is
// answered it equals QuestionCount.
func (s *Session) Step() int { return s.step }

// Question returns the question for the current step while asking.
func (s *Session) Question() (Question, bool) {
	if s.stage != StageAsking {
		return Question{}, false
	}
	return s.content.Question(s.step)
}

// Answers returns the recorded answers. Unanswered positions are zero.
func (s *Session) Answers() AnswerSet { return s.answers }

// Answer reports the answer recorded for step, if any.
func (s *Session) Answer(step int) (Answer, bool) {
	if step < 0 || step >= QuestionCount || !s.answered[step] {
		return 0, false
	}
	return s.answers[step], true
}

// Email returns the address entered so far.
func (s *Session) Email() string { return s.email }

// Progress is the fraction of questions answered, for progress bars.
func (s *Session) Progress() float64 {
	if s.stage != StageAsking {
		return 1
	}
	return float64(s.step) / float64(QuestionCount)
}

// Choose records choice for the current question and advances. Answering the
// last question moves the session to email collection.
func (s *Session) Choose(choice Answer) bool {
	if s.stage != StageAsking || !choice.Valid() {
		return false
	}
	s.answers[s.step] = choice
	s.answered[s.step] = true
	s.step++
	if s.step >= QuestionCount {
		s.stage = StageCollectingEmail
	}
	return true
}

// Back returns to the previous question, keeping its recorded answer. It is
// clamped at the first question.
func (s *Session) Back() bool {
	if s.stage != StageAsking || s.step == 0 {
		return false
	}
	s.step--
	return true
}

// SetEmail replaces the address being typed.
func (s *Session) SetEmail(email string) {
	if s.stage != StageCollectingEmail {
		return
	}
	s.email = email
}

// Submit accepts the address as-is, resolves the answers once, and moves the
// session to its terminal stage.
func (s *Session) Submit() (ResultRecord, bool) {
	if s.stage != StageCollectingEmail {
		return s.result, false
	}
	s.result, s.matched = s.content.Match(s.answers)
	if !s.matched {
		s.result = s.content.Default()
	}
	s.stage = StageShowingResult
	return s.result, true
}

// Result returns the resolved record once the session has been submitted.
func (s *Session) Result() (ResultRecord, bool) {
	if s.stage != StageShowingResult {
		return ResultRecord{}, false
	}
	return s.result, true
}

// Matched reports whether the result came from an exact pattern match rather
// than the default fallback.
func (s *Session) Matched() bool { return s.matched }
