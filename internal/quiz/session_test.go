package quiz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answerAll(t *testing.T, s *Session, answers AnswerSet) {
	t.Helper()
	for _, a := range answers {
		require.True(t, s.Choose(a))
	}
}

func TestChooseRecordsAndAdvances(t *testing.T) {
	s := NewSession(mustDefault(t))
	require.NotEmpty(t, s.ID)
	require.Equal(t, StageAsking, s.Stage())

	require.True(t, s.Choose(2))
	assert.Equal(t, 1, s.Step())
	got, ok := s.Answer(0)
	require.True(t, ok)
	assert.Equal(t, Answer(2), got)
	_, ok = s.Answer(1)
	assert.False(t, ok)
}

func TestBackIsClampedAtFirstQuestion(t *testing.T) {
	s := NewSession(mustDefault(t))
	assert.False(t, s.Back())
	assert.Equal(t, 0, s.Step())
	assert.Equal(t, StageAsking, s.Stage())
}

func TestBackKeepsRecordedAnswerAndAllowsOverwrite(t *testing.T) {
	s := NewSession(mustDefault(t))
	require.True(t, s.Choose(1))
	require.True(t, s.Choose(2))
	require.True(t, s.Back())
	assert.Equal(t, 1, s.Step())
	prev, ok := s.Answer(1)
	require.True(t, ok)
	assert.Equal(t, Answer(2), prev)

	require.True(t, s.Choose(1))
	assert.Equal(t, 2, s.Step())
	assert.Equal(t, Answer(1), s.Answers()[1])
}

func TestChooseRejectsOutOfRange(t *testing.T) {
	s := NewSession(mustDefault(t))
	assert.False(t, s.Choose(OptionCount))
	assert.Equal(t, 0, s.Step())
}

func TestFullFlowWithEmptyEmail(t *testing.T) {
	s := NewSession(mustDefault(t))
	answerAll(t, s, AnswerSet{1, 2, 0, 0, 1})
	require.Equal(t, StageCollectingEmail, s.Stage())
	assert.Equal(t, QuestionCount, s.Step())
	assert.Equal(t, 1.0, s.Progress())
	assert.False(t, s.Choose(0), "no questions remain")
	assert.False(t, s.Back())

	_, ok := s.Result()
	require.False(t, ok)

	result, ok := s.Submit()
	require.True(t, ok)
	assert.Equal(t, StageShowingResult, s.Stage())
	assert.Equal(t, counseling, result.Recommended)
	assert.True(t, s.Matched())
	assert.Empty(t, s.Email())

	_, again := s.Submit()
	assert.False(t, again, "showing result is terminal")
	cached, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, result, cached)
}

func TestSubmitFallsBackWhenNothingMatches(t *testing.T) {
	s := NewSession(mustDefault(t))
	answerAll(t, s, AnswerSet{2, 2, 2, 2, 2})
	s.SetEmail("someone@example.com")
	result, ok := s.Submit()
	require.True(t, ok)
	assert.False(t, s.Matched())
	assert.Equal(t, socialWork, result.Recommended)
	assert.Equal(t, "someone@example.com", s.Email())
}

func TestProgressTracksStep(t *testing.T) {
	s := NewSession(mustDefault(t))
	assert.Equal(t, 0.0, s.Progress())
	require.True(t, s.Choose(0))
	require.True(t, s.Choose(0))
	assert.InDelta(t, 0.4, s.Progress(), 1e-9)
}

func TestSetEmailOnlyWhileCollecting(t *testing.T) {
	s := NewSession(mustDefault(t))
	s.SetEmail("early@example.com")
	assert.Empty(t, s.Email())
}

func TestCollaboratorsForwardSessionState(t *testing.T) {
	s := NewSession(mustDefault(t))
	var gotEmail string
	var gotAnswers AnswerSet
	var scheduled ResultRecord
	collab := Collaborators{
		Email: EmailSubmitterFunc(func(_ context.Context, email string, answers AnswerSet) error {
			gotEmail, gotAnswers = email, answers
			return nil
		}),
		Advising: AdvisingSchedulerFunc(func(_ context.Context, _ string, r ResultRecord) error {
			scheduled = r
			return errors.New("scheduler offline")
		}),
	}

	require.NoError(t, collab.ScheduleAdvising(context.Background(), s), "no result yet")
	assert.Empty(t, scheduled.Title)

	answerAll(t, s, AnswerSet{2, 0, 0, 1, 0})
	s.SetEmail("a@b.c")
	require.NoError(t, collab.SubmitEmail(context.Background(), s))
	assert.Equal(t, "a@b.c", gotEmail)
	assert.Equal(t, AnswerSet{2, 0, 0, 1, 0}, gotAnswers)

	s.Submit()
	err := collab.ScheduleAdvising(context.Background(), s)
	require.EqualError(t, err, "scheduler offline")
	assert.Equal(t, psyD, scheduled.Recommended)

	assert.NoError(t, Collaborators{}.SubmitEmail(context.Background(), s))
}
