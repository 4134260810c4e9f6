package handoff

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kingrea/pathway/internal/quiz"
)

func observed(t *testing.T) (*Logged, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	return NewLogged(zap.New(core), "https://advising.example.edu"), logs
}

func TestSubmitEmailMasksAddress(t *testing.T) {
	h, logs := observed(t)
	err := h.SubmitEmail(context.Background(), "casey@example.edu", quiz.AnswerSet{1, 1, 0, 0, 0})
	require.NoError(t, err)

	entries := logs.FilterMessage("email captured").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "c***@example.edu", fields["email"])
	assert.Equal(t, "[1,1,0,0,0]", fields["answers"])
	assert.Equal(t, false, fields["empty"])
	assert.Equal(t, "handoff", entries[0].LoggerName)
}

func TestSubmitEmailAcceptsEmpty(t *testing.T) {
	h, logs := observed(t)
	require.NoError(t, h.SubmitEmail(context.Background(), "", quiz.AnswerSet{}))
	entries := logs.FilterMessage("email captured").All()
	require.Len(t, entries, 1)
	assert.Equal(t, true, entries[0].ContextMap()["empty"])
}

func TestScheduleAdvisingRecordsProgram(t *testing.T) {
	h, logs := observed(t)
	result := quiz.ResultRecord{Title: "The Counselor", Recommended: "Master's in Clinical Mental Health Counseling"}
	require.NoError(t, h.ScheduleAdvising(context.Background(), "x@y.z", result))

	entries := logs.FilterMessage("advising requested").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, result.Recommended, fields["program"])
	assert.Equal(t, "https://advising.example.edu", fields["url"])
}

func TestCancelledContext(t *testing.T) {
	h, logs := observed(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, h.SubmitEmail(ctx, "a@b.c", quiz.AnswerSet{}), context.Canceled)
	assert.ErrorIs(t, h.ScheduleAdvising(ctx, "a@b.c", quiz.ResultRecord{}), context.Canceled)
	assert.Zero(t, logs.Len())
}

func TestCollaboratorsDriveSession(t *testing.T) {
	h, logs := observed(t)
	content, err := quiz.LoadDefault()
	require.NoError(t, err)
	s := quiz.NewSession(content)
	for _, a := range []quiz.Answer{2, 0, 0, 1, 0} {
		s.Choose(a)
	}
	s.SetEmail("r@example.edu")
	s.Submit()

	collab := h.Collaborators()
	require.NoError(t, collab.SubmitEmail(context.Background(), s))
	require.NoError(t, collab.ScheduleAdvising(context.Background(), s))
	assert.Equal(t, 2, logs.Len())
}
