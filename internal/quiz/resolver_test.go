package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	socialWork = "Master's of Social Work"
	counseling = "Master's in Clinical Mental Health Counseling"
	psyD       = "Doctorate in Clinical Psychology (PsyD, PAU–Stanford Consortium)"
)

func mustDefault(t *testing.T) *Content {
	t.Helper()
	content, err := LoadDefault()
	require.NoError(t, err)
	return content
}

func TestResolveKnownPatterns(t *testing.T) {
	content := mustDefault(t)
	cases := []struct {
		answers AnswerSet
		want    string
	}{
		{AnswerSet{1, 1, 0, 0, 0}, socialWork},
		{AnswerSet{1, 2, 0, 0, 1}, counseling},
		{AnswerSet{2, 0, 0, 1, 0}, psyD},
	}
	for _, tc := range cases {
		t.Run(tc.answers.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, content.Resolve(tc.answers).Recommended)
		})
	}
}

func TestResolveReturnsEveryRecordForItsOwnPattern(t *testing.T) {
	content := mustDefault(t)
	for i, r := range content.Results {
		got, ok := content.Match(r.Pattern)
		require.True(t, ok, "results[%d] pattern %s should match", i, r.Pattern)
		assert.Equal(t, r, got)
		assert.Equal(t, r, content.Resolve(r.Pattern))
	}
}

func TestResolveFallsBackToFirstRecord(t *testing.T) {
	content := mustDefault(t)
	// One position away from the social work pattern.
	near := AnswerSet{1, 1, 0, 0, 2}
	_, ok := content.Match(near)
	require.False(t, ok)
	assert.Equal(t, content.Results[0], content.Resolve(near))
	assert.Equal(t, socialWork, content.Resolve(AnswerSet{2, 2, 2, 2, 2}).Recommended)
	assert.Equal(t, socialWork, content.Resolve(AnswerSet{9, 9, 9, 9, 9}).Recommended)
}

func TestResolveIntsTreatsMalformedInputAsNoMatch(t *testing.T) {
	content := mustDefault(t)
	cases := map[string][]int{
		"out of range": {9, 9, 9, 9, 9},
		"negative":     {-1, 1, 0, 0, 0},
		"too short":    {1, 1, 0, 0},
		"too long":     {1, 1, 0, 0, 0, 0},
		"empty":        nil,
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			got, matched := content.ResolveInts(values)
			assert.False(t, matched)
			assert.Equal(t, content.Default(), got)
		})
	}

	got, matched := content.ResolveInts([]int{2, 0, 0, 1, 0})
	assert.True(t, matched)
	assert.Equal(t, psyD, got.Recommended)
}

func TestMatchPrefersEarlierRecords(t *testing.T) {
	pattern := AnswerSet{0, 1, 2, 0, 1}
	content := &Content{Results: []ResultRecord{
		{Title: "first", Pattern: AnswerSet{2, 2, 2, 2, 2}},
		{Title: "second", Pattern: pattern},
		{Title: "third", Pattern: pattern},
	}}
	got, ok := content.Match(pattern)
	require.True(t, ok)
	assert.Equal(t, "second", got.Title)
}

func TestDefaultOnEmptyTable(t *testing.T) {
	content := &Content{}
	assert.Equal(t, ResultRecord{}, content.Resolve(AnswerSet{}))
}
