package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuestions(n int) []Question {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{
			ID:           string(rune('a' + i)),
			Text:         "question " + string(rune('A'+i)),
			Options:      []string{"w", "x", "y", "z"},
			CorrectIndex: i % OptionCount,
		}
	}
	return qs
}

func TestQuestionValidate(t *testing.T) {
	good := sampleQuestions(1)[0]
	require.NoError(t, good.Validate())

	tests := []struct {
		name string
		mod  func(q *Question)
	}{
		{"empty text", func(q *Question) { q.Text = "  " }},
		{"three options", func(q *Question) { q.Options = q.Options[:3] }},
		{"blank option", func(q *Question) { q.Options = []string{"a", "", "c", "d"} }},
		{"negative index", func(q *Question) { q.CorrectIndex = -1 }},
		{"index past options", func(q *Question) { q.CorrectIndex = 4 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := good
			q.Options = append([]string(nil), good.Options...)
			tc.mod(&q)
			assert.ErrorIs(t, q.Validate(), ErrInvalidQuestion)
		})
	}
}

func TestValidFiltersBrokenQuestions(t *testing.T) {
	qs := sampleQuestions(3)
	qs[1].Options = nil

	got := Valid(qs)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestPoolAdvanceWraps(t *testing.T) {
	p := NewPool(sampleQuestions(3))
	require.Equal(t, 0, p.Index())

	p.Advance()
	p.Advance()
	assert.Equal(t, 2, p.Index())

	p.Advance()
	assert.Equal(t, 0, p.Index(), "pointer wraps to the first question after the last")
}

func TestPoolEmpty(t *testing.T) {
	p := NewPool(nil)
	assert.True(t, p.Empty())

	_, err := p.Current()
	assert.ErrorIs(t, err, ErrEmptyPool)

	p.Advance()
	assert.Equal(t, 0, p.Index(), "advance on an empty pool is a no-op")
}

func TestPoolCurrentSkipsInvalid(t *testing.T) {
	qs := sampleQuestions(3)
	qs[0].Text = ""

	p := NewPool(qs)
	q, err := p.Current()
	require.NoError(t, err)
	assert.Equal(t, "b", q.ID)
	assert.Equal(t, 1, p.Index())
}

func TestPoolAllInvalid(t *testing.T) {
	qs := sampleQuestions(2)
	qs[0].Options = nil
	qs[1].Options = nil

	_, err := NewPool(qs).Current()
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestPoolReplaceRewinds(t *testing.T) {
	p := NewPool(sampleQuestions(3))
	p.Advance()
	p.Replace(sampleQuestions(2))
	assert.Equal(t, 0, p.Index())
	assert.Equal(t, 2, p.Len())
}
