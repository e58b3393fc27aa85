package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSinkStartsEmpty(t *testing.T) {
	var s Sink
	assert.False(t, s.HasErrors())
	assert.Empty(t, s.Messages())
}

func TestSinkRecordsFormattedMessage(t *testing.T) {
	var s Sink
	s.Syntax(3, "at 'x'", "Expect ';' after value.")

	assert.True(t, s.HasErrors())
	assert.Equal(t, []string{"[Line 3] Error at 'x': Expect ';' after value."}, s.Messages())
}

func TestSinkAccumulatesInOrder(t *testing.T) {
	var s Sink
	s.Syntax(1, "at end", "first")
	s.Syntax(2, "at 'y'", "second")

	assert.Equal(t, []string{
		"[Line 1] Error at end: first",
		"[Line 2] Error at 'y': second",
	}, s.Messages())
}
