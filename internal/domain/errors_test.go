package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParseError_Position(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		offset int
		line   int
		column int
	}{
		{"start", "SELECT", 0, 1, 1},
		{"first_line", "SELECT a", 7, 1, 8},
		{"second_line", "SELECT\nFROM", 7, 2, 1},
		{"third_line", "a\nbb\nccc", 7, 3, 3},
		{"past_end_clamped", "abc", 10, 1, 4},
		{"negative_clamped", "abc", -1, 1, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pe := NewParseError(tc.input, tc.offset, "boom")
			assert.Equal(t, tc.line, pe.Line)
			assert.Equal(t, tc.column, pe.Column)
			assert.Equal(t, "boom", pe.Message)
		})
	}
}

func TestParseError_Message(t *testing.T) {
	pe := NewParseError("SELECT\nFROM", 7, "unexpected %s", "keyword FROM")
	assert.Equal(t, "sql parse error at line 2, column 1: unexpected keyword FROM", pe.Error())

	bare := &ParseError{Message: "empty"}
	assert.Equal(t, "sql parse error: empty", bare.Error())
}

func TestExecutionError_Unwrap(t *testing.T) {
	cause := errors.New("relation \"t\" does not exist")
	err := fmt.Errorf("run: %w", &ExecutionError{Statement: "SELECT * FROM t", Err: cause})

	var ee *ExecutionError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, "SELECT * FROM t", ee.Statement)
	assert.ErrorIs(t, err, cause)
}

func TestErrorConstructors(t *testing.T) {
	var ve *ValidationError
	require.True(t, errors.As(ErrValidation("bad %s", "input"), &ve))
	assert.Equal(t, "bad input", ve.Error())

	var nf *NotFoundError
	require.True(t, errors.As(ErrNotFound("entry %q not found", "x"), &nf))
	assert.Equal(t, `entry "x" not found`, nf.Error())

	var ue *UnavailableError
	require.True(t, errors.As(ErrUnavailable("no database"), &ue))

	assert.Equal(t, "statement nesting exceeds maximum depth of 3", (&DepthError{Limit: 3}).Error())
}
