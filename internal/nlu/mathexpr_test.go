package nlu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMathExpression(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"帮我计算3+5", "3+5", true},
		{"三加五等于多少", "3+5", true},
		{"十加二", "10+2", true},
		{"六乘以七", "6*7", true},
		{"10除以2", "10/2", true},
		{"(2+3)*4", "(2+3)*4", true},
		{"你好", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseMathExpression(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		if tt.ok {
			assert.Equal(t, tt.want, got, "input %q", tt.input)
		}
	}
}

func TestEvalMathExpression(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"3+5", 8},
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"10/4", 2.5},
		{"-3+5", 2},
		{"2*(1+2)-4/2", 4},
	}
	for _, tt := range tests {
		got, err := EvalMathExpression(tt.expr)
		require.NoError(t, err, "expr %q", tt.expr)
		assert.InDelta(t, tt.want, got, 1e-9, "expr %q", tt.expr)
	}
}

func TestEvalDivideByZero(t *testing.T) {
	_, err := EvalMathExpression("10/0")
	assert.ErrorIs(t, err, ErrDivideByZero)

	_, err = EvalMathExpression("1/(2-2)")
	assert.ErrorIs(t, err, ErrDivideByZero)
}

func TestEvalMalformed(t *testing.T) {
	for _, expr := range []string{"(1+2", "1+", "*3", ""} {
		_, err := EvalMathExpression(expr)
		assert.Error(t, err, "expr %q", expr)
	}
}
