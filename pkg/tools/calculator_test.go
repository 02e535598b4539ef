package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func calcResult(t *testing.T, expression string) Result {
	t.Helper()
	tool := &CalculatorTool{}
	return tool.Execute(context.Background(), map[string]any{"expression": expression})
}

func TestCalculatorBasicExpressions(t *testing.T) {
	cases := []struct {
		expr string
		want float64
	}{
		{"2 + 3 * 4", 14},
		{"(2+3)*4", 20},
		{"10 - 4 / 2", 8},
		{"2 ** 10", 1024},
		{"2 ** 3 ** 2", 512}, // right-associative
		{"10 % 3", 1},
		{"-5 + 3", -2},
		{"-2 ** 2", -4}, // unary minus binds looser than **
		{"2 ** -1", 0.5},
		{"1.5e2 + 0.5", 150.5},
		{"((1 + 2) * (3 + 4))", 21},
	}

	for _, tc := range cases {
		res := calcResult(t, tc.expr)
		require.True(t, res.Success, "expression %q failed: %s", tc.expr, res.Error)
		require.InDelta(t, tc.want, res.Value, 1e-9, "expression %q", tc.expr)
	}
}

func TestCalculatorFunctions(t *testing.T) {
	cases := []struct {
		expr string
		want float64
	}{
		{"sqrt(16)", 4},
		{"abs(-7.5)", 7.5},
		{"round(3.7)", 4},
		{"round(3.14159, 2)", 3.14},
		{"exp(0)", 1},
		{"log(exp(1))", 1},
		{"sin(0)", 0},
		{"cos(0)", 1},
		{"tan(0)", 0},
		{"sqrt(16) + abs(-2)", 6},
	}

	for _, tc := range cases {
		res := calcResult(t, tc.expr)
		require.True(t, res.Success, "expression %q failed: %s", tc.expr, res.Error)
		require.InDelta(t, tc.want, res.Value, 1e-9, "expression %q", tc.expr)
	}
}

func TestCalculatorFailures(t *testing.T) {
	cases := []struct {
		name    string
		expr    string
		message string
	}{
		{"division by zero", "1/0", "division by zero"},
		{"modulo by zero", "5 % 0", "modulo by zero"},
		{"unknown function", "foo(3)", "unknown function 'foo'"},
		{"bare identifier", "x + 1", "unknown identifier"},
		{"dangling operator", "2 +", "unexpected end of expression"},
		{"unbalanced paren", "(2 + 3", "expected ')'"},
		{"stray character", "2 $ 3", "unexpected character"},
		{"sqrt negative", "sqrt(-4)", "sqrt of negative number"},
		{"log non-positive", "log(0)", "log of non-positive number"},
		{"wrong arity", "sin(1, 2)", "expects 1 argument"},
		{"round arity", "round(1, 2, 3)", "expects 1 or 2 arguments"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := calcResult(t, tc.expr)
			require.False(t, res.Success, "expression %q should fail", tc.expr)
			require.Contains(t, res.Error, "Calculation error")
			require.Contains(t, res.Error, tc.message)
		})
	}
}

func TestCalculatorMissingExpression(t *testing.T) {
	tool := &CalculatorTool{}

	res := tool.Execute(context.Background(), map[string]any{})
	require.False(t, res.Success)
	require.Contains(t, res.Error, "'expression' argument is required")

	res = tool.Execute(context.Background(), map[string]any{"expression": 42})
	require.False(t, res.Success)
}

func TestCalculatorRejectsNonNumericGrammar(t *testing.T) {
	// Anything that smells like code rather than arithmetic must be a
	// parse failure, never an evaluation.
	for _, expr := range []string{
		"__import__('os')",
		"open('/etc/passwd')",
		"1; 2",
		"a = 5",
	} {
		res := calcResult(t, expr)
		require.False(t, res.Success, "expression %q should fail", expr)
	}
}
