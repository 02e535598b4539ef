package tools

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/jbdamask/tinker/pkg/llm"
)

// CalculatorTool evaluates arithmetic expressions with a dedicated
// parser. The grammar covers float literals, + - * / % **, parentheses,
// unary minus, and a fixed whitelist of functions. Nothing outside that
// grammar is evaluated.
type CalculatorTool struct{}

func (t *CalculatorTool) Definition() llm.ToolDefinition {
	return llm.ToolDefinition{
		Name:        "calculator",
		Description: "Perform mathematical calculations",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"expression": map[string]any{
					"type":        "string",
					"description": "Mathematical expression to evaluate (e.g., '2 + 3 * 4', 'sqrt(16)')",
				},
			},
			"required": []string{"expression"},
		},
	}
}

func (t *CalculatorTool) Execute(ctx context.Context, args map[string]any) Result {
	expr, ok := args["expression"].(string)
	if !ok || strings.TrimSpace(expr) == "" {
		return Errorf("Calculation error: 'expression' argument is required")
	}

	value, err := evaluate(expr)
	if err != nil {
		return Errorf("Calculation error: %s", err)
	}
	return Ok(value)
}

// evaluate parses and computes expr in one pass.
func evaluate(expr string) (float64, error) {
	p := &exprParser{input: expr}
	if err := p.tokenize(); err != nil {
		return 0, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if !p.atEnd() {
		return 0, fmt.Errorf("unexpected token %q", p.peek().text)
	}
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, fmt.Errorf("result is not a finite number")
	}
	return value, nil
}

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokIdent
	tokOp
	tokEOF
)

type token struct {
	kind tokenKind
	text string
	num  float64
}

type exprParser struct {
	input  string
	tokens []token
	pos    int
}

func (p *exprParser) tokenize() error {
	runes := []rune(p.input)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r) || r == '.':
			start := i
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
				i++
			}
			// Exponent suffix: 1e9, 2.5E-3
			if i < len(runes) && (runes[i] == 'e' || runes[i] == 'E') {
				j := i + 1
				if j < len(runes) && (runes[j] == '+' || runes[j] == '-') {
					j++
				}
				if j < len(runes) && unicode.IsDigit(runes[j]) {
					i = j
					for i < len(runes) && unicode.IsDigit(runes[i]) {
						i++
					}
				}
			}
			text := string(runes[start:i])
			num, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return fmt.Errorf("invalid number %q", text)
			}
			p.tokens = append(p.tokens, token{kind: tokNumber, text: text, num: num})
		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			p.tokens = append(p.tokens, token{kind: tokIdent, text: string(runes[start:i])})
		case r == '*':
			if i+1 < len(runes) && runes[i+1] == '*' {
				p.tokens = append(p.tokens, token{kind: tokOp, text: "**"})
				i += 2
			} else {
				p.tokens = append(p.tokens, token{kind: tokOp, text: "*"})
				i++
			}
		case strings.ContainsRune("+-/%(),", r):
			p.tokens = append(p.tokens, token{kind: tokOp, text: string(r)})
			i++
		default:
			return fmt.Errorf("unexpected character %q", string(r))
		}
	}
	p.tokens = append(p.tokens, token{kind: tokEOF, text: "end of expression"})
	return nil
}

func (p *exprParser) peek() token { return p.tokens[p.pos] }
func (p *exprParser) next() token { t := p.tokens[p.pos]; p.pos++; return t }
func (p *exprParser) atEnd() bool { return p.peek().kind == tokEOF }

func (p *exprParser) acceptOp(op string) bool {
	if t := p.peek(); t.kind == tokOp && t.text == op {
		p.pos++
		return true
	}
	return false
}

// parseExpr := term (('+'|'-') term)*
func (p *exprParser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		switch {
		case p.acceptOp("+"):
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left += right
		case p.acceptOp("-"):
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left -= right
		default:
			return left, nil
		}
	}
}

// parseTerm := unary (('*'|'/'|'%') unary)*
func (p *exprParser) parseTerm() (float64, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		switch {
		case p.acceptOp("*"):
			right, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			left *= right
		case p.acceptOp("/"):
			right, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			left /= right
		case p.acceptOp("%"):
			right, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, fmt.Errorf("modulo by zero")
			}
			left = math.Mod(left, right)
		default:
			return left, nil
		}
	}
}

// parseUnary := '-' unary | power. Unary minus binds looser than **, so
// -2**2 evaluates to -4.
func (p *exprParser) parseUnary() (float64, error) {
	if p.acceptOp("-") {
		value, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return -value, nil
	}
	return p.parsePower()
}

// parsePower := primary ('**' unary)?  — right-associative.
func (p *exprParser) parsePower() (float64, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return 0, err
	}
	if p.acceptOp("**") {
		exp, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return math.Pow(base, exp), nil
	}
	return base, nil
}

// parsePrimary := NUMBER | '(' expr ')' | IDENT '(' args ')'
func (p *exprParser) parsePrimary() (float64, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return t.num, nil
	case tokOp:
		if t.text == "(" {
			value, err := p.parseExpr()
			if err != nil {
				return 0, err
			}
			if !p.acceptOp(")") {
				return 0, fmt.Errorf("expected ')' but found %q", p.peek().text)
			}
			return value, nil
		}
		return 0, fmt.Errorf("unexpected token %q", t.text)
	case tokIdent:
		return p.parseCall(t.text)
	default:
		return 0, fmt.Errorf("unexpected end of expression")
	}
}

func (p *exprParser) parseCall(name string) (float64, error) {
	if !p.acceptOp("(") {
		return 0, fmt.Errorf("unknown identifier %q", name)
	}
	var args []float64
	if !p.acceptOp(")") {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return 0, err
			}
			args = append(args, arg)
			if p.acceptOp(",") {
				continue
			}
			if p.acceptOp(")") {
				break
			}
			return 0, fmt.Errorf("expected ')' but found %q", p.peek().text)
		}
	}
	return applyFunction(name, args)
}

func applyFunction(name string, args []float64) (float64, error) {
	// round takes an optional precision argument; everything else is
	// strictly unary.
	if name == "round" {
		switch len(args) {
		case 1:
			return math.Round(args[0]), nil
		case 2:
			shift := math.Pow(10, math.Trunc(args[1]))
			return math.Round(args[0]*shift) / shift, nil
		default:
			return 0, fmt.Errorf("function 'round' expects 1 or 2 arguments, got %d", len(args))
		}
	}

	fns := map[string]func(float64) (float64, error){
		"sqrt": func(x float64) (float64, error) {
			if x < 0 {
				return 0, fmt.Errorf("sqrt of negative number")
			}
			return math.Sqrt(x), nil
		},
		"sin": func(x float64) (float64, error) { return math.Sin(x), nil },
		"cos": func(x float64) (float64, error) { return math.Cos(x), nil },
		"tan": func(x float64) (float64, error) { return math.Tan(x), nil },
		"log": func(x float64) (float64, error) {
			if x <= 0 {
				return 0, fmt.Errorf("log of non-positive number")
			}
			return math.Log(x), nil
		},
		"exp": func(x float64) (float64, error) { return math.Exp(x), nil },
		"abs": func(x float64) (float64, error) { return math.Abs(x), nil },
	}

	fn, ok := fns[name]
	if !ok {
		return 0, fmt.Errorf("unknown function '%s'", name)
	}
	if len(args) != 1 {
		return 0, fmt.Errorf("function '%s' expects 1 argument, got %d", name, len(args))
	}
	return fn(args[0])
}
