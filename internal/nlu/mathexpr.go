package nlu

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrDivideByZero is returned when an expression divides by zero.
var ErrDivideByZero = errors.New("divide by zero")

var cnNumReplacer = strings.NewReplacer(
	"十", "10",
	"零", "0", "一", "1", "二", "2", "三", "3", "四", "4",
	"五", "5", "六", "6", "七", "7", "八", "8", "九", "9",
)

var cnOpReplacer = strings.NewReplacer(
	"乘以", "*", "除以", "/",
	"加", "+", "减", "-", "乘", "*", "除", "/",
	"×", "*", "÷", "/",
)

var (
	mathExprRe      = regexp.MustCompile(`[\d+\-*/().\s]+`)
	validMathExprRe = regexp.MustCompile(`^[\d+\-*/().\s]+$`)
)

// ParseMathExpression pulls an arithmetic expression out of free text,
// converting Chinese numerals and operator words first. It reports false when
// no safe expression is present.
func ParseMathExpression(text string) (string, bool) {
	text = cnNumReplacer.Replace(text)
	text = cnOpReplacer.Replace(text)

	expr := strings.TrimSpace(mathExprRe.FindString(text))
	if expr == "" || !validMathExprRe.MatchString(expr) {
		return "", false
	}
	// A bare operator or parenthesis is not an expression.
	if !strings.ContainsAny(expr, "0123456789") {
		return "", false
	}
	return expr, true
}

// EvalMathExpression evaluates +, -, *, / and parentheses with standard
// precedence.
func EvalMathExpression(expr string) (float64, error) {
	p := &exprParser{input: expr}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return 0, fmt.Errorf("unexpected character %q at %d", p.input[p.pos], p.pos)
	}
	return v, nil
}

type exprParser struct {
	input string
	pos   int
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func (p *exprParser) peek() byte {
	p.skipSpace()
	if p.pos < len(p.input) {
		return p.input[p.pos]
	}
	return 0
}

func (p *exprParser) parseExpr() (float64, error) {
	v, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			v += rhs
		case '-':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			v -= rhs
		default:
			return v, nil
		}
	}
}

func (p *exprParser) parseTerm() (float64, error) {
	v, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			rhs, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			v *= rhs
		case '/':
			p.pos++
			rhs, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			if rhs == 0 {
				return 0, ErrDivideByZero
			}
			v /= rhs
		default:
			return v, nil
		}
	}
}

func (p *exprParser) parseFactor() (float64, error) {
	switch c := p.peek(); {
	case c == '(':
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, errors.New("missing closing parenthesis")
		}
		p.pos++
		return v, nil
	case c == '-':
		p.pos++
		v, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		return -v, nil
	case c >= '0' && c <= '9' || c == '.':
		start := p.pos
		for p.pos < len(p.input) {
			c := p.input[p.pos]
			if (c < '0' || c > '9') && c != '.' {
				break
			}
			p.pos++
		}
		return strconv.ParseFloat(p.input[start:p.pos], 64)
	default:
		return 0, errors.New("expected number")
	}
}
