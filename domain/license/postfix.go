package license

import (
	"errors"
	"fmt"
)

// ErrMismatchedParens reports unbalanced parentheses in a license expression.
// The error is recoverable: callers fall back to split-based evaluation.
var ErrMismatchedParens = errors.New("mismatched parenthesis in license expression")

// precedence returns the binding strength of an operator token. AND binds
// tighter than OR.
func precedence(t Token) (int, bool) {
	switch t.Kind {
	case TokenAnd:
		return 2, true
	case TokenOr:
		return 1, true
	default:
		return 0, false
	}
}

// ToPostfix converts an infix token sequence to reverse-Polish order using
// the shunting-yard algorithm. It fails with ErrMismatchedParens when a
// closing parenthesis has no opener or an opener is never closed.
func ToPostfix(tokens []Token) ([]Token, error) {
	output := make([]Token, 0, len(tokens))
	var stack []Token

	for _, tok := range tokens {
		if prec, ok := precedence(tok); ok {
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				topPrec, isOp := precedence(top)
				if !isOp || topPrec < prec {
					break
				}
				output = append(output, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)
			continue
		}
		switch tok.Kind {
		case TokenLParen:
			stack = append(stack, tok)
		case TokenRParen:
			for len(stack) > 0 && stack[len(stack)-1].Kind != TokenLParen {
				output = append(output, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return nil, fmt.Errorf("unexpected ')': %w", ErrMismatchedParens)
			}
			stack = stack[:len(stack)-1]
		default:
			output = append(output, tok)
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.Kind == TokenLParen || top.Kind == TokenRParen {
			return nil, fmt.Errorf("unclosed %q: %w", top.Text, ErrMismatchedParens)
		}
		output = append(output, top)
		stack = stack[:len(stack)-1]
	}
	return output, nil
}

// ParseResult is the tagged outcome of parsing a tokenized expression.
// Callers inspect Err and explicitly choose the fallback evaluator instead of
// relying on unwinding control flow.
type ParseResult struct {
	Postfix []Token
	Err     error
}

// Parse runs ToPostfix and wraps the outcome in a ParseResult.
func Parse(tokens []Token) ParseResult {
	postfix, err := ToPostfix(tokens)
	return ParseResult{Postfix: postfix, Err: err}
}
