package license

import (
	"errors"
	"regexp"
	"strings"

	"github.com/licensedeny/licensedeny/domain/entities"
)

// ErrMalformedExpression reports a postfix sequence whose operators outnumber
// their operands. Like parse errors, it is absorbed by the fallback path.
var ErrMalformedExpression = errors.New("malformed license expression")

var (
	parenRe      = regexp.MustCompile(`[()]`)
	andOrSplitRe = regexp.MustCompile(`(?i)\s+(?:and|or)\s+`)
	andOrFindRe  = regexp.MustCompile(`(?i)\b(and|or)\b`)
	openParenRe  = regexp.MustCompile(`\s*\(\s*`)
	closeParenRe = regexp.MustCompile(`\s*\)\s*`)
)

// Evaluator decides license compliance for raw license strings. It bundles
// the normalizer and tokenizer over one shared mapping table.
type Evaluator struct {
	norm Normalizer
	tok  Tokenizer
}

// NewEvaluator returns an Evaluator backed by the given table.
func NewEvaluator(table MappingTable) Evaluator {
	return Evaluator{norm: NewNormalizer(table), tok: NewTokenizer(table)}
}

// Normalizer exposes the underlying normalizer.
func (e Evaluator) Normalizer() Normalizer { return e.norm }

// Tokenizer exposes the underlying tokenizer.
func (e Evaluator) Tokenizer() Tokenizer { return e.tok }

// EvaluatePostfix walks a postfix token sequence with a boolean operand
// stack. Atoms push their normalized membership in allowed. AND computes
// logical AND; OR computes logical OR, except under strict mode where OR is
// also evaluated as AND: strict means every named license in a compound
// expression must be allowed, not just syntactic conjunctions.
//
// An empty sequence evaluates to false. An operator with fewer than two
// operands is ErrMalformedExpression. A leftover stack with more than one
// value degrades gracefully: all values must hold under strict mode, any
// value suffices otherwise.
func (e Evaluator) EvaluatePostfix(postfix []Token, allowed entities.StringSet, strict bool) (bool, error) {
	if len(postfix) == 0 {
		return false, nil
	}
	var stack []bool
	for _, tok := range postfix {
		if tok.IsOperator() {
			if len(stack) < 2 {
				return false, ErrMalformedExpression
			}
			right := stack[len(stack)-1]
			left := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			if tok.Kind == TokenAnd || strict {
				stack = append(stack, left && right)
			} else {
				stack = append(stack, left || right)
			}
			continue
		}
		stack = append(stack, allowed.Contains(e.norm.Normalize(tok.Text)))
	}
	if len(stack) != 1 {
		if strict {
			return allBool(stack), nil
		}
		return anyBool(stack), nil
	}
	return stack[0], nil
}

// SplitExpression is the legacy fallback splitter: parentheses become spaces,
// separator characters become the strict-dependent operator word, and the
// result is split on AND/OR words when present, on the separator operator
// otherwise.
func (e Evaluator) SplitExpression(expr string, strict bool) []string {
	if expr == "" || expr == UnknownLicense {
		return []string{expr}
	}
	sepOperator := " OR "
	if strict {
		sepOperator = " AND "
	}
	cleaned := parenRe.ReplaceAllString(expr, " ")
	cleaned = separatorRe.ReplaceAllString(cleaned, sepOperator)

	var rawParts []string
	if andOrFindRe.MatchString(cleaned) {
		rawParts = andOrSplitRe.Split(cleaned, -1)
	} else {
		rawParts = strings.Split(cleaned, sepOperator)
	}
	parts := make([]string, 0, len(rawParts))
	for _, p := range rawParts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

// IsCompliant is the top-level compliance decision for one raw license
// string. It never returns an error: tokenizer, parser, or evaluator
// failures degrade to the split-based fallback, which requires all parts
// allowed under strict mode and any part allowed otherwise.
func (e Evaluator) IsCompliant(raw string, allowed entities.StringSet, strict bool) bool {
	if raw == "" || raw == UnknownLicense {
		return false
	}
	tokens := e.tok.Tokenize(raw, strict)
	if !HasOperator(tokens) {
		// A single atom needs no combination logic.
		return allowed.Contains(e.norm.Normalize(raw))
	}
	if res := Parse(tokens); res.Err == nil {
		verdict, err := e.EvaluatePostfix(res.Postfix, allowed, strict)
		if err == nil {
			return verdict
		}
	}
	return e.fallbackCompliant(raw, allowed, strict)
}

func (e Evaluator) fallbackCompliant(raw string, allowed entities.StringSet, strict bool) bool {
	parts := e.SplitExpression(raw, strict)
	if len(parts) == 0 {
		return false
	}
	if strict {
		for _, part := range parts {
			if !allowed.Contains(e.norm.Normalize(part)) {
				return false
			}
		}
		return true
	}
	for _, part := range parts {
		if allowed.Contains(e.norm.Normalize(part)) {
			return true
		}
	}
	return false
}

// NormalizedParts returns every normalized license atom named in expr,
// ignoring operators and parentheses. Deny-list intersection and copyleft
// detection run over this set.
func (e Evaluator) NormalizedParts(expr string) entities.StringSet {
	parts := entities.NewStringSet()
	for _, tok := range e.tok.Tokenize(expr, false) {
		if tok.Kind != TokenAtom {
			continue
		}
		if normalized := e.norm.Normalize(tok.Text); normalized != "" {
			parts.Add(normalized)
		}
	}
	return parts
}

// NormalizeForDisplay renders expr with every atom normalized while keeping
// the expression structure readable: single atoms normalize directly,
// compound expressions keep their operators and parentheses with tightened
// spacing.
func (e Evaluator) NormalizeForDisplay(expr string) string {
	if expr == "" {
		return expr
	}
	tokens := e.tok.Tokenize(expr, false)
	if len(tokens) == 0 {
		return strings.TrimSpace(expr)
	}
	compound := false
	for _, tok := range tokens {
		if tok.Kind != TokenAtom {
			compound = true
			break
		}
	}
	if !compound {
		return e.norm.Normalize(expr)
	}
	rendered := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind == TokenAtom {
			rendered = append(rendered, e.norm.Normalize(tok.Text))
		} else {
			rendered = append(rendered, tok.Text)
		}
	}
	text := strings.Join(rendered, " ")
	text = openParenRe.ReplaceAllString(text, "(")
	text = closeParenRe.ReplaceAllString(text, ")")
	return strings.TrimSpace(collapseWhitespace(text))
}

func allBool(values []bool) bool {
	for _, v := range values {
		if !v {
			return false
		}
	}
	return true
}

func anyBool(values []bool) bool {
	for _, v := range values {
		if v {
			return true
		}
	}
	return false
}
