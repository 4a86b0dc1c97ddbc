package license

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenKind discriminates expression tokens.
type TokenKind int

const (
	// TokenAtom is a license name, possibly multi-word, not yet normalized.
	TokenAtom TokenKind = iota

	// TokenAnd is the boolean AND operator.
	TokenAnd

	// TokenOr is the boolean OR operator.
	TokenOr

	// TokenLParen is an opening parenthesis.
	TokenLParen

	// TokenRParen is a closing parenthesis.
	TokenRParen
)

// Token is one element of a tokenized license expression.
type Token struct {
	Kind TokenKind
	Text string
}

// Atom builds an atom token carrying the raw license text.
func Atom(text string) Token { return Token{Kind: TokenAtom, Text: text} }

// And and Or are the operator tokens; LParen and RParen the parentheses.
var (
	And    = Token{Kind: TokenAnd, Text: "AND"}
	Or     = Token{Kind: TokenOr, Text: "OR"}
	LParen = Token{Kind: TokenLParen, Text: "("}
	RParen = Token{Kind: TokenRParen, Text: ")"}
)

// IsOperator reports whether the token is AND or OR.
func (t Token) IsOperator() bool {
	return t.Kind == TokenAnd || t.Kind == TokenOr
}

// String returns the token's surface text.
func (t Token) String() string { return t.Text }

var (
	separatorRe = regexp.MustCompile(`[\\/;,+]`)
	andOrWordRe = regexp.MustCompile(`(?i)^(and|or)$`)
)

// Tokenizer converts raw license strings into token sequences. It consults
// the mapping table so that multi-word license phrases survive as single
// atoms instead of being split on whitespace.
type Tokenizer struct {
	table MappingTable
}

// NewTokenizer returns a Tokenizer backed by the given table.
func NewTokenizer(table MappingTable) Tokenizer {
	return Tokenizer{table: table}
}

// Tokenize scans expr into parentheses, AND/OR operators, and license atoms.
//
// Separator characters (backslash, slash, semicolon, comma, plus) are first
// replaced with the operator word matching strict: AND under strict mode,
// OR otherwise. A bare "and" or "or" word, by contrast, is an explicit
// expression operator and is emitted as AND or OR regardless of strict.
// Empty input and the Unknown sentinel yield no tokens.
func (t Tokenizer) Tokenize(expr string, strict bool) []Token {
	if expr == "" || expr == UnknownLicense {
		return nil
	}

	sepWord := " OR "
	if strict {
		sepWord = " AND "
	}
	cleaned := separatorRe.ReplaceAllString(expr, sepWord)
	cleaned = strings.TrimSpace(collapseWhitespace(cleaned))

	var tokens []Token
	i := 0
	for i < len(cleaned) {
		switch cleaned[i] {
		case ' ':
			i++
			continue
		case '(':
			tokens = append(tokens, LParen)
			i++
			continue
		case ')':
			tokens = append(tokens, RParen)
			i++
			continue
		}

		// Greedy longest-first match of known multi-word phrases, so that
		// names like "gnu library or lesser general public license" keep
		// their embedded "or" instead of becoming an operator.
		matched := false
		for _, phrase := range t.table.MultiWordKeys() {
			if n, ok := foldPrefixLen(cleaned[i:], phrase); ok {
				tokens = append(tokens, Atom(cleaned[i:i+n]))
				i += n
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		j := i
		for j < len(cleaned) && cleaned[j] != ' ' && cleaned[j] != '(' && cleaned[j] != ')' {
			j++
		}
		word := cleaned[i:j]
		i = j

		if andOrWordRe.MatchString(word) {
			if strings.EqualFold(word, "and") {
				tokens = append(tokens, And)
			} else {
				tokens = append(tokens, Or)
			}
			continue
		}
		tokens = append(tokens, Atom(word))
	}
	return tokens
}

// foldPrefixLen reports whether s begins with phrase under case folding,
// where phrase is already lowercase. It returns the number of bytes of s the
// match consumed, which can differ from len(phrase) for runes whose lowercase
// mapping changes byte length (e.g. the Kelvin sign).
func foldPrefixLen(s, phrase string) (int, bool) {
	n := 0
	for _, want := range phrase {
		r, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 || unicode.ToLower(r) != want {
			return 0, false
		}
		n += size
	}
	return n, true
}

// HasOperator reports whether the token sequence contains a boolean operator.
// Single-atom expressions need no combination logic and reduce to a direct
// set-membership test.
func HasOperator(tokens []Token) bool {
	for _, tok := range tokens {
		if tok.IsOperator() {
			return true
		}
	}
	return false
}
