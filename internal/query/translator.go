// Package query translates the user-facing boolean/phrase mini-language into
// the query string accepted by the upstream search affiliate.
package query

import (
	"fmt"
	"strings"

	"github.com/va2ai/bvaapi2/internal/model"
)

// Translate parses a raw query and reassembles it in the upstream engine's
// form: plain terms joined by spaces (implicit AND), explicit OR kept as an
// operator, NOT rendered as a leading "-" on the next token, and quoted
// phrases preserved verbatim. Translate is a pure function; translating an
// already-translated query with no remaining boolean syntax is a no-op.
func Translate(raw string) (string, error) {
	tokens, err := tokenize(raw)
	if err != nil {
		return "", err
	}

	var out []string
	negateNext := false
	for i, tok := range tokens {
		switch {
		case tok.kind == tokAnd:
			// Implicit: adjacency already means AND.
			if i == 0 || i == len(tokens)-1 {
				return "", fmt.Errorf("%w: dangling AND", model.ErrInvalidQuery)
			}
		case tok.kind == tokOr:
			if len(out) == 0 || i == len(tokens)-1 {
				return "", fmt.Errorf("%w: dangling OR", model.ErrInvalidQuery)
			}
			out = append(out, "OR")
		case tok.kind == tokNot:
			if i == len(tokens)-1 {
				return "", fmt.Errorf("%w: dangling NOT", model.ErrInvalidQuery)
			}
			negateNext = true
		default:
			term := tok.text
			if tok.kind == tokPhrase {
				term = `"` + term + `"`
			}
			if negateNext {
				term = "-" + strings.TrimPrefix(term, "-")
				negateNext = false
			}
			out = append(out, term)
		}
	}

	if len(out) == 0 {
		return "", fmt.Errorf("%w: empty after parsing", model.ErrInvalidQuery)
	}
	return strings.Join(out, " "), nil
}

type tokenKind int

const (
	tokTerm tokenKind = iota
	tokPhrase
	tokAnd
	tokOr
	tokNot
)

type token struct {
	kind tokenKind
	text string
}

// tokenize splits the query into terms, operators and quoted phrases.
// Operators are matched case-insensitively on word boundaries; everything
// inside double quotes is a single phrase token and never split.
func tokenize(raw string) ([]token, error) {
	var tokens []token
	rest := strings.TrimSpace(raw)

	for rest != "" {
		if rest[0] == '"' {
			end := strings.IndexByte(rest[1:], '"')
			if end < 0 {
				return nil, fmt.Errorf("%w: unbalanced quote", model.ErrInvalidQuery)
			}
			phrase := strings.TrimSpace(rest[1 : end+1])
			if phrase != "" {
				tokens = append(tokens, token{kind: tokPhrase, text: phrase})
			}
			rest = strings.TrimSpace(rest[end+2:])
			continue
		}

		word := rest
		if idx := strings.IndexAny(rest, " \t\n\""); idx >= 0 {
			if rest[idx] == '"' {
				word = rest[:idx]
				rest = rest[idx:]
			} else {
				word = rest[:idx]
				rest = strings.TrimSpace(rest[idx+1:])
			}
		} else {
			rest = ""
		}
		if word == "" {
			continue
		}

		switch strings.ToUpper(word) {
		case "AND":
			tokens = append(tokens, token{kind: tokAnd})
		case "OR":
			tokens = append(tokens, token{kind: tokOr})
		case "NOT":
			tokens = append(tokens, token{kind: tokNot})
		default:
			tokens = append(tokens, token{kind: tokTerm, text: word})
		}
	}

	return tokens, nil
}
