// Package token lexes snippet source into a flat token stream.
// The stream is consumed immediately by the parser and never retained.
package token

// Kind classifies a lexed token.
type Kind int

const (
	Identifier Kind = iota
	Number
	String
	Template
	Operator
	Punct
	Comment
)

func (k Kind) String() string {
	switch k {
	case Identifier:
		return "identifier"
	case Number:
		return "number"
	case String:
		return "string"
	case Template:
		return "template"
	case Operator:
		return "operator"
	case Punct:
		return "punct"
	case Comment:
		return "comment"
	default:
		return "unknown"
	}
}

// Token is a single lexeme. Text preserves the raw source slice: string and
// template tokens keep their quotes, comment tokens keep their markers.
type Token struct {
	Kind Kind
	Text string
	Pos  int // 0-based byte offset of the first character
}

// multi-character operators, longest first
var operators3 = []string{"===", "!==", "...", "**=", "&&=", "||="}

var operators2 = []string{
	"==", "!=", "<=", ">=", "&&", "||", "=>", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "**", "??",
}

const operators1 = "+-*/%<>=!&|?:^~"

// Tokenize lexes source into tokens. It never fails: characters outside the
// recognized set are emitted as single-character punctuation and left for the
// parser to reject.
func Tokenize(source string) []Token {
	var toks []Token
	i := 0
	n := len(source)

	for i < n {
		ch := source[i]

		// whitespace
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			i++
			continue
		}

		// comments
		if ch == '/' && i+1 < n && source[i+1] == '/' {
			start := i
			for i < n && source[i] != '\n' {
				i++
			}
			toks = append(toks, Token{Comment, source[start:i], start})
			continue
		}
		if ch == '/' && i+1 < n && source[i+1] == '*' {
			start := i
			i += 2
			for i+1 < n && !(source[i] == '*' && source[i+1] == '/') {
				i++
			}
			if i+1 < n {
				i += 2
			} else {
				i = n
			}
			toks = append(toks, Token{Comment, source[start:i], start})
			continue
		}

		// identifiers and keywords (keywords stay identifiers; the parser
		// decides what is reserved)
		if isLetter(ch) {
			start := i
			for i < n && (isLetter(source[i]) || isDigit(source[i])) {
				i++
			}
			toks = append(toks, Token{Identifier, source[start:i], start})
			continue
		}

		// numeric literals, including decimals
		if isDigit(ch) {
			start := i
			for i < n && (isDigit(source[i]) || source[i] == '.') {
				i++
			}
			toks = append(toks, Token{Number, source[start:i], start})
			continue
		}

		// quoted strings
		if ch == '"' || ch == '\'' {
			start := i
			i++
			for i < n && source[i] != ch {
				if source[i] == '\\' && i+1 < n {
					i++
				}
				i++
			}
			if i < n {
				i++
			}
			toks = append(toks, Token{String, source[start:i], start})
			continue
		}

		// template literals; ${...} interpolation may nest braces, so the
		// closing backtick is found by tracking interpolation depth
		if ch == '`' {
			start := i
			i++
			depth := 0
			for i < n {
				if source[i] == '\\' && i+1 < n {
					i += 2
					continue
				}
				if source[i] == '$' && i+1 < n && source[i+1] == '{' {
					depth++
					i += 2
					continue
				}
				if depth > 0 && source[i] == '}' {
					depth--
					i++
					continue
				}
				if depth == 0 && source[i] == '`' {
					i++
					break
				}
				i++
			}
			toks = append(toks, Token{Template, source[start:i], start})
			continue
		}

		// operators, longest match first
		if matched := matchOperator(source, i); matched != "" {
			toks = append(toks, Token{Operator, matched, i})
			i += len(matched)
			continue
		}

		// everything else is punctuation, recognized or not
		toks = append(toks, Token{Punct, source[i : i+1], i})
		i++
	}

	return toks
}

func matchOperator(source string, i int) string {
	for _, op := range operators3 {
		if hasAt(source, i, op) {
			return op
		}
	}
	for _, op := range operators2 {
		if hasAt(source, i, op) {
			return op
		}
	}
	for j := 0; j < len(operators1); j++ {
		if source[i] == operators1[j] {
			return source[i : i+1]
		}
	}
	return ""
}

func hasAt(s string, i int, sub string) bool {
	return i+len(sub) <= len(s) && s[i:i+len(sub)] == sub
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch == '$'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
