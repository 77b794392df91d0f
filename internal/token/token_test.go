package token

import "testing"

func TestTokenizeBasic(t *testing.T) {
	toks := Tokenize("let x = 42;")
	want := []Token{
		{Identifier, "let", 0},
		{Identifier, "x", 4},
		{Operator, "=", 6},
		{Number, "42", 8},
		{Punct, ";", 10},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %#v", len(toks), len(want), toks)
	}
	for i, tok := range toks {
		if tok != want[i] {
			t.Errorf("token %d = %#v, want %#v", i, tok, want[i])
		}
	}
}

func TestTokenizeLongestMatch(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{source: "a === b", want: "==="},
		{source: "a !== b", want: "!=="},
		{source: "a == b", want: "=="},
		{source: "a <= b", want: "<="},
		{source: "a && b", want: "&&"},
		{source: "f(...xs)", want: "..."},
		{source: "i++", want: "++"},
		{source: "x += 1", want: "+="},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			for _, tok := range Tokenize(tc.source) {
				if tok.Kind == Operator && tok.Text == tc.want {
					return
				}
			}
			t.Fatalf("Tokenize(%q) missing operator %q", tc.source, tc.want)
		})
	}
}

func TestTokenizeStringsKeepQuotes(t *testing.T) {
	toks := Tokenize(`greet("hi", 'there')`)
	var strs []string
	for _, tok := range toks {
		if tok.Kind == String {
			strs = append(strs, tok.Text)
		}
	}
	if len(strs) != 2 || strs[0] != `"hi"` || strs[1] != "'there'" {
		t.Fatalf("string tokens = %q", strs)
	}
}

func TestTokenizeEscapedQuote(t *testing.T) {
	toks := Tokenize(`"a\"b"`)
	if len(toks) != 1 || toks[0].Kind != String || toks[0].Text != `"a\"b"` {
		t.Fatalf("tokens = %#v", toks)
	}
}

func TestTokenizeTemplateInterpolation(t *testing.T) {
	// the interpolated object literal's braces must not close the template
	source := "`value: ${fmt({a: 1})}` + x"
	toks := Tokenize(source)
	if toks[0].Kind != Template {
		t.Fatalf("first token = %#v, want template", toks[0])
	}
	if toks[0].Text != "`value: ${fmt({a: 1})}`" {
		t.Fatalf("template text = %q", toks[0].Text)
	}
	if toks[1].Kind != Operator || toks[1].Text != "+" {
		t.Fatalf("second token = %#v", toks[1])
	}
}

func TestTokenizeComments(t *testing.T) {
	toks := Tokenize("// line\n/* block */ x")
	if toks[0].Kind != Comment || toks[0].Text != "// line" {
		t.Fatalf("line comment = %#v", toks[0])
	}
	if toks[1].Kind != Comment || toks[1].Text != "/* block */" {
		t.Fatalf("block comment = %#v", toks[1])
	}
	if toks[2].Kind != Identifier || toks[2].Text != "x" {
		t.Fatalf("trailing token = %#v", toks[2])
	}
}

func TestTokenizeNeverFails(t *testing.T) {
	// unknown characters come through as punctuation for the parser to reject
	toks := Tokenize("@ # let")
	if toks[0] != (Token{Punct, "@", 0}) {
		t.Fatalf("tokens[0] = %#v", toks[0])
	}
	if toks[1] != (Token{Punct, "#", 2}) {
		t.Fatalf("tokens[1] = %#v", toks[1])
	}
}

func TestTokenizeDecimalNumber(t *testing.T) {
	toks := Tokenize("3.14")
	if len(toks) != 1 || toks[0].Kind != Number || toks[0].Text != "3.14" {
		t.Fatalf("tokens = %#v", toks)
	}
}

func TestTokenizeEmpty(t *testing.T) {
	if toks := Tokenize(""); len(toks) != 0 {
		t.Fatalf("Tokenize(\"\") = %#v, want empty", toks)
	}
	if toks := Tokenize("   \n\t  "); len(toks) != 0 {
		t.Fatalf("whitespace-only = %#v, want empty", toks)
	}
}
