package gen

import (
	"testing"

	"snipforge/internal/ast"
	"snipforge/internal/parser"
)

func TestInferParamType(t *testing.T) {
	cases := []struct {
		name string
		want TypeHint
	}{
		{name: "count", want: HintInt},
		{name: "startIndex", want: HintInt},
		{name: "numItems", want: HintInt},
		{name: "name", want: HintString},
		{name: "filePath", want: HintString},
		{name: "message", want: HintString},
		{name: "isActive", want: HintBool},
		{name: "hasChildren", want: HintBool},
		{name: "shouldRetry", want: HintBool},
		{name: "i", want: HintInt},
		{name: "n", want: HintInt},
		{name: "arr", want: HintArray},
		{name: "items", want: HintArray},
		{name: "x", want: HintUnknown},
		// the prefix alone is not a boolean name
		{name: "is", want: HintUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := InferParamType(tc.name); got != tc.want {
				t.Fatalf("InferParamType(%q) = %v, want %v", tc.name, got, tc.want)
			}
		})
	}
}

func TestInferReturnType(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   TypeHint
	}{
		{name: "int_literal", source: "function f() { return 42; }", want: HintInt},
		{name: "float_literal", source: "function f() { return 3.14; }", want: HintFloat},
		{name: "string_literal", source: `function f() { return "hi"; }`, want: HintString},
		{name: "bool_literal", source: "function f() { return true; }", want: HintBool},
		{name: "array_literal", source: "function f() { return [1, 2]; }", want: HintArray},
		{name: "comparison", source: "function f(a, b) { return a < b; }", want: HintBool},
		{name: "nested_in_if", source: "function f(x) { if (x) { return 1; } return y; }", want: HintInt},
		{name: "bare_return", source: "function f() { return; }", want: HintUnknown},
		{name: "no_literal_signal", source: "function f(x) { return x; }", want: HintUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prog, err := parser.Parse(tc.source)
			if err != nil {
				t.Fatal(err)
			}
			fn := prog.Body[0].(*ast.FunctionDecl)
			if got := InferReturnType(fn.Body); got != tc.want {
				t.Fatalf("InferReturnType = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTypeNameTables(t *testing.T) {
	cases := []struct {
		hint TypeHint
		g    string
		r    string
		ts   string
	}{
		{hint: HintInt, g: "int", r: "i64", ts: "number"},
		{hint: HintFloat, g: "float64", r: "f64", ts: "number"},
		{hint: HintString, g: "string", r: "String", ts: "string"},
		{hint: HintBool, g: "bool", r: "bool", ts: "boolean"},
		{hint: HintUnknown, g: "interface{}", r: "i64", ts: "any"},
	}
	for _, tc := range cases {
		if got := GoTypeName(tc.hint); got != tc.g {
			t.Errorf("GoTypeName(%v) = %q, want %q", tc.hint, got, tc.g)
		}
		if got := RustTypeName(tc.hint); got != tc.r {
			t.Errorf("RustTypeName(%v) = %q, want %q", tc.hint, got, tc.r)
		}
		if got := TSTypeName(tc.hint); got != tc.ts {
			t.Errorf("TSTypeName(%v) = %q, want %q", tc.hint, got, tc.ts)
		}
	}
}
