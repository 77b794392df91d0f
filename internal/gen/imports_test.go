package gen

import (
	"reflect"
	"strings"
	"testing"
)

func TestDetectImports(t *testing.T) {
	cases := []struct {
		name string
		lang Language
		code string
		want []string
	}{
		{
			name: "python_math_and_json",
			lang: Python,
			code: "x = math.sqrt(2)\ny = json.dumps(obj)",
			want: []string{"json", "math"},
		},
		{
			name: "python_none",
			lang: Python,
			code: "def add(a, b):\n    return a + b",
			want: nil,
		},
		{
			name: "go_fmt",
			lang: Go,
			code: `fmt.Println("hi")`,
			want: []string{"fmt"},
		},
		{
			name: "go_multiple",
			lang: Go,
			code: "fmt.Sprintf(\"%v\", math.Abs(x))\nstrings.ToUpper(s)",
			want: []string{"fmt", "math", "strings"},
		},
		{
			name: "rust_hashmap",
			lang: Rust,
			code: "let m = std::collections::HashMap::from([]);",
			want: []string{"std::collections::HashMap"},
		},
		{
			name: "typescript_ambient",
			lang: TypeScript,
			code: "console.log(Math.sqrt(2));",
			want: nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DetectImports(tc.lang, tc.code)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("DetectImports = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDetectImportsDeduplicates(t *testing.T) {
	code := "fmt.Println(1)\nfmt.Println(2)\nfmt.Sprintf(\"x\")"
	got := DetectImports(Go, code)
	if len(got) != 1 || got[0] != "fmt" {
		t.Fatalf("DetectImports = %v", got)
	}
}

func TestPrependImports(t *testing.T) {
	t.Run("python", func(t *testing.T) {
		out := PrependImports(Python, "x = math.pi\n", []string{"math"})
		if !strings.HasPrefix(out, "import math\n\n") {
			t.Fatalf("out = %q", out)
		}
	})
	t.Run("go_single", func(t *testing.T) {
		out := PrependImports(Go, "fmt.Println(1)\n", []string{"fmt"})
		if !strings.HasPrefix(out, "import \"fmt\"\n\n") {
			t.Fatalf("out = %q", out)
		}
	})
	t.Run("go_block", func(t *testing.T) {
		out := PrependImports(Go, "", []string{"fmt", "math"})
		if !strings.Contains(out, "import (\n\t\"fmt\"\n\t\"math\"\n)\n") {
			t.Fatalf("out = %q", out)
		}
	})
	t.Run("rust", func(t *testing.T) {
		out := PrependImports(Rust, "", []string{"std::collections::HashMap"})
		if !strings.HasPrefix(out, "use std::collections::HashMap;\n") {
			t.Fatalf("out = %q", out)
		}
	})
	t.Run("empty_passthrough", func(t *testing.T) {
		if out := PrependImports(Python, "code\n", nil); out != "code\n" {
			t.Fatalf("out = %q", out)
		}
	})
}
