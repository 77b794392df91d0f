package gen

import (
	"fmt"
	"sort"
	"strings"
)

// Import detection runs over the generated text, not the tree, because idioms
// the emitters themselves introduce (a Sprintf lowering, a math helper) can
// need imports the source never mentioned. Detection is per-target substring
// matching against known standard-library call prefixes.

type importRule struct {
	pattern string // substring that signals the dependency
	imp     string // import path or use-declaration it requires
}

var pythonImportRules = []importRule{
	{"math.", "math"},
	{"json.", "json"},
	{"random.", "random"},
	{"re.", "re"},
	{"time.", "time"},
	{"sys.", "sys"},
}

var goImportRules = []importRule{
	{"fmt.", "fmt"},
	{"math.", "math"},
	{"strings.", "strings"},
	{"strconv.", "strconv"},
	{"errors.", "errors"},
	{"sort.", "sort"},
}

var rustImportRules = []importRule{
	{"HashMap", "std::collections::HashMap"},
	{"HashSet", "std::collections::HashSet"},
}

// DetectImports scans generated code and returns the standard-library imports
// it needs, sorted. TypeScript needs none: its runtime globals are ambient.
func DetectImports(lang Language, code string) []string {
	var rules []importRule
	switch lang {
	case Python:
		rules = pythonImportRules
	case Go:
		rules = goImportRules
	case Rust:
		rules = rustImportRules
	default:
		return nil
	}

	seen := map[string]bool{}
	var imports []string
	for _, rule := range rules {
		if strings.Contains(code, rule.pattern) && !seen[rule.imp] {
			seen[rule.imp] = true
			imports = append(imports, rule.imp)
		}
	}
	sort.Strings(imports)
	return imports
}

// PrependImports renders the import block for lang ahead of code. Code with
// no detected imports passes through unchanged.
func PrependImports(lang Language, code string, imports []string) string {
	if len(imports) == 0 {
		return code
	}
	var b strings.Builder
	switch lang {
	case Python:
		for _, imp := range imports {
			fmt.Fprintf(&b, "import %s\n", imp)
		}
		b.WriteString("\n")
	case Go:
		if len(imports) == 1 {
			fmt.Fprintf(&b, "import %q\n\n", imports[0])
		} else {
			b.WriteString("import (\n")
			for _, imp := range imports {
				fmt.Fprintf(&b, "\t%q\n", imp)
			}
			b.WriteString(")\n\n")
		}
	case Rust:
		// fully-qualified paths are emitted inline, so the use lines are a
		// readability convenience
		for _, imp := range imports {
			fmt.Fprintf(&b, "use %s;\n", imp)
		}
		b.WriteString("\n")
	default:
		return code
	}
	b.WriteString(code)
	return b.String()
}
