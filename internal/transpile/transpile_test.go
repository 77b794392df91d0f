package transpile

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const addSource = "function add(a, b) { return a + b; }"

func TestTranspileAllTargets(t *testing.T) {
	for _, target := range Targets() {
		t.Run(string(target), func(t *testing.T) {
			result := Transpile(addSource, target)
			require.True(t, result.Success, "error: %s", result.Error)
			assert.NotEmpty(t, result.Code)
			assert.NotNil(t, result.AST)
			assert.Empty(t, result.Error)
		})
	}
}

func TestTranspileOutputShapes(t *testing.T) {
	cases := []struct {
		target Language
		want   string
	}{
		{target: Python, want: "def add(a, b):"},
		{target: TypeScript, want: "function add(a: any, b: any): any {"},
		{target: Go, want: "func add(a interface{}, b interface{}) interface{} {"},
		{target: Rust, want: "fn add(a: i64, b: i64) -> i64 {"},
	}
	for _, tc := range cases {
		t.Run(string(tc.target), func(t *testing.T) {
			result := Transpile(addSource, tc.target)
			require.True(t, result.Success)
			assert.Contains(t, result.Code, tc.want)
		})
	}
}

func TestTranspileParseFailure(t *testing.T) {
	result := Transpile("function f() { let = ; }", Python)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	assert.Nil(t, result.AST)
	assert.Empty(t, result.Code)
}

func TestTranspileUnsupportedTarget(t *testing.T) {
	result := Transpile(addSource, Language("cobol"))
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "Unsupported")
	// the tree survives an unsupported target so callers can retry
	assert.NotNil(t, result.AST)
}

func TestTranspileDetectsImports(t *testing.T) {
	result := Transpile("function show(x) { console.log(x); }", Go)
	require.True(t, result.Success)
	assert.Contains(t, result.Imports, "fmt")
	assert.True(t, strings.HasPrefix(result.Code, `import "fmt"`), "code = %q", result.Code)
}

func TestTranspileWarningsAreNotErrors(t *testing.T) {
	result := Transpile("let m = a > b ? a : b;", Go)
	require.True(t, result.Success)
	assert.NotEmpty(t, result.Warnings)
	assert.Empty(t, result.Error)
}

func TestTranspileDeterministic(t *testing.T) {
	source := `
function fizzBuzz(n) {
	for (let i = 1; i <= n; i++) {
		if (i % 15 === 0) { console.log("FizzBuzz"); }
		else if (i % 3 === 0) { console.log("Fizz"); }
		else { console.log(i); }
	}
}`
	for _, target := range Targets() {
		first := Transpile(source, target)
		for i := 0; i < 3; i++ {
			again := Transpile(source, target)
			assert.Equal(t, first.Code, again.Code, "target %s run %d", target, i)
			assert.Equal(t, first.Imports, again.Imports)
		}
	}
}

func TestAll(t *testing.T) {
	results := All(context.Background(), addSource)
	require.Len(t, results, len(Targets()))
	for _, target := range Targets() {
		result, ok := results[target]
		require.True(t, ok, "missing target %s", target)
		assert.True(t, result.Success, "target %s: %s", target, result.Error)
		assert.Equal(t, Transpile(addSource, target).Code, result.Code)
	}
}

func TestAllFailuresAreIndependent(t *testing.T) {
	// a source the parser rejects fails every target the same way, with no
	// partial map
	results := All(context.Background(), "@decorated function f() {}")
	require.Len(t, results, len(Targets()))
	for target, result := range results {
		assert.False(t, result.Success, "target %s", target)
		assert.NotEmpty(t, result.Error)
	}
}
