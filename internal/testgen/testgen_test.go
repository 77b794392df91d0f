package testgen

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractTestCallsConditionalThrow(t *testing.T) {
	descriptors := ExtractTestCalls(`if (add(2, 3) !== 5) { throw new Error("fail"); }`)
	want := []CallDescriptor{{Func: "add", Args: "2, 3", Expected: "5", Op: "!="}}
	if diff := cmp.Diff(want, descriptors); diff != "" {
		t.Fatalf("descriptors mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractTestCallsBareComparison(t *testing.T) {
	// the bare shape asserts the comparison, so the failure op is its negation
	descriptors := ExtractTestCalls("add(2, 3) === 5;")
	want := []CallDescriptor{{Func: "add", Args: "2, 3", Expected: "5", Op: "!="}}
	if diff := cmp.Diff(want, descriptors); diff != "" {
		t.Fatalf("descriptors mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractTestCallsOperatorNegation(t *testing.T) {
	cases := []struct {
		source string
		wantOp string
	}{
		{source: "f(1) === 2;", wantOp: "!="},
		{source: "f(1) !== 2;", wantOp: "=="},
		{source: "f(1) < 2;", wantOp: ">="},
		{source: "f(1) >= 2;", wantOp: "<"},
		{source: "if (f(1) > 2) { throw new Error(\"fail\"); }", wantOp: ">"},
		{source: "if (f(1) === 2) { throw new Error(\"fail\"); }", wantOp: "=="},
	}
	for _, tc := range cases {
		t.Run(tc.source, func(t *testing.T) {
			descriptors := ExtractTestCalls(tc.source)
			if len(descriptors) != 1 {
				t.Fatalf("descriptors = %#v", descriptors)
			}
			if descriptors[0].Op != tc.wantOp {
				t.Fatalf("Op = %q, want %q", descriptors[0].Op, tc.wantOp)
			}
		})
	}
}

func TestExtractTestCallsMultiple(t *testing.T) {
	source := `
if (add(2, 3) !== 5) { throw new Error("fail"); }
if (add(0, 0) !== 0) { throw new Error("fail"); }
add(1, 1) === 2;
`
	descriptors := ExtractTestCalls(source)
	if len(descriptors) != 3 {
		t.Fatalf("got %d descriptors: %#v", len(descriptors), descriptors)
	}
}

func TestExtractTestCallsStringArgs(t *testing.T) {
	descriptors := ExtractTestCalls(`if (greet("bob") !== "hi bob") { throw new Error("fail"); }`)
	if len(descriptors) != 1 {
		t.Fatalf("descriptors = %#v", descriptors)
	}
	if descriptors[0].Args != `"bob"` || descriptors[0].Expected != `"hi bob"` {
		t.Fatalf("descriptor = %#v", descriptors[0])
	}
}

func TestExtractTestCallsIgnoresOtherStatements(t *testing.T) {
	source := `
let setup = 1;
console.log(setup);
if (f(1) !== 2) { throw new Error("fail"); }
`
	descriptors := ExtractTestCalls(source)
	if len(descriptors) != 1 || descriptors[0].Func != "f" {
		t.Fatalf("descriptors = %#v", descriptors)
	}
}

func TestExtractTestCallsUnparseable(t *testing.T) {
	if descriptors := ExtractTestCalls("@@@ not code"); descriptors != nil {
		t.Fatalf("descriptors = %#v, want nil", descriptors)
	}
}

func TestGenerateGoTest(t *testing.T) {
	test, ok := GenerateGoTest("func add(a int, b int) int { return a + b }",
		`if (add(2, 3) !== 5) { throw new Error("fail"); }`, "add")
	if !ok {
		t.Fatal("ok = false")
	}
	for _, want := range []string{
		"package main",
		`import "testing"`,
		"func TestAdd0(t *testing.T) {",
		"got := add(2, 3)",
		"if got != 5 {",
		"t.Errorf(",
	} {
		if !strings.Contains(test, want) {
			t.Errorf("test %q missing %q", test, want)
		}
	}
}

func TestGenerateGoTestSmokeFallback(t *testing.T) {
	// parseable test source with no recognizable assertions still yields a test
	test, ok := GenerateGoTest("func quickSort() {}", "let data = [3, 1, 2];", "quickSort")
	if !ok {
		t.Fatal("ok = false")
	}
	if !strings.Contains(test, "func TestQuickSortCompiles(t *testing.T) {") {
		t.Fatalf("test = %q", test)
	}
}

func TestGenerateGoTestNeverNilWithInputs(t *testing.T) {
	for _, testSource := range []string{"garbage @@", "x === 1;", "if (f(2) !== 3) { throw new Error(\"no\"); }"} {
		test, ok := GenerateGoTest("code", testSource, "f")
		if !ok || test == "" {
			t.Fatalf("testSource %q: ok=%v test=%q", testSource, ok, test)
		}
	}
}

func TestGenerateGoTestEmptyInputs(t *testing.T) {
	if _, ok := GenerateGoTest("code", "", "f"); ok {
		t.Fatal("empty test source should not generate")
	}
	if _, ok := GenerateGoTest("code", "f(1) === 2;", ""); ok {
		t.Fatal("empty function name should not generate")
	}
}

func TestGenerateRustTest(t *testing.T) {
	test, ok := GenerateRustTest("fn add(a: i64, b: i64) -> i64 { a + b }",
		`if (add(2, 3) !== 5) { throw new Error("fail"); }`, "add")
	if !ok {
		t.Fatal("ok = false")
	}
	for _, want := range []string{
		"#[cfg(test)]",
		"mod tests {",
		"use super::*;",
		"#[test]",
		"fn test_add_0() {",
		"assert_eq!(add(2, 3), 5);",
	} {
		if !strings.Contains(test, want) {
			t.Errorf("test %q missing %q", test, want)
		}
	}
}

func TestGenerateRustTestSnakeCasesFunc(t *testing.T) {
	test, ok := GenerateRustTest("", `if (quickSort(1) !== 1) { throw new Error("fail"); }`, "quickSort")
	if !ok {
		t.Fatal("ok = false")
	}
	if !strings.Contains(test, "fn test_quick_sort_0() {") {
		t.Fatalf("test = %q", test)
	}
	if !strings.Contains(test, "assert_eq!(quick_sort(1), 1);") {
		t.Fatalf("test = %q", test)
	}
}

func TestGenerateRustTestSmokeFallback(t *testing.T) {
	test, ok := GenerateRustTest("fn f() {}", "let setup = 1;", "doWork")
	if !ok {
		t.Fatal("ok = false")
	}
	if !strings.Contains(test, "fn test_do_work_compiles() {") {
		t.Fatalf("test = %q", test)
	}
}
