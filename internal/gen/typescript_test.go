package gen

import (
	"strings"
	"testing"
)

func TestTypeScriptAnnotatesParams(t *testing.T) {
	code, _ := emit(t, "function greet(name, count, isLoud) { return name; }", TypeScript)
	for _, want := range []string{"name: string", "count: number", "isLoud: boolean"} {
		if !strings.Contains(code, want) {
			t.Errorf("code %q missing %q", code, want)
		}
	}
}

func TestTypeScriptReturnType(t *testing.T) {
	code, _ := emit(t, "function one() { return 1; }", TypeScript)
	if !strings.Contains(code, "function one(): number {") {
		t.Fatalf("code = %q", code)
	}
}

func TestTypeScriptAsyncReturnsPromise(t *testing.T) {
	code, _ := emit(t, `async function fetchName() { return "x"; }`, TypeScript)
	if !strings.Contains(code, "async function fetchName(): Promise<string> {") {
		t.Fatalf("code = %q", code)
	}
}

func TestTypeScriptPreservesIdentifiers(t *testing.T) {
	// no casing rewrite on the pass-through target
	code, _ := emit(t, "function quickSort(arr) { return arr; }", TypeScript)
	if !strings.Contains(code, "function quickSort(") {
		t.Fatalf("code = %q", code)
	}
	if strings.Contains(code, "quick_sort") {
		t.Fatalf("name was snake_cased: %q", code)
	}
}

func TestTypeScriptCatchUnknown(t *testing.T) {
	code, _ := emit(t, "try { risky(); } catch (err) { log(err); }", TypeScript)
	if !strings.Contains(code, "catch (err: unknown) {") {
		t.Fatalf("code = %q", code)
	}
}

func TestTypeScriptKeepsOperators(t *testing.T) {
	code, _ := emit(t, "let same = a === b && c !== d;", TypeScript)
	if !strings.Contains(code, "a === b && c !== d") {
		t.Fatalf("code = %q", code)
	}
}

func TestTypeScriptSemicolons(t *testing.T) {
	code, _ := emit(t, "let x = 1", TypeScript)
	if !strings.Contains(code, "let x = 1;") {
		t.Fatalf("code = %q", code)
	}
}

func TestTypeScriptTemplatePassThrough(t *testing.T) {
	code, _ := emit(t, "let msg = `hi ${name}`;", TypeScript)
	if !strings.Contains(code, "`hi ${name}`") {
		t.Fatalf("code = %q", code)
	}
}

func TestTypeScriptDefaultParam(t *testing.T) {
	code, _ := emit(t, `function greet(name = "world") { return name; }`, TypeScript)
	if !strings.Contains(code, `name: string = "world"`) {
		t.Fatalf("code = %q", code)
	}
}

func TestTypeScriptClassPassThrough(t *testing.T) {
	code, _ := emit(t, `
class Counter {
	constructor(count) { this.count = count; }
	increment() { this.count++; }
}`, TypeScript)
	for _, want := range []string{
		"class Counter {",
		"constructor(count: number) {",
		"this.count = count;",
		"this.count++;",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("code %q missing %q", code, want)
		}
	}
}
