package gen

import "strings"

// ToSnakeCase converts camelCase or PascalCase to snake_case. The conversion
// is idempotent: a name already in snake_case comes back unchanged.
func ToSnakeCase(name string) string {
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if ch >= 'A' && ch <= 'Z' {
			if i > 0 && name[i-1] != '_' {
				b.WriteByte('_')
			}
			b.WriteByte(ch - 'A' + 'a')
			continue
		}
		b.WriteByte(ch)
	}
	return b.String()
}

// ToPascalCase converts snake_case or camelCase to PascalCase.
func ToPascalCase(name string) string {
	var b strings.Builder
	upperNext := true
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if ch == '_' {
			upperNext = true
			continue
		}
		if upperNext && ch >= 'a' && ch <= 'z' {
			b.WriteByte(ch - 'a' + 'A')
		} else {
			b.WriteByte(ch)
		}
		upperNext = false
	}
	return b.String()
}

// Capitalize upper-cases the first character only, preserving the rest.
func Capitalize(name string) string {
	if name == "" {
		return name
	}
	if name[0] >= 'a' && name[0] <= 'z' {
		return string(name[0]-'a'+'A') + name[1:]
	}
	return name
}
