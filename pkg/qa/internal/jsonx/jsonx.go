// Package jsonx extracts JSON objects from chat-model output, which often
// arrives wrapped in code fences or prose.
package jsonx

import "strings"

// ExtractObject returns the first balanced {...} object in s, or s unchanged
// when none is found. Braces inside JSON strings are honored.
func ExtractObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return s
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return s[start:]
}
