// Package jsonx extracts structured data from model output that wraps a
// JSON object in prose or markdown fences.
package jsonx

import "encoding/json"

// ExtractObject finds the first balanced {...} block in s and unmarshals
// it into a map. It returns ok=false when no balanced object is present
// or the block is not valid JSON. Parse failure is an expected branch
// for model output, not an error.
func ExtractObject(s string) (map[string]any, bool) {
	raw, ok := firstObjectBlock(s)
	if !ok {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, false
	}
	return obj, true
}

func firstObjectBlock(s string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
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
			if start >= 0 {
				inString = true
			}
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
