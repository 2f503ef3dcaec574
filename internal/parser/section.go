// internal/parser/section.go
package parser

import "bytes"

// MaxSectionLen is the largest section object, braces included, that fits
// the decoder scratch buffer.
const MaxSectionLen = 511

// maxSectionDepth is the deepest brace level a section may reach.
// Sections are flat: the section's own braces are the only level.
const maxSectionDepth = 1

// isolate finds `"name":` in payload and returns the brace-delimited object
// that follows it, braces included. The result aliases payload.
//
// Braces inside quoted strings are plain content. A nested object is
// rejected with ErrNestedObject: field lookup is not scope-aware, so its keys
// could shadow the section's own.
func isolate(payload []byte, name string) ([]byte, error) {
	payload = text(payload)
	if len(payload) == 0 {
		return nil, ErrNoPayload
	}

	pattern := make([]byte, 0, len(name)+3)
	pattern = append(pattern, '"')
	pattern = append(pattern, name...)
	pattern = append(pattern, '"', ':')

	at := bytes.Index(payload, pattern)
	if at < 0 {
		return nil, ErrSectionNotFound
	}

	rest := payload[at+len(pattern):]
	open := bytes.IndexByte(rest, '{')
	if open < 0 {
		return nil, ErrUnterminated
	}
	obj := rest[open:]

	depth := 0
	inString := false
	for i := 0; i < len(obj); i++ {
		c := obj[i]
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case '{':
			depth++
			if depth > maxSectionDepth {
				return nil, ErrNestedObject
			}
		case '}':
			depth--
			if depth == 0 {
				return obj[:i+1], nil
			}
		}
	}

	return nil, ErrUnterminated
}
