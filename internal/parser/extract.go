// internal/parser/extract.go
package parser

import "bytes"

// MaxValueLen is the longest value Extract returns.
// Longer values are dropped, not truncated.
const MaxValueLen = 126

// Extract returns the value stored under key in buf, or "" when the key is
// absent or its value is empty or longer than MaxValueLen.
//
// The search for `"key":` runs over the whole buffer and is not scoped to
// any object: the first occurrence wins, so keys must be unique within buf.
// Quoted values are returned verbatim up to the next quote (no escapes).
// Bare values end at ',', '}', ' ', '\n' or '\r'.
func Extract(buf []byte, key string) string {
	v, _ := lookup(buf, key)
	return v
}

// lookup is Extract that also reports whether the key pattern was found.
func lookup(buf []byte, key string) (string, bool) {
	if key == "" {
		return "", false
	}
	buf = text(buf)
	if len(buf) == 0 {
		return "", false
	}

	pattern := make([]byte, 0, len(key)+3)
	pattern = append(pattern, '"')
	pattern = append(pattern, key...)
	pattern = append(pattern, '"', ':')

	at := bytes.Index(buf, pattern)
	if at < 0 {
		return "", false
	}

	p := at + len(pattern)

	// spaces only; tabs are part of the value
	for p < len(buf) && buf[p] == ' ' {
		p++
	}

	var v []byte
	if p < len(buf) && buf[p] == '"' {
		p++
		end := bytes.IndexByte(buf[p:], '"')
		if end < 0 {
			return "", true
		}
		v = buf[p : p+end]
	} else {
		end := p
		for end < len(buf) && !isValueDelim(buf[end]) {
			end++
		}
		v = buf[p:end]
	}

	if len(v) == 0 || len(v) > MaxValueLen {
		return "", true
	}
	return string(v), true
}

func isValueDelim(c byte) bool {
	switch c {
	case ',', '}', ' ', '\n', '\r':
		return true
	}
	return false
}

// text cuts buf at the first NUL, so fixed-size receive buffers can be
// passed without trimming.
func text(buf []byte) []byte {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return buf[:i]
	}
	return buf
}
