// internal/parser/errors.go
package parser

// Error is a structural decode failure.
// Code is a stable numeric identifier written into the device status block.
type Error struct {
	code uint16
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Code returns the numeric error code.
func (e *Error) Code() uint16 { return e.code }

// Structural failures. Field-level absence is never an error.
var (
	ErrNoPayload       = &Error{code: 10, msg: "no payload"}
	ErrSectionNotFound = &Error{code: 11, msg: "section not found"}
	ErrUnterminated    = &Error{code: 12, msg: "section object not terminated"}
	ErrSectionTooLarge = &Error{code: 13, msg: "section object exceeds scratch capacity"}
	ErrNestedObject    = &Error{code: 14, msg: "nested object inside section"}
)
