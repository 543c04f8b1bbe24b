package elfheader

import (
	"errors"
	"fmt"
)

var (
	// ErrNotELF is returned when the buffer does not start with the ELF magic
	ErrNotELF = errors.New("not an ELF file")

	// ErrTruncated is returned when the buffer is too short for the requested fields
	ErrTruncated = errors.New("truncated input")

	// ErrIndeterminateLayout is returned when the class or data byte does not select a word width and byte order
	ErrIndeterminateLayout = errors.New("indeterminate header layout")
)

// DecodeError describes why a part of the header could not be decoded
type DecodeError struct {
	Field string // part of the header being decoded
	Err   error  // one of the package sentinels

	// Set for ErrTruncated
	Need int
	Have int

	// Set for ErrIndeterminateLayout
	Class Class
	Data  Data

	// Set for ErrNotELF
	Magic [4]byte
}

func (e *DecodeError) Error() string {
	switch e.Err {
	case ErrTruncated:
		return fmt.Sprintf("%s: %v: need %d bytes, have %d", e.Field, e.Err, e.Need, e.Have)
	case ErrIndeterminateLayout:
		return fmt.Sprintf("%s: %v: class %s, data %s", e.Field, e.Err, e.Class, e.Data)
	case ErrNotELF:
		return fmt.Sprintf("%s: %v: bad magic % x", e.Field, e.Err, e.Magic[:])
	default:
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func truncated(field string, need, have int) error {
	return &DecodeError{Field: field, Err: ErrTruncated, Need: need, Have: have}
}
