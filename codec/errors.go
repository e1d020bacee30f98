package codec

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for registry operations.
// Use errors.Is() to check for these errors as they may be wrapped.
var (
	// ErrUnknownCodec is returned when no codec is registered under a name.
	ErrUnknownCodec = errors.New("codec: unknown codec")

	// ErrDuplicateCodec is returned when a name is already registered.
	ErrDuplicateCodec = errors.New("codec: duplicate codec")

	// ErrInvalidCodec is returned when a registration has an empty name or a nil function.
	ErrInvalidCodec = errors.New("codec: invalid codec")

	// ErrUnknownCharset is returned by built-in codecs for an unsupported charset.
	ErrUnknownCharset = errors.New("codec: unknown charset")
)

// UnknownCodecError provides details about a missing codec.
type UnknownCodecError struct {
	Name      string
	Available []string
}

func (e *UnknownCodecError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("codec: unknown codec %q", e.Name)
	}
	return fmt.Sprintf("codec: unknown codec %q (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

func (e *UnknownCodecError) Unwrap() error {
	return ErrUnknownCodec
}

// IsUnknownCodec checks if an error indicates a missing codec.
func IsUnknownCodec(err error) bool {
	return errors.Is(err, ErrUnknownCodec)
}

// DuplicateCodecError provides details about a rejected registration.
type DuplicateCodecError struct {
	Name string
}

func (e *DuplicateCodecError) Error() string {
	return fmt.Sprintf("codec: codec %q already registered", e.Name)
}

func (e *DuplicateCodecError) Unwrap() error {
	return ErrDuplicateCodec
}

// IsDuplicateCodec checks if an error indicates a duplicate registration.
func IsDuplicateCodec(err error) bool {
	return errors.Is(err, ErrDuplicateCodec)
}

// CharsetError reports a charset that could not be resolved or applied.
type CharsetError struct {
	Charset string
	Err     error // underlying transform error, nil if the name is unknown
}

func (e *CharsetError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("codec: charset %q: %v", e.Charset, e.Err)
	}
	return fmt.Sprintf("codec: unknown charset %q", e.Charset)
}

func (e *CharsetError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnknownCharset
}
