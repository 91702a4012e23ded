package generator

import (
	"errors"
	"fmt"
)

// ErrIO marks a filesystem failure during generation. Any such failure
// aborts the run.
var ErrIO = errors.New("filesystem error")

// ErrDecode is returned when the source image cannot be decoded.
var ErrDecode = errors.New("cannot decode source image")

// AssetError names the asset whose generation failed.
type AssetError struct {
	Filename string
	Err      error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("%s: %v", e.Filename, e.Err)
}

// Unwrap exposes both ErrIO and the underlying cause to errors.Is/As.
func (e *AssetError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}
