package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFileNotFound      = errors.New("file not found")
	ErrFileUnreadable    = errors.New("could not read file as tabular data")
	ErrInvalidFileFormat = errors.New("invalid file format")
)

// MissingColumnsError reports which of the required attendance columns
// could not be resolved from the upload's headers.
type MissingColumnsError struct {
	Fields []string
}

func (e MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Fields, ", "))
}

func NewMissingColumnsError(fields ...string) error {
	return MissingColumnsError{Fields: fields}
}

func IsMissingColumns(err error) bool {
	var mce MissingColumnsError
	return errors.As(err, &mce)
}
