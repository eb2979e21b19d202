package audio

import "fmt"

// DecodeError reports a source that could not be parsed or transcoded.
type DecodeError struct {
	Path string
	Op   string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("audio %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decodeErr(op, path string, err error) error {
	return &DecodeError{Path: path, Op: op, Err: err}
}
