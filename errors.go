package tamp

import "fmt"

// StreamError wraps a fatal Status encountered while servicing an
// io.Reader/io.Writer during CompressStream/DecompressStream, along with
// the underlying I/O error when the fault originated there (StatusReadError
// or StatusWriteError) rather than in the codec itself.
type StreamError struct {
	Status Status
	Err    error
}

func (e *StreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tamp: %s: %v", e.Status.String(), e.Err)
	}
	return e.Status.Error()
}

func (e *StreamError) Unwrap() error {
	return e.Err
}
