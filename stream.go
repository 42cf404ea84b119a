package tamp

import (
	"bufio"
	"io"
	"log/slog"
)

// defaultStreamBufferSize is the work-buffer size CompressStream and
// DecompressStream allocate when WithBufferSize isn't supplied. It has no
// bearing on the codec's own window/ring sizes, only on how much of an
// io.Reader/io.Writer is touched per iteration.
const defaultStreamBufferSize = 4096

type streamOptions struct {
	bufferSize int
	logger     *slog.Logger
	progress   func(written, read int)
}

// StreamOption configures CompressStream/DecompressStream.
type StreamOption func(*streamOptions)

// WithBufferSize overrides the work-buffer size used to shuttle bytes
// between the codec and the underlying io.Reader/io.Writer.
func WithBufferSize(n int) StreamOption {
	return func(o *streamOptions) { o.bufferSize = n }
}

// WithLogger directs the stream's diagnostic logging to l instead of
// slog.Default().
func WithLogger(l *slog.Logger) StreamOption {
	return func(o *streamOptions) { o.logger = l }
}

// WithProgress registers a callback invoked after each chunk is read and
// written, reporting cumulative totals.
func WithProgress(fn func(written, read int)) StreamOption {
	return func(o *streamOptions) { o.progress = fn }
}

func newStreamOptions(opts []StreamOption) streamOptions {
	o := streamOptions{bufferSize: defaultStreamBufferSize, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.bufferSize <= 0 {
		o.bufferSize = defaultStreamBufferSize
	}
	return o
}

// CompressStream reads all of src, compresses it, and writes the result
// to dst. If conf is nil, DefaultConf is used. Errors from dst/src are
// wrapped in a *StreamError distinguishing read faults from write faults
// from codec faults (e.g. a literal byte too wide for conf.LiteralBits).
func CompressStream(dst io.Writer, src io.Reader, conf *Conf, opts ...StreamOption) error {
	o := newStreamOptions(opts)

	cf := DefaultConf()
	if conf != nil {
		cf = *conf
	}
	window := make([]byte, 1<<cf.WindowBits)
	c, st := NewCompressor(&cf, window)
	if st.IsError() {
		return &StreamError{Status: st}
	}

	in := make([]byte, o.bufferSize)
	out := make([]byte, o.bufferSize)
	var totalRead, totalWritten int

	flushOut := func(n int) error {
		if n == 0 {
			return nil
		}
		if _, werr := dst.Write(out[:n]); werr != nil {
			return &StreamError{Status: StatusWriteError, Err: werr}
		}
		totalWritten += n
		return nil
	}

	for {
		n, rerr := src.Read(in)
		if n > 0 {
			data := in[:n]
			for len(data) > 0 {
				written, consumed, cst := c.Compress(out, data)
				data = data[consumed:]
				if err := flushOut(written); err != nil {
					return err
				}
				switch cst {
				case StatusOK:
				case StatusOutputFull:
				default:
					return &StreamError{Status: cst}
				}
			}
			totalRead += n
			if o.progress != nil {
				o.progress(totalWritten, totalRead)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return &StreamError{Status: StatusReadError, Err: rerr}
		}
	}

	for {
		written, fst := c.Flush(out, false)
		if err := flushOut(written); err != nil {
			return err
		}
		if fst == StatusOutputFull {
			continue
		}
		if fst.IsError() {
			return &StreamError{Status: fst}
		}
		break
	}

	o.logger.Debug("tamp: compress stream finished", "bytes_in", totalRead, "bytes_out", totalWritten)
	return nil
}

// DecompressStream reads a tamp stream (header included) from src and
// writes the decompressed bytes to dst. The window buffer is sized from
// the stream's own header, so no Conf is accepted here.
func DecompressStream(dst io.Writer, src io.Reader, opts ...StreamOption) error {
	o := newStreamOptions(opts)
	br := bufio.NewReader(src)

	headerByte, err := br.ReadByte()
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return &StreamError{Status: StatusReadError, Err: err}
	}
	cf, _, st := ReadHeader([]byte{headerByte})
	if st.IsError() {
		return &StreamError{Status: st}
	}

	window := make([]byte, 1<<cf.WindowBits)
	d, st := NewDecompressor(&cf, window)
	if st.IsError() {
		return &StreamError{Status: st}
	}

	in := make([]byte, o.bufferSize)
	out := make([]byte, o.bufferSize)
	var totalRead, totalWritten int
	totalRead++ // the header byte already consumed above

	for {
		n, rerr := br.Read(in)
		if n > 0 {
			data := in[:n]
			for len(data) > 0 {
				written, consumed, dstat := d.Decompress(out, data)
				data = data[consumed:]
				if written > 0 {
					if _, werr := dst.Write(out[:written]); werr != nil {
						return &StreamError{Status: StatusWriteError, Err: werr}
					}
					totalWritten += written
				}
				switch dstat {
				case StatusInputExhausted:
					data = nil
				case StatusOutputFull:
				default:
					return &StreamError{Status: dstat}
				}
			}
			totalRead += n
			if o.progress != nil {
				o.progress(totalWritten, totalRead)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return &StreamError{Status: StatusReadError, Err: rerr}
		}
	}

	// Drain tokens still held in the bit buffer or a partially emitted match.
	for {
		written, _, dstat := d.Decompress(out, nil)
		if written > 0 {
			if _, werr := dst.Write(out[:written]); werr != nil {
				return &StreamError{Status: StatusWriteError, Err: werr}
			}
			totalWritten += written
		}
		if dstat == StatusInputExhausted {
			break
		}
		if dstat != StatusOutputFull {
			return &StreamError{Status: dstat}
		}
	}

	o.logger.Debug("tamp: decompress stream finished", "bytes_in", totalRead, "bytes_out", totalWritten)
	return nil
}
