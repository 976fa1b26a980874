package codec

import (
	"encoding/binary"
	"io"
	"math"
)

// StreamWriter is a wireBackend adapter over any io.Writer, for encoding
// directly to a socket, file, or other unbounded sink without staging the
// full message in memory first.
type StreamWriter struct {
	w     io.Writer
	count int64
	buf   [8]byte
}

// NewStreamWriter returns a Writer backed by a StreamWriter over w.
func NewStreamWriter(w io.Writer) *Writer[*StreamWriter] {
	return newWriter[*StreamWriter](&StreamWriter{w: w})
}

// Count reports the total number of bytes written through this backend.
func (w *StreamWriter) Count() int64 { return w.count }

func (w *StreamWriter) write(p []byte) error {
	n, err := w.w.Write(p)
	w.count += int64(n)
	if err != nil {
		return &ioError{err: err}
	}
	if n != len(p) {
		return &ioError{err: io.ErrShortWrite}
	}
	return nil
}

func (w *StreamWriter) pbWriteU8(v uint8) error {
	w.buf[0] = v
	return w.write(w.buf[:1])
}

func (w *StreamWriter) pbWriteU32(v uint32) error {
	binary.LittleEndian.PutUint32(w.buf[:4], v)
	return w.write(w.buf[:4])
}

func (w *StreamWriter) pbWriteI32(v int32) error {
	return w.pbWriteU32(uint32(v))
}

func (w *StreamWriter) pbWriteF32(v float32) error {
	return w.pbWriteU32(math.Float32bits(v))
}

func (w *StreamWriter) pbWriteU64(v uint64) error {
	binary.LittleEndian.PutUint64(w.buf[:8], v)
	return w.write(w.buf[:8])
}

func (w *StreamWriter) pbWriteI64(v int64) error {
	return w.pbWriteU64(uint64(v))
}

func (w *StreamWriter) pbWriteF64(v float64) error {
	return w.pbWriteU64(math.Float64bits(v))
}

func (w *StreamWriter) pbWriteAll(buf []byte) error {
	return w.write(buf)
}
