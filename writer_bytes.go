package codec

import (
	"encoding/binary"
	"math"
)

// BytesWriter is a bounded wireBackend that writes into a pre-allocated,
// non-growing byte slice. Unlike an io.Writer, it never partially writes:
// any operation that would overrun the slice fails as a whole with
// ErrUnexpectedEOF, leaving the slice's written prefix exactly as it was
// before the call.
type BytesWriter struct {
	buf []byte
	pos int
}

// NewBytesWriter returns a Writer backed by a BytesWriter over buf. buf
// must be large enough to hold the full encoding; callers typically size
// it with a prior call to the message's Size method.
func NewBytesWriter(buf []byte) *Writer[*BytesWriter] {
	return newWriter[*BytesWriter](&BytesWriter{buf: buf})
}

// Len reports the number of bytes written so far.
func (w *BytesWriter) Len() int { return w.pos }

// Bytes returns the written prefix of the destination slice.
func (w *BytesWriter) Bytes() []byte { return w.buf[:w.pos] }

// Reset rewinds the writer to the beginning of its destination slice so it
// can be reused for another encode.
func (w *BytesWriter) Reset() { w.pos = 0 }

func (w *BytesWriter) reserve(n int) error {
	if len(w.buf)-w.pos < n {
		return ErrUnexpectedEOF
	}
	return nil
}

func (w *BytesWriter) pbWriteU8(v uint8) error {
	if err := w.reserve(1); err != nil {
		return err
	}
	w.buf[w.pos] = v
	w.pos++
	return nil
}

func (w *BytesWriter) pbWriteU32(v uint32) error {
	if err := w.reserve(4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(w.buf[w.pos:], v)
	w.pos += 4
	return nil
}

func (w *BytesWriter) pbWriteI32(v int32) error {
	return w.pbWriteU32(uint32(v))
}

func (w *BytesWriter) pbWriteF32(v float32) error {
	return w.pbWriteU32(math.Float32bits(v))
}

func (w *BytesWriter) pbWriteU64(v uint64) error {
	if err := w.reserve(8); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(w.buf[w.pos:], v)
	w.pos += 8
	return nil
}

func (w *BytesWriter) pbWriteI64(v int64) error {
	return w.pbWriteU64(uint64(v))
}

func (w *BytesWriter) pbWriteF64(v float64) error {
	return w.pbWriteU64(math.Float64bits(v))
}

func (w *BytesWriter) pbWriteAll(buf []byte) error {
	if err := w.reserve(len(buf)); err != nil {
		return err
	}
	copy(w.buf[w.pos:], buf)
	w.pos += len(buf)
	return nil
}
