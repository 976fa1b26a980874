package codec

import (
	"encoding/binary"
	"math"
)

// Fixed32Value is the set of Go types that share protobuf's 4-byte fixed
// wire representation: fixed32 (uint32), sfixed32 (int32), and float.
type Fixed32Value interface {
	uint32 | int32 | float32
}

// Fixed64Value is the set of Go types that share protobuf's 8-byte fixed
// wire representation: fixed64 (uint64), sfixed64 (int64), and double.
type Fixed64Value interface {
	uint64 | int64 | float64
}

func decodeFixed32Value[T Fixed32Value](b []byte) T {
	bits := binary.LittleEndian.Uint32(b)
	var zero T
	switch any(zero).(type) {
	case float32:
		return any(math.Float32frombits(bits)).(T)
	case int32:
		return any(int32(bits)).(T)
	default:
		return any(bits).(T)
	}
}

func encodeFixed32Value[T Fixed32Value](v T) uint32 {
	switch x := any(v).(type) {
	case float32:
		return math.Float32bits(x)
	case int32:
		return uint32(x)
	default:
		return any(v).(uint32)
	}
}

func decodeFixed64Value[T Fixed64Value](b []byte) T {
	bits := binary.LittleEndian.Uint64(b)
	var zero T
	switch any(zero).(type) {
	case float64:
		return any(math.Float64frombits(bits)).(T)
	case int64:
		return any(int64(bits)).(T)
	default:
		return any(bits).(T)
	}
}

func encodeFixed64Value[T Fixed64Value](v T) uint64 {
	switch x := any(v).(type) {
	case float64:
		return math.Float64bits(x)
	case int64:
		return uint64(x)
	default:
		return any(v).(uint64)
	}
}

// PackedFixedIter iterates the elements of a packed repeated fixed-width
// field without decoding them all up front: ReadPackedFixed32/64 hand back
// an iterator over the field's borrowed byte range, so a caller that only
// needs the first few elements never pays to decode the rest.
type PackedFixedIter[T any] struct {
	buf     []byte
	elemLen int
	decode  func([]byte) T
}

// Next returns the next element and true, or the zero value and false once
// the field is exhausted.
func (it *PackedFixedIter[T]) Next() (T, bool) {
	var zero T
	if len(it.buf) < it.elemLen {
		return zero, false
	}
	v := it.decode(it.buf[:it.elemLen])
	it.buf = it.buf[it.elemLen:]
	return v, true
}

// Len reports the number of elements remaining in the iterator.
func (it *PackedFixedIter[T]) Len() int { return len(it.buf) / it.elemLen }

// ReadPackedFixed32 reads a length-delimited field of back-to-back 4-byte
// fixed-width values (packed repeated fixed32/sfixed32/float) and returns
// an iterator over them. The field's length must be a multiple of 4.
func ReadPackedFixed32[T Fixed32Value](r *BytesReader) (*PackedFixedIter[T], error) {
	b, err := r.ReadBytes()
	if err != nil {
		return nil, err
	}
	if len(b)%4 != 0 {
		return nil, ErrUnexpectedEOF
	}
	return &PackedFixedIter[T]{buf: b, elemLen: 4, decode: decodeFixed32Value[T]}, nil
}

// ReadPackedFixed64 reads a length-delimited field of back-to-back 8-byte
// fixed-width values (packed repeated fixed64/sfixed64/double) and returns
// an iterator over them. The field's length must be a multiple of 8.
func ReadPackedFixed64[T Fixed64Value](r *BytesReader) (*PackedFixedIter[T], error) {
	b, err := r.ReadBytes()
	if err != nil {
		return nil, err
	}
	if len(b)%8 != 0 {
		return nil, ErrUnexpectedEOF
	}
	return &PackedFixedIter[T]{buf: b, elemLen: 8, decode: decodeFixed64Value[T]}, nil
}

// WritePackedFixed32 writes values as one packed repeated fixed32 field.
func WritePackedFixed32[B wireBackend, T Fixed32Value](w *Writer[B], fieldNumber uint32, values []T) error {
	return w.writeLengthDelimited(fieldNumber, len(values)*4, func(w *Writer[B]) error {
		for _, v := range values {
			if err := w.backend.pbWriteU32(encodeFixed32Value(v)); err != nil {
				return err
			}
		}
		return nil
	})
}

// WritePackedFixed64 writes values as one packed repeated fixed64 field.
func WritePackedFixed64[B wireBackend, T Fixed64Value](w *Writer[B], fieldNumber uint32, values []T) error {
	return w.writeLengthDelimited(fieldNumber, len(values)*8, func(w *Writer[B]) error {
		for _, v := range values {
			if err := w.backend.pbWriteU64(encodeFixed64Value(v)); err != nil {
				return err
			}
		}
		return nil
	})
}
