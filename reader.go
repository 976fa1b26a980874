package codec

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
	"unsafe"
)

// BytesReader is a pull-style cursor over an externally owned, contiguous
// byte buffer. It never copies the buffer; every multi-byte value it
// returns (ReadBytes, ReadString) is a sub-slice that shares the buffer's
// backing array.
//
// A BytesReader is not safe for concurrent use; the caller owns the buffer
// for as long as any value this reader returned is reachable.
type BytesReader struct {
	buf   []byte
	start int
	end   int
}

// NewBytesReader creates a reader positioned at the start of buf.
func NewBytesReader(buf []byte) *BytesReader {
	return &BytesReader{buf: buf, start: 0, end: len(buf)}
}

// Len reports the number of unread bytes in the current scope.
func (r *BytesReader) Len() int { return r.end - r.start }

// IsEOF reports whether the current scope has been fully consumed.
func (r *BytesReader) IsEOF() bool { return r.start == r.end }

// ReadToEnd advances the cursor to the end of the current scope, discarding
// any remaining bytes. Useful after a partial decode to resynchronize with
// an enclosing length-delimited frame.
func (r *BytesReader) ReadToEnd() { r.start = r.end }

// NextTag reads the next field tag as an unsigned 32-bit varint.
func (r *BytesReader) NextTag() (uint32, error) {
	return r.ReadUint32()
}

// ReadUint32 reads an unsigned varint, truncated to 32 bits per the silent-
// truncation rules of varint.go.
func (r *BytesReader) ReadUint32() (uint32, error) {
	v, n, err := decodeVarint32(r.buf[:r.end], r.start)
	if err != nil {
		return 0, err
	}
	r.start += n
	return v, nil
}

// ReadUint64 reads an unsigned 64-bit varint.
func (r *BytesReader) ReadUint64() (uint64, error) {
	v, n, err := decodeVarint64(r.buf[:r.end], r.start)
	if err != nil {
		return 0, err
	}
	r.start += n
	return v, nil
}

// ReadInt32 reads a varint and reinterprets it as a two's-complement int32.
func (r *BytesReader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadInt64 reads a varint and reinterprets it as a two's-complement int64.
func (r *BytesReader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadSint32 reads a varint and applies the zig-zag decode transform.
func (r *BytesReader) ReadSint32() (int32, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return zigzagDecode32(v), nil
}

// ReadSint64 reads a varint and applies the zig-zag decode transform.
func (r *BytesReader) ReadSint64() (int64, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	return zigzagDecode64(v), nil
}

// ReadBool reads a varint and reports whether it is non-zero.
func (r *BytesReader) ReadBool() (bool, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// ReadEnum reads an int32 varint and converts it to E. ReadEnum is a free
// function rather than a method because Go methods cannot introduce
// additional type parameters beyond the receiver's.
func ReadEnum[E ~int32](r *BytesReader) (E, error) {
	v, err := r.ReadInt32()
	return E(v), err
}

func (r *BytesReader) readFixed(n int) ([]byte, error) {
	if r.start+n > r.end {
		return nil, ErrUnexpectedEOF
	}
	b := r.buf[r.start : r.start+n]
	r.start += n
	return b, nil
}

// ReadFixed32 reads 4 little-endian bytes as an unsigned integer.
func (r *BytesReader) ReadFixed32() (uint32, error) {
	b, err := r.readFixed(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadFixed64 reads 8 little-endian bytes as an unsigned integer.
func (r *BytesReader) ReadFixed64() (uint64, error) {
	b, err := r.readFixed(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadSfixed32 reads 4 little-endian bytes as a two's-complement int32.
func (r *BytesReader) ReadSfixed32() (int32, error) {
	v, err := r.ReadFixed32()
	return int32(v), err
}

// ReadSfixed64 reads 8 little-endian bytes as a two's-complement int64.
func (r *BytesReader) ReadSfixed64() (int64, error) {
	v, err := r.ReadFixed64()
	return int64(v), err
}

// ReadFloat reads 4 little-endian bytes as an IEEE 754 float32.
func (r *BytesReader) ReadFloat() (float32, error) {
	v, err := r.ReadFixed32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadDouble reads 8 little-endian bytes as an IEEE 754 float64.
func (r *BytesReader) ReadDouble() (float64, error) {
	v, err := r.ReadFixed64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

func (r *BytesReader) readVarintLen() (int, error) {
	v, n, err := decodeVarint32(r.buf[:r.end], r.start)
	if err != nil {
		return 0, err
	}
	r.start += n
	return int(v), nil
}

// ReadBytes reads a varint length L followed by exactly L bytes, returning
// a slice that borrows from the reader's underlying buffer with zero
// copies.
func (r *BytesReader) ReadBytes() ([]byte, error) {
	length, err := r.readVarintLen()
	if err != nil {
		return nil, err
	}
	if length < 0 || length > r.end-r.start {
		return nil, ErrUnexpectedEOF
	}
	b := r.buf[r.start : r.start+length : r.start+length]
	r.start += length
	return b, nil
}

// ReadString reads a length-delimited UTF-8 string. Like ReadBytes, it does
// not copy: the returned string views the reader's underlying buffer, so
// that buffer must not be modified while the string is in use.
func (r *BytesReader) ReadString() (string, error) {
	b, err := r.ReadBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	return unsafe.String(unsafe.SliceData(b), len(b)), nil
}

// readLen narrows the cursor's end bound to start+length, runs fn, and on
// success advances start to the narrowed end and restores the prior end.
// On failure the cursor is left exactly where fn left it: per the package's
// cursor-failure contract, callers must treat any error as terminating the
// decode, so no rollback is attempted.
func (r *BytesReader) readLen(length int, fn func() error) error {
	if length < 0 || length > r.end-r.start {
		return ErrUnexpectedEOF
	}
	curEnd := r.end
	r.end = r.start + length
	if err := fn(); err != nil {
		return err
	}
	r.start = r.end
	r.end = curEnd
	return nil
}

// ReadMessage reads a varint length prefix, then unmarshals m from exactly
// that many bytes.
func (r *BytesReader) ReadMessage(m MessageRead) error {
	length, err := r.readVarintLen()
	if err != nil {
		return err
	}
	return r.readLen(length, func() error { return m.UnmarshalFrom(r) })
}

// ReadMessageWithoutLen unmarshals m from the entire remainder of the
// current scope, without expecting a length prefix.
func (r *BytesReader) ReadMessageWithoutLen(m MessageRead) error {
	return r.readLen(r.end-r.start, func() error { return m.UnmarshalFrom(r) })
}

// ReadMessageByLen unmarshals m from exactly length bytes, without reading
// a length prefix (the caller already knows the length).
func (r *BytesReader) ReadMessageByLen(m MessageRead, length int) error {
	return r.readLen(length, func() error { return m.UnmarshalFrom(r) })
}

// ReadMap decodes a map entry: a length-delimited message containing field
// 1 (key) and field 2 (value). Per the defensive form recommended by this
// format's own design notes, the field discriminator is a full varint tag
// (masked down to its field number), not a single-byte shortcut, so field
// numbers are not limited to those representable in one tag byte. Any field
// number other than 1 or 2 fails with a *WireError matching
// ErrMapFieldNumber. Missing fields are left at K's/V's zero value.
func ReadMap[K any, V any](r *BytesReader, readKey func(*BytesReader) (K, error), readVal func(*BytesReader) (V, error)) (K, V, error) {
	var k K
	var v V
	length, err := r.readVarintLen()
	if err != nil {
		return k, v, err
	}
	err = r.readLen(length, func() error {
		for !r.IsEOF() {
			t, err := r.NextTag()
			if err != nil {
				return err
			}
			switch tag(t).fieldNumber() {
			case 1:
				k, err = readKey(r)
			case 2:
				v, err = readVal(r)
			default:
				return &WireError{Kind: KindMapFieldNumber, Value: tag(t).fieldNumber()}
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	return k, v, err
}

func (r *BytesReader) skipBytes(n int) error {
	if n > r.end-r.start {
		return ErrUnexpectedEOF
	}
	r.start += n
	return nil
}

// SkipField advances the cursor past the field whose tag was already read
// as t, dispatching on t's wire type. Groups fail with ErrDeprecatedGroup;
// an unrecognized wire type fails with a *WireError matching
// ErrUnknownWireType.
func (r *BytesReader) SkipField(t uint32) error {
	switch tag(t).wireType() {
	case WireVarint:
		_, err := r.ReadUint64()
		return err
	case WireFixed64:
		return r.skipBytes(8)
	case WireFixed32:
		return r.skipBytes(4)
	case WireLengthDelimited:
		length, err := r.readVarintLen()
		if err != nil {
			return err
		}
		if length < 0 || length > r.end-r.start {
			return ErrVarintOverflow
		}
		r.start += length
		return nil
	case WireStartGroup, WireEndGroup:
		return ErrDeprecatedGroup
	default:
		return &WireError{Kind: KindUnknownWireType, Value: uint32(tag(t).wireType())}
	}
}

// Decode unmarshals m from the entirety of buf, with no length prefix: the
// entry point for decoding a top-level message from a complete wire-format
// payload.
func Decode(buf []byte, m MessageRead) error {
	r := NewBytesReader(buf)
	return r.ReadMessageWithoutLen(m)
}
