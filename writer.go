package codec

// wireBackend is the set of primitive byte-sink operations a push-style
// Writer needs. It is deliberately small and low-level (one method per wire
// width) so the varint hot loop can be written once, generically, and
// inlined against either backend by the compiler instead of going through
// an interface vtable call per byte.
type wireBackend interface {
	pbWriteU8(v uint8) error
	pbWriteU32(v uint32) error
	pbWriteI32(v int32) error
	pbWriteF32(v float32) error
	pbWriteU64(v uint64) error
	pbWriteI64(v int64) error
	pbWriteF64(v float64) error
	pbWriteAll(buf []byte) error
}

// Writer encodes protobuf wire-format values to a backend B. Writer is
// generic over its backend, rather than holding an interface value, so
// that calls to the backend's primitive methods can be devirtualized and
// inlined by the compiler when B is a concrete type at the call site.
type Writer[B wireBackend] struct {
	backend B
}

// newWriter wraps an already-constructed backend.
func newWriter[B wireBackend](backend B) *Writer[B] {
	return &Writer[B]{backend: backend}
}

func (w *Writer[B]) writeVarint(v uint64) error {
	for v > 0x7f {
		if err := w.backend.pbWriteU8(byte(v&0x7f) | 0x80); err != nil {
			return err
		}
		v >>= 7
	}
	return w.backend.pbWriteU8(byte(v))
}

// WriteTag writes a field tag: fieldNumber<<3 | wt.
func (w *Writer[B]) WriteTag(fieldNumber uint32, wt WireType) error {
	return w.writeVarint(uint64(makeTag(fieldNumber, wt)))
}

// WriteWithTag writes fieldNumber/wt as a tag, then invokes body to write
// the field's value. It is the escape hatch callers reach for when no
// Write<Type> convenience fits.
func (w *Writer[B]) WriteWithTag(fieldNumber uint32, wt WireType, body func(*Writer[B]) error) error {
	if err := w.WriteTag(fieldNumber, wt); err != nil {
		return err
	}
	return body(w)
}

func (w *Writer[B]) writeLengthDelimited(fieldNumber uint32, length int, body func(*Writer[B]) error) error {
	if err := w.WriteTag(fieldNumber, WireLengthDelimited); err != nil {
		return err
	}
	if err := w.writeVarint(uint64(length)); err != nil {
		return err
	}
	return body(w)
}

// WriteBool writes a bool field as a one-byte varint, 0 or 1.
func (w *Writer[B]) WriteBool(fieldNumber uint32, v bool) error {
	if err := w.WriteTag(fieldNumber, WireVarint); err != nil {
		return err
	}
	if v {
		return w.writeVarint(1)
	}
	return w.writeVarint(0)
}

// WriteInt32 writes a proto int32 field. Negative values are sign-extended
// to 64 bits before varint encoding, matching the reference format's
// well-known quirk that a negative int32 costs 10 wire bytes, not 5.
func (w *Writer[B]) WriteInt32(fieldNumber uint32, v int32) error {
	if err := w.WriteTag(fieldNumber, WireVarint); err != nil {
		return err
	}
	return w.writeVarint(uint64(int64(v)))
}

// WriteInt64 writes a proto int64 field.
func (w *Writer[B]) WriteInt64(fieldNumber uint32, v int64) error {
	if err := w.WriteTag(fieldNumber, WireVarint); err != nil {
		return err
	}
	return w.writeVarint(uint64(v))
}

// WriteUint32 writes a proto uint32 field.
func (w *Writer[B]) WriteUint32(fieldNumber uint32, v uint32) error {
	if err := w.WriteTag(fieldNumber, WireVarint); err != nil {
		return err
	}
	return w.writeVarint(uint64(v))
}

// WriteUint64 writes a proto uint64 field.
func (w *Writer[B]) WriteUint64(fieldNumber uint32, v uint64) error {
	if err := w.WriteTag(fieldNumber, WireVarint); err != nil {
		return err
	}
	return w.writeVarint(v)
}

// WriteSint32 writes a proto sint32 field using the zig-zag encoding, which
// is compact for small negative values, unlike WriteInt32.
func (w *Writer[B]) WriteSint32(fieldNumber uint32, v int32) error {
	if err := w.WriteTag(fieldNumber, WireVarint); err != nil {
		return err
	}
	return w.writeVarint(uint64(zigzagEncode32(v)))
}

// WriteSint64 writes a proto sint64 field using the zig-zag encoding.
func (w *Writer[B]) WriteSint64(fieldNumber uint32, v int64) error {
	if err := w.WriteTag(fieldNumber, WireVarint); err != nil {
		return err
	}
	return w.writeVarint(zigzagEncode64(v))
}

// WriteFixed32 writes a proto fixed32 field, 4 little-endian bytes.
func (w *Writer[B]) WriteFixed32(fieldNumber uint32, v uint32) error {
	if err := w.WriteTag(fieldNumber, WireFixed32); err != nil {
		return err
	}
	return w.backend.pbWriteU32(v)
}

// WriteFixed64 writes a proto fixed64 field, 8 little-endian bytes.
func (w *Writer[B]) WriteFixed64(fieldNumber uint32, v uint64) error {
	if err := w.WriteTag(fieldNumber, WireFixed64); err != nil {
		return err
	}
	return w.backend.pbWriteU64(v)
}

// WriteSfixed32 writes a proto sfixed32 field, 4 little-endian bytes.
func (w *Writer[B]) WriteSfixed32(fieldNumber uint32, v int32) error {
	if err := w.WriteTag(fieldNumber, WireFixed32); err != nil {
		return err
	}
	return w.backend.pbWriteI32(v)
}

// WriteSfixed64 writes a proto sfixed64 field, 8 little-endian bytes.
func (w *Writer[B]) WriteSfixed64(fieldNumber uint32, v int64) error {
	if err := w.WriteTag(fieldNumber, WireFixed64); err != nil {
		return err
	}
	return w.backend.pbWriteI64(v)
}

// WriteFloat writes a proto float field as 4 little-endian IEEE 754 bytes.
func (w *Writer[B]) WriteFloat(fieldNumber uint32, v float32) error {
	if err := w.WriteTag(fieldNumber, WireFixed32); err != nil {
		return err
	}
	return w.backend.pbWriteF32(v)
}

// WriteDouble writes a proto double field as 8 little-endian IEEE 754 bytes.
func (w *Writer[B]) WriteDouble(fieldNumber uint32, v float64) error {
	if err := w.WriteTag(fieldNumber, WireFixed64); err != nil {
		return err
	}
	return w.backend.pbWriteF64(v)
}

// WriteEnum writes an enum field as an int32 varint. It is a free function,
// not a method, because Go forbids a method from adding type parameters
// beyond its receiver's.
func WriteEnum[B wireBackend, E ~int32](w *Writer[B], fieldNumber uint32, v E) error {
	return w.WriteInt32(fieldNumber, int32(v))
}

// WriteBytes writes a length-delimited bytes field.
func (w *Writer[B]) WriteBytes(fieldNumber uint32, b []byte) error {
	return w.writeLengthDelimited(fieldNumber, len(b), func(w *Writer[B]) error {
		return w.backend.pbWriteAll(b)
	})
}

// WriteString writes a length-delimited string field.
func (w *Writer[B]) WriteString(fieldNumber uint32, s string) error {
	return w.writeLengthDelimited(fieldNumber, len(s), func(w *Writer[B]) error {
		return w.backend.pbWriteAll([]byte(s))
	})
}

// WriteMessage writes a nested message field: a tag, the message's
// self-reported byte length, then the message's own encoding.
func (w *Writer[B]) WriteMessage(fieldNumber uint32, m MessageWrite[B]) error {
	return w.writeLengthDelimited(fieldNumber, m.Size(), func(w *Writer[B]) error {
		return m.MarshalTo(w)
	})
}

// WriteMap writes one map entry as a length-delimited field containing key
// field 1 and value field 2. entrySize must equal the exact number of bytes
// writeKey and writeVal will together produce; callers compute it the same
// way they compute a message's Size(), by summing each sub-field's tag and
// value cost ahead of time.
func (w *Writer[B]) WriteMap(fieldNumber uint32, entrySize int, writeKey, writeVal func(*Writer[B]) error) error {
	return w.writeLengthDelimited(fieldNumber, entrySize, func(w *Writer[B]) error {
		if err := writeKey(w); err != nil {
			return err
		}
		return writeVal(w)
	})
}
