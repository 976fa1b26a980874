package codec

// MessageRead is implemented by any type that can decode itself from a
// BytesReader. Reading is never backend-polymorphic: every decode pulls
// from the same kind of byte-slice cursor, so unlike MessageWrite this
// interface needs no type parameter.
type MessageRead interface {
	UnmarshalFrom(r *BytesReader) error
}

// MessageWrite is implemented by any type that can encode itself to a
// Writer over backend B. A concrete type's MarshalTo names one backend
// type, so that type satisfies MessageWrite for that B only.
type MessageWrite[B wireBackend] interface {
	MarshalTo(w *Writer[B]) error
	Size() int
}

// MessageInfo is implemented by generated message types that know their own
// fully-qualified schema path, used by Registry to resolve a concrete type
// from a path string at runtime.
type MessageInfo interface {
	Path() string
}

// Marshal allocates a buffer exactly sized for m and encodes m into it.
func Marshal(m MessageWrite[*BytesWriter]) ([]byte, error) {
	buf := make([]byte, m.Size())
	w := NewBytesWriter(buf)
	if err := m.MarshalTo(w); err != nil {
		return nil, err
	}
	return w.backend.Bytes(), nil
}

// MarshalTo encodes m to an arbitrary io.Writer-backed stream, without
// precomputing or buffering the full encoding.
func MarshalTo(w *Writer[*StreamWriter], m MessageWrite[*StreamWriter]) error {
	return m.MarshalTo(w)
}

// Unmarshal decodes buf into m, which must already exist: Go generics
// cannot construct an arbitrary concrete message type from nothing, so
// Unmarshal follows the same in-place convention as encoding/json.Unmarshal
// and encoding/xml.Unmarshal.
func Unmarshal(buf []byte, m MessageRead) error {
	return Decode(buf, m)
}
