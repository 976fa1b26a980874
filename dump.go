package codec

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DumpRaw walks buf as a sequence of protobuf fields and renders a
// schema-free, human-readable line per field: field number, wire type, and
// a best-effort rendering of the payload. It never consults a .proto
// schema or field names, unlike text-format encoding; it exists purely as
// a diagnostic for inspecting a payload whose message type is unknown or
// unavailable, the way a hex dump inspects any binary file.
func DumpRaw(buf []byte) (string, error) {
	var sb strings.Builder
	r := NewBytesReader(buf)
	for !r.IsEOF() {
		t, err := r.NextTag()
		if err != nil {
			return "", err
		}
		tg := tag(t)
		fmt.Fprintf(&sb, "%d:%s ", tg.fieldNumber(), tg.wireType())

		switch tg.wireType() {
		case WireVarint:
			v, err := r.ReadUint64()
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&sb, "varint=%d\n", v)

		case WireFixed64:
			v, err := r.ReadFixed64()
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&sb, "fixed64=%#016x\n", v)

		case WireFixed32:
			v, err := r.ReadFixed32()
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&sb, "fixed32=%#08x\n", v)

		case WireLengthDelimited:
			b, err := r.ReadBytes()
			if err != nil {
				return "", err
			}
			if utf8.Valid(b) {
				fmt.Fprintf(&sb, "bytes(%d)=%q\n", len(b), string(b))
			} else {
				fmt.Fprintf(&sb, "bytes(%d)=%x\n", len(b), b)
			}

		case WireStartGroup, WireEndGroup:
			return "", ErrDeprecatedGroup

		default:
			return "", &WireError{Kind: KindUnknownWireType, Value: uint32(tg.wireType())}
		}
	}
	return sb.String(), nil
}
