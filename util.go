package codec

import "fmt"

// WireType is the low 3 bits of a protobuf tag, identifying how the field's
// payload is framed on the wire.
type WireType uint8

const (
	WireVarint          WireType = 0
	WireFixed64         WireType = 1
	WireLengthDelimited WireType = 2
	WireStartGroup      WireType = 3 // deprecated
	WireEndGroup        WireType = 4 // deprecated
	WireFixed32         WireType = 5
)

func (wt WireType) String() string {
	switch wt {
	case WireVarint:
		return "varint"
	case WireFixed64:
		return "fixed64"
	case WireLengthDelimited:
		return "length-delimited"
	case WireStartGroup:
		return "start-group"
	case WireEndGroup:
		return "end-group"
	case WireFixed32:
		return "fixed32"
	default:
		return fmt.Sprintf("wiretype(%d)", uint8(wt))
	}
}

// tag is a decoded protobuf tag: fieldNumber<<3 | wireType.
type tag uint32

func makeTag(fieldNumber uint32, wt WireType) tag {
	return tag(fieldNumber<<3 | uint32(wt))
}

func (t tag) fieldNumber() uint32 { return uint32(t) >> 3 }
func (t tag) wireType() WireType  { return WireType(uint32(t) & 0x7) }

// Ptr is a helper to create a pointer to a value, making test setup cleaner.
func Ptr[T any](v T) *T { return &v }
