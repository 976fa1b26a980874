package codec

// The functions below let a message's Size method compute its encoded byte
// count without touching a Writer, the same role golang/protobuf's
// proto.SizeVarint family plays for hand-written or generated marshal code.

// TagSize returns the number of bytes WriteTag would emit for fieldNumber
// and wt.
func TagSize(fieldNumber uint32, wt WireType) int {
	return varintLen(uint64(makeTag(fieldNumber, wt)))
}

// VarintSize returns the number of bytes a raw varint encoding of v
// occupies.
func VarintSize(v uint64) int {
	return varintLen(v)
}

// Int32Size returns the number of bytes a proto int32 field's value costs,
// accounting for the 10-byte sign-extension quirk on negative values.
func Int32Size(v int32) int {
	return varintLen(uint64(int64(v)))
}

// Sint32Size returns the number of bytes a proto sint32 field's
// zig-zag-encoded value costs.
func Sint32Size(v int32) int {
	return varintLen(uint64(zigzagEncode32(v)))
}

// Sint64Size returns the number of bytes a proto sint64 field's
// zig-zag-encoded value costs.
func Sint64Size(v int64) int {
	return varintLen(zigzagEncode64(v))
}

// BytesSize returns the number of bytes a length-delimited field carrying b
// costs, including its own length prefix.
func BytesSize(b []byte) int {
	return varintLen(uint64(len(b))) + len(b)
}

// StringSize returns the number of bytes a length-delimited field carrying
// s costs, including its own length prefix.
func StringSize(s string) int {
	return varintLen(uint64(len(s))) + len(s)
}

// MessageSize returns the number of bytes a nested message field carrying a
// payload of the given encoded length costs, including its own length
// prefix.
func MessageSize(encodedLen int) int {
	return varintLen(uint64(encodedLen)) + encodedLen
}
