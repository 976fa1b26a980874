package codec

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ReaderSuite struct {
	suite.Suite
}

func TestReaderSuite(t *testing.T) {
	suite.Run(t, new(ReaderSuite))
}

func (s *ReaderSuite) TestSkipFieldVarint() {
	w := NewBytesWriter(make([]byte, 32))
	s.Require().NoError(w.WriteUint64(5, 1<<40))
	s.Require().NoError(w.WriteBool(6, true))

	r := NewBytesReader(w.backend.Bytes())
	t1, err := r.NextTag()
	s.Require().NoError(err)
	s.Require().NoError(r.SkipField(t1))

	t2, err := r.NextTag()
	s.Require().NoError(err)
	s.Equal(uint32(6), tag(t2).fieldNumber())
	b, err := r.ReadBool()
	s.Require().NoError(err)
	s.True(b)
	s.True(r.IsEOF())
}

func (s *ReaderSuite) TestSkipFieldLengthDelimited() {
	w := NewBytesWriter(make([]byte, 32))
	s.Require().NoError(w.WriteBytes(1, []byte("discard me")))
	s.Require().NoError(w.WriteInt32(2, 9))

	r := NewBytesReader(w.backend.Bytes())
	t1, err := r.NextTag()
	s.Require().NoError(err)
	s.Require().NoError(r.SkipField(t1))

	t2, err := r.NextTag()
	s.Require().NoError(err)
	v, err := r.ReadInt32()
	s.Require().NoError(err)
	s.Equal(uint32(2), tag(t2).fieldNumber())
	s.Equal(int32(9), v)
}

func (s *ReaderSuite) TestSkipFieldLengthDelimitedOverflowFails() {
	// Declared length exceeds the bytes remaining in scope: a length
	// overflow, not a short buffer, so it must report ErrVarintOverflow.
	buf := appendVarint(nil, uint64(makeTag(1, WireLengthDelimited)))
	buf = appendVarint(buf, 100)
	r := NewBytesReader(buf)
	t1, err := r.NextTag()
	s.Require().NoError(err)
	err = r.SkipField(t1)
	s.Require().ErrorIs(err, ErrVarintOverflow)
}

func (s *ReaderSuite) TestSkipFieldGroupFails() {
	r := &BytesReader{buf: []byte{}, start: 0, end: 0}
	t := makeTag(1, WireStartGroup)
	err := r.SkipField(uint32(t))
	s.Require().ErrorIs(err, ErrDeprecatedGroup)
}

func (s *ReaderSuite) TestReadBytesIsZeroCopy() {
	buf := make([]byte, 32)
	w := NewBytesWriter(buf)
	s.Require().NoError(w.WriteBytes(1, []byte("zero-copy")))

	encoded := w.backend.Bytes()
	r := NewBytesReader(encoded)
	_, err := r.NextTag()
	s.Require().NoError(err)
	b, err := r.ReadBytes()
	s.Require().NoError(err)
	s.Equal("zero-copy", string(b))

	// Mutating the source buffer must be visible through b: it borrows,
	// it does not copy.
	encoded[len(encoded)-1] = 'X'
	s.Equal(byte('X'), b[len(b)-1])
}

func (s *ReaderSuite) TestReadStringRejectsInvalidUTF8() {
	w := NewBytesWriter(make([]byte, 16))
	s.Require().NoError(w.WriteBytes(1, []byte{0xff, 0xfe, 0xfd}))

	r := NewBytesReader(w.backend.Bytes())
	_, err := r.NextTag()
	s.Require().NoError(err)
	_, err = r.ReadString()
	s.Require().ErrorIs(err, ErrInvalidUTF8)
}

func (s *ReaderSuite) TestLengthDelimitedScopeDoesNotLeakIntoParent() {
	inner := NewBytesWriter(make([]byte, 16))
	s.Require().NoError(inner.WriteInt32(1, 1))

	outer := NewBytesWriter(make([]byte, 64))
	s.Require().NoError(outer.WriteBytes(1, inner.backend.Bytes()))
	s.Require().NoError(outer.WriteInt32(2, 2))

	r := NewBytesReader(outer.backend.Bytes())
	_, err := r.NextTag()
	s.Require().NoError(err)
	nested, err := r.ReadBytes()
	s.Require().NoError(err)

	nr := NewBytesReader(nested)
	_, err = nr.NextTag()
	s.Require().NoError(err)
	v, err := nr.ReadInt32()
	s.Require().NoError(err)
	s.Equal(int32(1), v)
	s.True(nr.IsEOF())

	_, err = r.NextTag()
	s.Require().NoError(err)
	v2, err := r.ReadInt32()
	s.Require().NoError(err)
	s.Equal(int32(2), v2)
}

func (s *ReaderSuite) TestReadMapDefensiveFieldDiscriminator() {
	// Build a map entry by hand: field 1 (key, string), field 2 (value,
	// int32), wrapped in a length-delimited field as any map entry would
	// be on the wire.
	entry := NewBytesWriter(make([]byte, 32))
	s.Require().NoError(entry.WriteString(1, "count"))
	s.Require().NoError(entry.WriteInt32(2, 7))

	outer := NewBytesWriter(make([]byte, 64))
	s.Require().NoError(outer.WriteBytes(10, entry.backend.Bytes()))

	r := NewBytesReader(outer.backend.Bytes())
	t, err := r.NextTag()
	s.Require().NoError(err)
	s.Equal(uint32(10), tag(t).fieldNumber())

	k, v, err := ReadMap(r,
		func(r *BytesReader) (string, error) { return r.ReadString() },
		func(r *BytesReader) (int32, error) { return r.ReadInt32() },
	)
	s.Require().NoError(err)
	s.Equal("count", k)
	s.Equal(int32(7), v)
}

func (s *ReaderSuite) TestReadMapRejectsBadFieldNumber() {
	entry := NewBytesWriter(make([]byte, 32))
	s.Require().NoError(entry.WriteInt32(3, 1))

	outer := NewBytesWriter(make([]byte, 32))
	s.Require().NoError(outer.WriteBytes(1, entry.backend.Bytes()))

	r := NewBytesReader(outer.backend.Bytes())
	_, err := r.NextTag()
	s.Require().NoError(err)

	_, _, err = ReadMap(r,
		func(r *BytesReader) (string, error) { return r.ReadString() },
		func(r *BytesReader) (int32, error) { return r.ReadInt32() },
	)
	s.Require().ErrorIs(err, ErrMapFieldNumber)
}

func (s *ReaderSuite) TestReadEnum() {
	type Status int32
	const StatusActive Status = 2

	w := NewBytesWriter(make([]byte, 8))
	s.Require().NoError(WriteEnum(w, 1, StatusActive))

	r := NewBytesReader(w.backend.Bytes())
	_, err := r.NextTag()
	s.Require().NoError(err)
	got, err := ReadEnum[Status](r)
	s.Require().NoError(err)
	s.Equal(StatusActive, got)
}
