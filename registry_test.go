package codec

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type RegistrySuite struct {
	suite.Suite
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) TestRegisterAndDecodeByPath() {
	reg := NewRegistry()
	reg.Register((&point{}).Path(), func() MessageRead { return &point{} })

	p := &point{X: 3, Y: 4, Name: "p"}
	buf, err := Marshal(p)
	s.Require().NoError(err)

	m, err := reg.DecodeByPath("test.Point", buf)
	s.Require().NoError(err)
	got, ok := m.(*point)
	s.Require().True(ok)
	s.Equal(p, got)
}

func (s *RegistrySuite) TestDecodeByUnknownPathFails() {
	reg := NewRegistry()
	_, err := reg.DecodeByPath("no.such.Type", nil)
	s.Require().ErrorIs(err, ErrUnknownPath)
}

func (s *RegistrySuite) TestLookupMissing() {
	reg := NewRegistry()
	_, ok := reg.Lookup("missing")
	s.False(ok)
}
