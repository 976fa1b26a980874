package codec

import "github.com/puzpuzpuz/xsync/v4"

// Registry resolves a MessageInfo's Path to a constructor for that message
// type, letting a generic decoder build the right concrete message for a
// schema path it only knows as a string (for example, the type_url of an
// Any-like envelope). It is backed by xsync.Map rather than a mutex-guarded
// map so that concurrent readers resolving different paths never contend.
type Registry struct {
	ctors *xsync.Map[string, func() MessageRead]
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{ctors: xsync.NewMap[string, func() MessageRead]()}
}

// Register associates path with a constructor that produces a fresh,
// zero-valued message ready to be unmarshaled into. Registering the same
// path twice replaces the earlier constructor.
func (reg *Registry) Register(path string, ctor func() MessageRead) {
	reg.ctors.Store(path, ctor)
}

// Lookup returns a freshly constructed message for path, or false if no
// constructor was registered under that path.
func (reg *Registry) Lookup(path string) (MessageRead, bool) {
	ctor, ok := reg.ctors.Load(path)
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// DecodeByPath looks up path in the registry, constructs a message, and
// unmarshals buf into it.
func (reg *Registry) DecodeByPath(path string, buf []byte) (MessageRead, error) {
	m, ok := reg.Lookup(path)
	if !ok {
		return nil, ErrUnknownPath
	}
	if err := Decode(buf, m); err != nil {
		return nil, err
	}
	return m, nil
}
