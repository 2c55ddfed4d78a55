package auth

import "sync/atomic"

// Secret is the token signing key. It is set exactly once during startup and
// read-only afterwards; a second Set or a read before Set is a programming
// error and panics.
type Secret struct {
	value atomic.Pointer[[]byte]
}

// NewSecret returns a Secret already holding value.
func NewSecret(value string) *Secret {
	s := &Secret{}
	s.Set(value)
	return s
}

// Set stores the key. It panics if the key is empty or was already set.
func (s *Secret) Set(value string) {
	if value == "" {
		panic("auth: empty signing secret")
	}
	key := []byte(value)
	if !s.value.CompareAndSwap(nil, &key) {
		panic("auth: signing secret already set")
	}
}

// IsSet reports whether Set has been called.
func (s *Secret) IsSet() bool {
	return s.value.Load() != nil
}

// Bytes returns the key. It panics if Set was never called.
func (s *Secret) Bytes() []byte {
	key := s.value.Load()
	if key == nil {
		panic("auth: signing secret not set")
	}
	return *key
}
