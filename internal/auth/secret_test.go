package auth

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecret_WriteOnce(t *testing.T) {
	var s Secret
	assert.False(t, s.IsSet())
	assert.Panics(t, func() { s.Bytes() })

	s.Set("first")
	assert.True(t, s.IsSet())
	assert.Equal(t, []byte("first"), s.Bytes())

	assert.Panics(t, func() { s.Set("second") })
	assert.Equal(t, []byte("first"), s.Bytes())
}

func TestSecret_RejectsEmpty(t *testing.T) {
	var s Secret
	assert.Panics(t, func() { s.Set("") })
	assert.False(t, s.IsSet())
}

func TestSecret_ConcurrentSetOnlyOneWins(t *testing.T) {
	var (
		s      Secret
		wg     sync.WaitGroup
		mu     sync.Mutex
		panics int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if recover() != nil {
					mu.Lock()
					panics++
					mu.Unlock()
				}
			}()
			s.Set("value")
		}()
	}
	wg.Wait()
	assert.Equal(t, 7, panics)
	assert.Equal(t, []byte("value"), s.Bytes())
}
