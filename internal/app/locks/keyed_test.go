package locks_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"stayhub/internal/app/locks"
)

func TestKeyedSerializesSameKey(t *testing.T) {
	k := locks.NewKeyed()
	const workers = 32

	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			k.Lock("place-1")
			counter++
			k.Unlock("place-1")
		}()
	}
	wg.Wait()
	assert.Equal(t, workers, counter)
}

func TestKeyedIndependentKeys(t *testing.T) {
	k := locks.NewKeyed()
	k.Lock("a")
	// A different key must not block.
	done := make(chan struct{})
	go func() {
		k.Lock("b")
		k.Unlock("b")
		close(done)
	}()
	<-done
	k.Unlock("a")
}
