package keylock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyLock_SerializesSameKey(t *testing.T) {
	kl := New()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := kl.Lock("SKU-1")
			defer unlock()
			// Unsynchronized read-modify-write; only safe under the key lock.
			v := counter
			counter = v + 1
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
	assert.Equal(t, 0, kl.Len())
}

func TestKeyLock_IndependentKeys(t *testing.T) {
	kl := New()
	unlockA := kl.Lock("A")

	done := make(chan struct{})
	go func() {
		unlockB := kl.Lock("B")
		unlockB()
		close(done)
	}()
	<-done

	assert.Equal(t, 1, kl.Len())
	unlockA()
	assert.Equal(t, 0, kl.Len())
}
