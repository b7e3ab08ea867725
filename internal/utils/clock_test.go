package utils

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMockClock(t *testing.T) {
	start := time.Date(2022, time.August, 5, 0, 0, 0, 0, time.UTC)
	clock := &MockClock{FixedNow: start}

	assert.Equal(t, start, clock.Now())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			clock.Advance(time.Minute)
		}()
	}
	wg.Wait()
	assert.Equal(t, start.Add(10*time.Minute), clock.Now())

	clock.SetNow(start)
	assert.Equal(t, start, clock.Now())
}
