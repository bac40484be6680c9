package tempo

import (
	"sync"
	"testing"
	"time"
)

func TestManualClock(t *testing.T) {
	c := NewManualClock(testEpoch)
	if !c.Now().Equal(testEpoch) {
		t.Fatalf("Now = %v, want %v", c.Now(), testEpoch)
	}

	c.Advance(5 * time.Millisecond)
	c.Advance(-time.Second)
	c.Advance(0)
	if got := c.Now().Sub(testEpoch); got != 5*time.Millisecond {
		t.Errorf("after Advance: %v, want 5ms", got)
	}

	c.Set(testEpoch)
	if got := c.Now().Sub(testEpoch); got != 5*time.Millisecond {
		t.Errorf("Set backwards moved the clock to %v", got)
	}
	c.Set(testEpoch.Add(time.Second))
	if got := c.Now().Sub(testEpoch); got != time.Second {
		t.Errorf("after Set: %v, want 1s", got)
	}
}

func TestManualClockConcurrentAdvance(t *testing.T) {
	c := NewManualClock(testEpoch)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				c.Advance(time.Millisecond)
				_ = c.Now()
			}
		}()
	}
	wg.Wait()
	if got := c.Now().Sub(testEpoch); got != 800*time.Millisecond {
		t.Errorf("after concurrent Advance: %v, want 800ms", got)
	}
}

func TestSystemClockMonotonic(t *testing.T) {
	c := SystemClock()
	a := c.Now()
	b := c.Now()
	if b.Sub(a) < 0 {
		t.Errorf("system clock went backwards: %v", b.Sub(a))
	}
}
