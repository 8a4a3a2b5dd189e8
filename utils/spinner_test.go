package utils

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// syncBuffer guards a bytes.Buffer shared between the test and the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinner_StartStop(t *testing.T) {
	out := &syncBuffer{}
	s := NewSpinner(out, "drawing", time.Millisecond, false)
	s.StopMsg = "finished\n"

	s.Start()
	s.Start()
	time.Sleep(10 * time.Millisecond)
	s.SetMessage("exporting")
	time.Sleep(10 * time.Millisecond)
	s.Stop()
	s.Stop()

	res := out.String()
	assert.Contains(t, res, "drawing")
	assert.True(t, strings.HasSuffix(res, "finished\n"))
}

func TestSpinner_Running(t *testing.T) {
	out := &syncBuffer{}
	s := NewSpinner(out, "drawing", time.Millisecond, false)
	s.StopMsg = "finished\n"
	assert.False(t, s.Running())

	// Stopping a spinner that was never started writes nothing.
	s.Stop()
	assert.Empty(t, out.String())

	s.Start()
	assert.True(t, s.Running())
	s.Stop()
	assert.False(t, s.Running())
	assert.Equal(t, 1, strings.Count(out.String(), "finished\n"))
}
