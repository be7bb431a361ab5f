package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorConcurrent(t *testing.T) {
	c := NewCollector()
	const goroutines = 100
	const opsPerGoroutine = 1000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < opsPerGoroutine; j++ {
				c.AddFilesEnumerated(1)
				c.AddFilesCopied(1)
				c.AddFilesFailed(1)
				c.AddXattrWritten(1)
				c.AddXattrFailed(1)
				c.AddBytesCopied(256)
				c.AddDestCounted(1)
			}
		}()
	}
	wg.Wait()

	s := c.Snapshot()
	expected := int64(goroutines * opsPerGoroutine)
	assert.Equal(t, expected, s.FilesEnumerated)
	assert.Equal(t, expected, s.FilesCopied)
	assert.Equal(t, expected, s.FilesFailed)
	assert.Equal(t, expected, s.XattrWritten)
	assert.Equal(t, expected, s.XattrFailed)
	assert.Equal(t, expected*256, s.BytesCopied)
	assert.Equal(t, expected, s.DestCounted)
}

func TestSnapshotString(t *testing.T) {
	s := Snapshot{
		FilesEnumerated: 10,
		FilesCopied:     8,
		FilesFailed:     1,
		XattrWritten:    7,
		XattrFailed:     1,
		BytesCopied:     4096,
	}
	expected := "enumerated=10 copied=8 failed=1 xattrs=7 xattrs_failed=1 bytes=4096"
	assert.Equal(t, expected, s.String())
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
		{1073741824, "1.0 GiB"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			require.Equal(t, tt.expected, FormatBytes(tt.input))
		})
	}
}

func TestNewCollector(t *testing.T) {
	c := NewCollector()
	assert.False(t, c.startTime.IsZero())
	assert.InDelta(t, 0, c.Elapsed().Seconds(), 1)
}

func TestTickAndRollingSpeed(t *testing.T) {
	c := NewCollector()

	// Simulate 5 seconds of 1000 bytes/sec.
	for i := 0; i < 5; i++ {
		c.AddBytesCopied(1000)
		c.Tick()
	}

	speed := c.RollingSpeed(5)
	assert.InDelta(t, 1000.0, speed, 0.01)
}

func TestRollingSpeedPartialWindow(t *testing.T) {
	c := NewCollector()

	c.AddBytesCopied(500)
	c.Tick()
	c.AddBytesCopied(500)
	c.Tick()

	// Ask for 10 but only have 2.
	speed := c.RollingSpeed(10)
	assert.InDelta(t, 500.0, speed, 0.01)
}

func TestRollingSpeedNoSamples(t *testing.T) {
	c := NewCollector()
	assert.Equal(t, 0.0, c.RollingSpeed(5))
}

func TestRingWraparound(t *testing.T) {
	c := NewCollector()

	for i := 0; i < ringSize+10; i++ {
		c.AddBytesCopied(int64(i + 1))
		c.Tick()
	}

	// Still answers from the last ringSize samples.
	assert.Greater(t, c.RollingSpeed(ringSize), 0.0)
}

func TestSnapshotIncludesElapsed(t *testing.T) {
	c := NewCollector()
	time.Sleep(10 * time.Millisecond)
	s := c.Snapshot()
	assert.Greater(t, s.Elapsed, time.Duration(0))
}
