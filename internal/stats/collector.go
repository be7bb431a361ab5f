package stats

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

const ringSize = 60

// Collector tracks run statistics using lock-free atomic counters. The
// engine is the only writer of the counters; presenters read them and own
// the once-per-second throughput ring via Tick.
type Collector struct {
	filesEnumerated atomic.Int64
	filesCopied     atomic.Int64
	filesFailed     atomic.Int64
	xattrWritten    atomic.Int64
	xattrFailed     atomic.Int64
	bytesCopied     atomic.Int64
	destCounted     atomic.Int64
	startTime       time.Time

	mu          sync.Mutex
	throughput  [ringSize]int64 // bytes delta per second
	ringIdx     int
	ringCount   int
	lastBytes   int64
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	FilesEnumerated int64
	FilesCopied     int64
	FilesFailed     int64
	XattrWritten    int64
	XattrFailed     int64
	BytesCopied     int64
	DestCounted     int64
	Elapsed         time.Duration
}

func (c *Collector) AddFilesEnumerated(n int64) { c.filesEnumerated.Add(n) }
func (c *Collector) AddFilesCopied(n int64)     { c.filesCopied.Add(n) }
func (c *Collector) AddFilesFailed(n int64)     { c.filesFailed.Add(n) }
func (c *Collector) AddXattrWritten(n int64)    { c.xattrWritten.Add(n) }
func (c *Collector) AddXattrFailed(n int64)     { c.xattrFailed.Add(n) }
func (c *Collector) AddBytesCopied(n int64)     { c.bytesCopied.Add(n) }
func (c *Collector) AddDestCounted(n int64)     { c.destCounted.Add(n) }

// Snapshot returns a consistent point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		FilesEnumerated: c.filesEnumerated.Load(),
		FilesCopied:     c.filesCopied.Load(),
		FilesFailed:     c.filesFailed.Load(),
		XattrWritten:    c.xattrWritten.Load(),
		XattrFailed:     c.xattrFailed.Load(),
		BytesCopied:     c.bytesCopied.Load(),
		DestCounted:     c.destCounted.Load(),
		Elapsed:         c.Elapsed(),
	}
}

// Tick snapshots the byte delta into the ring buffer. Called 1/sec by the
// presenter.
func (c *Collector) Tick() {
	currentBytes := c.bytesCopied.Load()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.throughput[c.ringIdx] = currentBytes - c.lastBytes
	c.lastBytes = currentBytes
	c.ringIdx = (c.ringIdx + 1) % ringSize
	if c.ringCount < ringSize {
		c.ringCount++
	}
}

// RollingSpeed returns average bytes/sec over the last n seconds of samples.
func (c *Collector) RollingSpeed(seconds int) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := seconds
	if count > c.ringCount {
		count = c.ringCount
	}
	if count == 0 {
		return 0
	}
	var sum int64
	for i := 0; i < count; i++ {
		idx := (c.ringIdx - 1 - i + ringSize) % ringSize
		sum += c.throughput[idx]
	}
	return float64(sum) / float64(count)
}

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"enumerated=%d copied=%d failed=%d xattrs=%d xattrs_failed=%d bytes=%d",
		s.FilesEnumerated, s.FilesCopied, s.FilesFailed,
		s.XattrWritten, s.XattrFailed, s.BytesCopied,
	)
}

// FormatBytes returns a human-readable byte count.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
