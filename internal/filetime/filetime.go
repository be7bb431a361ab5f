// Package filetime converts NTFS creation timestamps (Windows FILETIME
// values) between their on-disk encodings and calendar time.
package filetime

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TicksPerSecond is the number of 100ns intervals in one second.
const TicksPerSecond = 10_000_000

// Epoch is the FILETIME epoch: 1601-01-01T00:00:00 UTC.
var Epoch = time.Date(1601, time.January, 1, 0, 0, 0, 0, time.UTC)

// epochUnix is Epoch expressed in Unix seconds (-11644473600).
var epochUnix = Epoch.Unix()

// Ticks is an unsigned count of 100ns intervals since Epoch.
type Ticks uint64

// Time converts the tick count to UTC calendar time. Sub-second precision
// is truncated to whole microseconds; the sub-microsecond remainder is
// discarded, matching the source attribute's producers.
func (t Ticks) Time() time.Time {
	sec := int64(t / TicksPerSecond)
	micros := int64(t%TicksPerSecond) / 10
	return time.Unix(epochUnix+sec, micros*1000).UTC()
}

// Bytes returns the canonical 8-byte little-endian encoding.
func (t Ticks) Bytes() []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(t))
	return buf
}

// Hex returns the canonical lowercase zero-padded hex string, e.g.
// "0x01d5c8435d25f180".
func (t Ticks) Hex() string {
	return fmt.Sprintf("0x%016x", uint64(t))
}

// Record is the decoded, immutable form of a creation-time attribute.
type Record struct {
	Ticks    Ticks
	Readable string // long-format local-time string
}

// Decode attempts to interpret a raw attribute value as a tick count.
// Strategies are tried in a fixed order: an exactly-8-byte value is an
// unsigned little-endian integer; anything else is ASCII hex text with an
// optional 0x/0X prefix. The first success wins; any parse failure at any
// stage yields ok=false, never an error.
func Decode(raw []byte) (Record, bool) {
	for _, decode := range strategies {
		if t, ok := decode(raw); ok {
			return Record{Ticks: t, Readable: FormatLong(t.Time())}, true
		}
	}
	return Record{}, false
}

// strategies is the documented decode order: binary first, hex text second.
var strategies = []func([]byte) (Ticks, bool){
	decodeBinary,
	decodeHexText,
}

func decodeBinary(raw []byte) (Ticks, bool) {
	if len(raw) != 8 {
		return 0, false
	}
	return Ticks(binary.LittleEndian.Uint64(raw)), true
}

func decodeHexText(raw []byte) (Ticks, bool) {
	t, err := ParseHex(string(raw))
	if err != nil {
		return 0, false
	}
	return t, true
}

// ParseHex parses hexadecimal text, tolerating surrounding whitespace and
// an optional 0x/0X prefix.
func ParseHex(s string) (Ticks, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("parse hex ticks: %w", err)
	}
	return Ticks(v), nil
}

// FormatLong renders a timestamp in the caller's local time zone as
// "2nd March 2020 at 19:03" (24-hour clock).
func FormatLong(ts time.Time) string {
	local := ts.Local()
	return fmt.Sprintf("%s %s %d at %02d:%02d",
		daySuffixed(local.Day()),
		local.Month().String(),
		local.Year(),
		local.Hour(), local.Minute(),
	)
}

// FormatShort renders a timestamp in the caller's local time zone as
// "Sun 09 Nov 18:30:05". This is the compact form read back by attribute
// consumers; only the codec is shared with the copy pipeline.
func FormatShort(ts time.Time) string {
	return ts.Local().Format("Mon 02 Jan 15:04:05")
}

// daySuffixed returns the day of the month with its ordinal suffix.
// Days 11-13 always take "th" regardless of their last digit.
func daySuffixed(day int) string {
	suffix := "th"
	if day%100 < 11 || day%100 > 13 {
		switch day % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(day) + suffix
}
