package filetime

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicks_Time_Epoch(t *testing.T) {
	assert.Equal(t, Epoch, Ticks(0).Time())
}

func TestTicks_Time_Known(t *testing.T) {
	// FILETIME for 2020-01-11 08:00:00 UTC.
	got := Ticks(132232032000000000).Time()
	want := time.Date(2020, time.January, 11, 8, 0, 0, 0, time.UTC)
	assert.True(t, got.Equal(want), "got %v", got)
}

func TestTicks_Time_MicrosecondTruncation(t *testing.T) {
	// 100 ticks = 10µs exactly.
	got := Ticks(100).Time()
	assert.Equal(t, Epoch.Add(10*time.Microsecond), got)

	// 105 ticks = 10.5µs; the half-microsecond is discarded, not rounded.
	got = Ticks(105).Time()
	assert.Equal(t, Epoch.Add(10*time.Microsecond), got)

	// 109 ticks still truncates down.
	got = Ticks(109).Time()
	assert.Equal(t, Epoch.Add(10*time.Microsecond), got)
}

func TestDecode_Binary(t *testing.T) {
	for _, ticks := range []Ticks{0, 1, 132232032000000000, 1<<63 + 42} {
		rec, ok := Decode(ticks.Bytes())
		require.True(t, ok)
		assert.Equal(t, ticks, rec.Ticks)
	}
}

func TestDecode_HexText(t *testing.T) {
	tests := []struct {
		raw  string
		want Ticks
	}{
		{"0x01d5c8435d25f180", 0x01d5c8435d25f180},
		{"0X01D5C8435D25F180", 0x01d5c8435d25f180},
		{"1d5c8435d25f180", 0x01d5c8435d25f180},
		{"  0x2a \n", 42},
		{"0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			rec, ok := Decode([]byte(tt.raw))
			require.True(t, ok)
			assert.Equal(t, tt.want, rec.Ticks)
		})
	}
}

func TestDecode_HexRoundTrip(t *testing.T) {
	for _, ticks := range []Ticks{0, 42, 132232032000000000} {
		rec, ok := Decode([]byte(ticks.Hex()))
		require.True(t, ok)
		assert.Equal(t, ticks, rec.Ticks)
	}
}

func TestDecode_Invalid(t *testing.T) {
	// 3 bytes of junk: not 8-byte binary, not ASCII hex.
	for _, raw := range [][]byte{
		{0xff, 0xff, 0xff},
		[]byte("not hex at all"),
		[]byte(""),
		nil,
		[]byte("0x"),
		[]byte("12345678901234567"), // > 64 bits
	} {
		rec, ok := Decode(raw)
		assert.False(t, ok, "raw %q decoded to %v", raw, rec.Ticks)
	}
}

func TestDecode_NormalizesHexToBinary(t *testing.T) {
	// A hex-text source attribute decodes to the same canonical bytes as a
	// binary one, so the destination always carries the 8-byte form.
	binRec, ok := Decode(Ticks(132232032000000000).Bytes())
	require.True(t, ok)
	hexRec, ok := Decode([]byte("0x01d5c8435d25f180"))
	require.True(t, ok)
	assert.Equal(t, binRec.Ticks.Bytes(), hexRec.Ticks.Bytes())
}

func TestDaySuffixed(t *testing.T) {
	tests := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th",
		11: "11th", 12: "12th", 13: "13th",
		21: "21st", 22: "22nd", 23: "23rd", 24: "24th",
		30: "30th", 31: "31st",
	}
	for day, want := range tests {
		assert.Equal(t, want, daySuffixed(day))
	}
	for day := 4; day <= 20; day++ {
		assert.Equal(t, fmt.Sprintf("%dth", day), daySuffixed(day))
	}
}

func TestFormatLong_Structure(t *testing.T) {
	ts := time.Date(2020, time.March, 2, 19, 3, 0, 0, time.UTC)
	got := FormatLong(ts)

	// Exact local rendering depends on the test host's zone, but the shape
	// does not.
	assert.Contains(t, got, "2020")
	assert.Contains(t, got, "at ")
	assert.Regexp(t, `^\d{1,2}(st|nd|rd|th) [A-Z][a-z]+ \d{4} at \d{2}:\d{2}$`, got)
}

func TestFormatShort_Structure(t *testing.T) {
	ts := time.Date(2025, time.November, 9, 18, 30, 5, 0, time.UTC)
	got := FormatShort(ts)
	assert.Regexp(t, `^[A-Z][a-z]{2} \d{2} [A-Z][a-z]{2} \d{2}:\d{2}:\d{2}$`, got)
}

func TestHex_Canonical(t *testing.T) {
	assert.Equal(t, "0x0000000000000000", Ticks(0).Hex())
	assert.Equal(t, "0x000000000000002a", Ticks(42).Hex())
	assert.Equal(t, "0x01d5c8435d25f180", Ticks(132232032000000000).Hex())
}

func TestBytes_LittleEndian(t *testing.T) {
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0}, Ticks(1).Bytes())
}
