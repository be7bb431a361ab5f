package ui

import (
	"fmt"

	"github.com/bamsammich/ntfscp/internal/stats"
)

// completionSummary builds a final summary line from a snapshot.
// Format: done ✓  files 48,917  size 2.1 GiB  time 3m 17s  errors 0
func completionSummary(snap stats.Snapshot) string {
	icon := "✓"
	if snap.FilesFailed > 0 {
		icon = "✗"
	}

	base := fmt.Sprintf("done %s  files %s  size %s  time %s",
		icon,
		FormatCount(snap.FilesCopied),
		stats.FormatBytes(snap.BytesCopied),
		FormatDuration(snap.Elapsed),
	)

	if snap.XattrWritten > 0 || snap.XattrFailed > 0 {
		base += fmt.Sprintf("  timestamps %s", FormatCount(snap.XattrWritten))
	}

	base += fmt.Sprintf("  errors %d", snap.FilesFailed+snap.XattrFailed)

	return base
}
