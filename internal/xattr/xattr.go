// Package xattr reads and writes the NTFS creation-time extended
// attributes this tool cares about. Platform errors on the read side are
// collapsed into "absent" so an unsupported filesystem never aborts a run.
package xattr

import "github.com/bamsammich/ntfscp/internal/filetime"

// Attribute names. SourceAttr is what ntfs-3g exposes on an NTFS mount;
// the two user.* names are the portable representation written to the
// destination and read back by display integrations.
const (
	SourceAttr   = "system.ntfs_crtime"
	DestAttr     = "user.ntfs_crtime"
	ReadableAttr = "user.ntfs_crtime_readable"
)

// ReadCreationTime fetches the source creation-time attribute. Any
// retrieval error (attribute missing, unsupported filesystem, permission
// denied) reports absent.
func ReadCreationTime(path string) ([]byte, bool) {
	raw, err := get(path, SourceAttr)
	if err != nil {
		return nil, false
	}
	return raw, true
}

// WriteCreationTime attaches both destination attributes: the canonical
// 8-byte little-endian tick count and the UTF-8 long-format string. The
// first failure is returned; callers treat it as a warning, the file
// content is already committed by then.
func WriteCreationTime(path string, rec filetime.Record) error {
	if err := set(path, DestAttr, rec.Ticks.Bytes()); err != nil {
		return err
	}
	return set(path, ReadableAttr, []byte(rec.Readable))
}

// ReadDisplayString resolves the human-readable creation time for a copied
// file the way display consumers do: the readable attribute wins, the raw
// attribute is the fallback, and absence or malformed content yields "".
// This priority order is a stable contract.
func ReadDisplayString(path string) string {
	if raw, err := get(path, ReadableAttr); err == nil {
		if s := string(raw); s != "" {
			return s
		}
	}
	raw, err := get(path, DestAttr)
	if err != nil {
		return ""
	}
	rec, ok := filetime.Decode(raw)
	if !ok {
		return ""
	}
	return filetime.FormatShort(rec.Ticks.Time())
}
