package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	ScanStarted Type = iota + 1
	ScanProgress
	ScanComplete
	FileCopied
	FileFailed
	XattrFailed
	VerifyStarted
	VerifyProgress
	VerifyDone
)

var typeNames = [...]string{
	ScanStarted:    "ScanStarted",
	ScanProgress:   "ScanProgress",
	ScanComplete:   "ScanComplete",
	FileCopied:     "FileCopied",
	FileFailed:     "FileFailed",
	XattrFailed:    "XattrFailed",
	VerifyStarted:  "VerifyStarted",
	VerifyProgress: "VerifyProgress",
	VerifyDone:     "VerifyDone",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Event represents a single progress event from the pipeline.
type Event struct {
	Type      Type
	Timestamp time.Time
	Path      string // path relative to the source root
	Display   string // formatted creation time, or "N/A"
	Index     int    // 0-based position of this file in the run
	Count     int64  // running count (scan/verify progress)
	Total     int64  // total files (ScanComplete, VerifyDone)
	Matched   bool   // VerifyDone: destination count equals source count
	Error     error
}
