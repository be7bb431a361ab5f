//go:build !linux

package xattr

import "errors"

// ErrUnsupported is returned for attribute writes on platforms without
// Linux-style extended attributes.
var ErrUnsupported = errors.New("extended attributes not supported on this platform")

func get(string, string) ([]byte, error) {
	return nil, ErrUnsupported
}

func set(string, string, []byte) error {
	return ErrUnsupported
}
