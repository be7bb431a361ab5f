//go:build linux

package xattr

import "golang.org/x/sys/unix"

func get(path, name string) ([]byte, error) {
	// Size probe, then fetch.
	sz, err := unix.Getxattr(path, name, nil)
	if err != nil {
		return nil, err
	}
	if sz == 0 {
		return []byte{}, nil
	}
	buf := make([]byte, sz)
	n, err := unix.Getxattr(path, name, buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

func set(path, name string, value []byte) error {
	return unix.Setxattr(path, name, value, 0)
}
