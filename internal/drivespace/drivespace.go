// Package drivespace reads the free space of the volume holding a path.
package drivespace

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/disk"
)

// Available returns the free bytes on the volume containing path.
func Available(path string) (uint64, error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return 0, fmt.Errorf("drivespace: usage for %s: %w", path, err)
	}
	return usage.Free, nil
}
