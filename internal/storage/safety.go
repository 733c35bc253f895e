package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/manav03panchal/tasksync/internal/errors"
)

// MinFreeSpaceWarning is the free space below which doctor warns (50 MB).
const MinFreeSpaceWarning = 50 << 20

// DiskSpaceInfo describes the volume holding a path.
type DiskSpaceInfo struct {
	Path       string
	TotalBytes uint64
	FreeBytes  uint64
	UsedBytes  uint64
}

// FreePercent returns the share of the volume that is free, 0..100.
func (d *DiskSpaceInfo) FreePercent() float64 {
	if d.TotalBytes == 0 {
		return 0
	}
	return float64(d.FreeBytes) / float64(d.TotalBytes) * 100
}

// GetDiskSpace reports the volume of path, or of its nearest existing
// parent when path does not exist yet.
func GetDiskSpace(path string) (*DiskSpaceInfo, error) {
	dir := existingAncestor(path)
	free, total, err := statDisk(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get disk space: %w", err)
	}
	return &DiskSpaceInfo{Path: dir, TotalBytes: total, FreeBytes: free, UsedBytes: total - free}, nil
}

func megabytes(n uint64) uint64 { return n >> 20 }

// CheckDiskSpace returns ErrDiskFull when free space at path is below
// minFree. A volume that cannot be inspected passes.
func CheckDiskSpace(path string, minFree uint64) error {
	info, err := GetDiskSpace(path)
	if err != nil || info.FreeBytes >= minFree {
		return nil
	}
	return errors.NewSystemError(
		fmt.Sprintf("insufficient disk space: %d MB free, need at least %d MB",
			megabytes(info.FreeBytes), megabytes(minFree)),
		errors.ErrDiskFull,
	)
}

// CheckDiskSpaceWarning returns a warning when the database volume is
// nearly full, or "".
func CheckDiskSpaceWarning(path string) string {
	info, err := GetDiskSpace(path)
	if err != nil || info.FreeBytes >= MinFreeSpaceWarning {
		return ""
	}
	return fmt.Sprintf("Low disk space: %d MB free (%.1f%%)", megabytes(info.FreeBytes), info.FreePercent())
}

// EnsureDirectory creates the database directory owner-only, first
// checking that the volume has minFree bytes to spare.
func EnsureDirectory(path string, minFree uint64) error {
	if minFree > 0 {
		if err := CheckDiskSpace(filepath.Dir(path), minFree); err != nil {
			return err
		}
	}

	err := os.MkdirAll(path, 0o700)
	switch {
	case err == nil:
		return nil
	case isDiskFullError(err):
		return errors.NewSystemErrorWithOp("mkdir", path, errors.ErrDiskFull)
	case os.IsPermission(err):
		return errors.NewSystemErrorWithOp("mkdir", path, errors.ErrPermissionDenied)
	}
	return fmt.Errorf("failed to create directory: %w", err)
}

// existingAncestor walks up from path until it finds something that exists.
func existingAncestor(path string) string {
	for {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(path)
		if parent == path {
			return path
		}
		path = parent
	}
}
