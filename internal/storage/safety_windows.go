//go:build windows

package storage

import (
	stderrors "errors"

	"golang.org/x/sys/windows"
)

// statDisk reports the bytes available to the caller and the volume size
// at dir.
func statDisk(dir string) (free, total uint64, err error) {
	p, err := windows.UTF16PtrFromString(dir)
	if err != nil {
		return 0, 0, err
	}
	var totalFree uint64
	if err := windows.GetDiskFreeSpaceEx(p, &free, &total, &totalFree); err != nil {
		return 0, 0, err
	}
	return free, total, nil
}

func isDiskFullError(err error) bool {
	return stderrors.Is(err, windows.ERROR_DISK_FULL) || stderrors.Is(err, windows.ERROR_HANDLE_DISK_FULL)
}
