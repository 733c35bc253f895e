//go:build !windows

package storage

import (
	stderrors "errors"

	"golang.org/x/sys/unix"
)

// statDisk reports the bytes available to unprivileged users and the
// volume size at dir.
func statDisk(dir string) (free, total uint64, err error) {
	var st unix.Statfs_t
	if err := unix.Statfs(dir, &st); err != nil {
		return 0, 0, err
	}
	bsize := uint64(st.Bsize)
	return st.Bavail * bsize, st.Blocks * bsize, nil
}

func isDiskFullError(err error) bool {
	return stderrors.Is(err, unix.ENOSPC) || stderrors.Is(err, unix.EDQUOT)
}
