//go:build !windows

package storage

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func TestIsDiskFullError(t *testing.T) {
	assert.False(t, isDiskFullError(nil))
	assert.False(t, isDiskFullError(fmt.Errorf("some error")))
	assert.True(t, isDiskFullError(&os.PathError{Op: "write", Path: "x", Err: unix.ENOSPC}))
	assert.True(t, isDiskFullError(fmt.Errorf("wrapped: %w", unix.ENOSPC)))
	assert.True(t, isDiskFullError(unix.EDQUOT))
}
