//go:build linux

package fsops

import (
	"os"
	"syscall"
	"time"
)

// statTimes extracts creation and access times from the platform stat
// structure. Linux exposes no birth time; the inode change time stands in.
func statTimes(info os.FileInfo) (created, accessed time.Time) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime(), info.ModTime()
	}

	created = time.Unix(stat.Ctim.Sec, stat.Ctim.Nsec)
	accessed = time.Unix(stat.Atim.Sec, stat.Atim.Nsec)
	return created, accessed
}
