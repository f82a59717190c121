//go:build darwin

package fsops

import (
	"os"
	"syscall"
	"time"
)

// statTimes extracts creation and access times from the platform stat
// structure. Darwin carries the true birth time in Birthtimespec.
func statTimes(info os.FileInfo) (created, accessed time.Time) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime(), info.ModTime()
	}

	if stat.Birthtimespec.Sec != 0 {
		created = time.Unix(stat.Birthtimespec.Sec, stat.Birthtimespec.Nsec)
	} else {
		created = info.ModTime()
	}
	accessed = time.Unix(stat.Atimespec.Sec, stat.Atimespec.Nsec)
	return created, accessed
}
