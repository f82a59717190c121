//go:build !linux && !darwin

package fsops

import (
	"os"
	"time"
)

func statTimes(info os.FileInfo) (created, accessed time.Time) {
	return info.ModTime(), info.ModTime()
}
