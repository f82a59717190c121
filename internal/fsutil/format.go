package fsutil

import "fmt"

// FormatBytes formats a byte count as a human-readable size.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"KB", "MB", "GB", "TB", "PB"}
	return fmt.Sprintf("%.2f %s", float64(bytes)/float64(div), units[exp])
}

// FormatMode renders permission bits as a four-digit octal string.
func FormatMode(mode uint32) string {
	return fmt.Sprintf("%04o", mode&0o7777)
}
