package fsutil

import (
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
)

// sniffSize bounds how much of a file the content heuristics look at.
const sniffSize = 1024

// DetectMime returns the detected MIME type string for the file at path.
func DetectMime(path string) (string, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", err
	}
	return mtype.String(), nil
}

// IsTextMime reports whether a MIME type denotes textual content.
func IsTextMime(mime string) bool {
	return strings.HasPrefix(mime, "text/") ||
		mime == "application/json" ||
		mime == "application/xml" ||
		mime == "application/javascript"
}

// LooksBinary applies the non-printable-ratio heuristic to a content
// prefix: more than 10% non-printable, non-whitespace bytes means binary.
func LooksBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if len(data) > sniffSize {
		data = data[:sniffSize]
	}

	nonPrintable := 0
	for _, b := range data {
		r := rune(b)
		if b == 0 {
			return true
		}
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			nonPrintable++
		}
	}
	return nonPrintable*10 > len(data)
}

// SniffFile reads the detection prefix of a file for the content heuristics.
func SniffFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, sniffSize)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return nil, err
	}
	return buf[:n], nil
}

// DetectCharset detects the character set of text content, defaulting
// to utf-8 when detection is inconclusive.
func DetectCharset(data []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}
