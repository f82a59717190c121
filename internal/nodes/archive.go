package nodes

import (
	"archive/tar"
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/flowgrid/flowfs/internal/fsops"
	"github.com/flowgrid/flowfs/internal/types"
)

// ArchiveNode creates, extracts and inspects zip and tar archives.
type ArchiveNode struct {
	*Base
}

// GetTools returns the archive tool definitions.
func (n *ArchiveNode) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "fs.archive_create",
			Name:        "Create Archive",
			Description: "Archive a file or directory subtree",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "File or directory to archive", Required: true},
				{Name: "destination", Type: "string", Description: "Archive path to create", Required: true},
				{Name: "format", Type: "string", Description: "Archive format (auto derives from extension)", Required: false, Default: "auto", Enum: []string{"zip", "tar.gz", "tar.zst", "auto"}},
				{Name: "includeHidden", Type: "boolean", Description: "Include dot-prefixed entries", Required: false, Default: false},
			},
			Returns: "object",
		},
		{
			ID:          "fs.archive_extract",
			Name:        "Extract Archive",
			Description: "Extract an archive into a directory",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Archive path", Required: true},
				{Name: "destination", Type: "string", Description: "Directory to extract into", Required: true},
				{Name: "format", Type: "string", Description: "Archive format (auto derives from extension)", Required: false, Default: "auto", Enum: []string{"zip", "tar.gz", "tar.zst", "auto"}},
			},
			Returns: "object",
		},
		{
			ID:          "fs.archive_entries",
			Name:        "List Archive",
			Description: "List archive members without extracting",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Archive path", Required: true},
				{Name: "format", Type: "string", Description: "Archive format (auto derives from extension)", Required: false, Default: "auto", Enum: []string{"zip", "tar.gz", "tar.zst", "auto"}},
			},
			Returns: "array",
		},
	}
}

// Run executes an archive tool.
func (n *ArchiveNode) Run(toolID string, params map[string]interface{}, runCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "fs.archive_create":
		return n.create(params, runCtx)
	case "fs.archive_extract":
		return n.extract(params, runCtx)
	case "fs.archive_entries":
		return n.entries(params, runCtx)
	default:
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (n *ArchiveNode) create(params map[string]interface{}, runCtx *types.Context) (*types.Result, error) {
	source, ok := GetString(params, "source")
	if !ok || source == "" {
		return Failure("source parameter required")
	}
	destination, ok := GetString(params, "destination")
	if !ok || destination == "" {
		return Failure("destination parameter required")
	}

	fullSource, err := n.resolvePath(source, runCtx)
	if err != nil {
		return Failure(err.Error())
	}
	fullDest, err := n.resolvePath(destination, runCtx)
	if err != nil {
		return Failure(err.Error())
	}

	format, failMsg := deriveArchiveFormat(params, fullDest)
	if failMsg != "" {
		return Failure(failMsg)
	}

	srcEntry, err := fsops.Stat(fullSource)
	if err != nil {
		return Failure(err.Error())
	}

	out, err := os.Create(fullDest)
	if err != nil {
		return Failure(fmt.Sprintf("create failed: %v", err))
	}

	includeHidden := GetBool(params, "includeHidden", false)
	var files int
	var totalSize int64
	if format == "zip" {
		files, totalSize, failMsg = writeZip(out, fullSource, srcEntry, includeHidden)
	} else {
		files, totalSize, failMsg = writeTar(out, format, fullSource, srcEntry, includeHidden)
	}
	if failMsg != "" {
		out.Close()
		os.Remove(fullDest)
		return Failure(failMsg)
	}
	if err := out.Close(); err != nil {
		os.Remove(fullDest)
		return Failure(fmt.Sprintf("archive creation failed: %v", err))
	}

	return Success(map[string]interface{}{
		"created":     true,
		"source":      fullSource,
		"destination": fullDest,
		"format":      format,
		"files":       files,
		"total_size":  totalSize,
	})
}

// writeZip streams the source into a zip archive. Returns a failure
// message, empty on success.
func writeZip(out io.Writer, fullSource string, srcEntry fsops.Entry, includeHidden bool) (int, int64, string) {
	writer := zip.NewWriter(out)

	files := 0
	totalSize := int64(0)

	addFile := func(path, name string) error {
		w, err := writer.Create(name)
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return nil
		}
		defer f.Close()
		size, err := io.Copy(w, f)
		if err != nil {
			return err
		}
		totalSize += size
		files++
		return nil
	}

	var walkErr error
	if srcEntry.Kind != fsops.KindDirectory {
		walkErr = addFile(fullSource, filepath.Base(fullSource))
	} else {
		// Archive writers are not safe for concurrent use.
		conf := fastwalk.Config{Follow: false, NumWorkers: 1}
		walkErr = fastwalk.Walk(&conf, fullSource, func(path string, d os.DirEntry, err error) error {
			if err != nil || path == fullSource {
				return nil
			}
			relPath, _ := filepath.Rel(fullSource, path)
			if !includeHidden && hasHiddenSegment(relPath) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				_, err := writer.Create(filepath.ToSlash(relPath) + "/")
				return err
			}
			return addFile(path, filepath.ToSlash(relPath))
		})
	}

	if walkErr != nil {
		writer.Close()
		return 0, 0, fmt.Sprintf("zip creation failed: %v", walkErr)
	}
	if err := writer.Close(); err != nil {
		return 0, 0, fmt.Sprintf("zip creation failed: %v", err)
	}
	return files, totalSize, ""
}

// writeTar streams the source into a compressed tar archive. Returns a
// failure message, empty on success.
func writeTar(out io.Writer, format, fullSource string, srcEntry fsops.Entry, includeHidden bool) (int, int64, string) {
	var compressed io.WriteCloser
	switch format {
	case "tar.gz":
		compressed = gzip.NewWriter(out)
	case "tar.zst":
		zw, err := zstd.NewWriter(out)
		if err != nil {
			return 0, 0, fmt.Sprintf("zstd failed: %v", err)
		}
		compressed = zw
	}
	writer := tar.NewWriter(compressed)

	files := 0
	totalSize := int64(0)

	addEntry := func(path, name string, info os.FileInfo) error {
		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return nil
		}
		header.Name = name
		if err := writer.WriteHeader(header); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return nil
		}
		defer f.Close()
		size, err := io.Copy(writer, f)
		if err != nil {
			return err
		}
		totalSize += size
		files++
		return nil
	}

	var walkErr error
	if srcEntry.Kind != fsops.KindDirectory {
		info, err := os.Stat(fullSource)
		if err == nil {
			walkErr = addEntry(fullSource, filepath.Base(fullSource), info)
		}
	} else {
		conf := fastwalk.Config{Follow: false, NumWorkers: 1}
		walkErr = fastwalk.Walk(&conf, fullSource, func(path string, d os.DirEntry, err error) error {
			if err != nil || path == fullSource {
				return nil
			}
			relPath, _ := filepath.Rel(fullSource, path)
			if !includeHidden && hasHiddenSegment(relPath) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			return addEntry(path, filepath.ToSlash(relPath), info)
		})
	}

	if walkErr != nil {
		writer.Close()
		if compressed != nil {
			compressed.Close()
		}
		return 0, 0, fmt.Sprintf("tar creation failed: %v", walkErr)
	}
	if err := writer.Close(); err != nil {
		return 0, 0, fmt.Sprintf("tar creation failed: %v", err)
	}
	if compressed != nil {
		if err := compressed.Close(); err != nil {
			return 0, 0, fmt.Sprintf("tar creation failed: %v", err)
		}
	}
	return files, totalSize, ""
}

func (n *ArchiveNode) extract(params map[string]interface{}, runCtx *types.Context) (*types.Result, error) {
	source, ok := GetString(params, "source")
	if !ok || source == "" {
		return Failure("source parameter required")
	}
	destination, ok := GetString(params, "destination")
	if !ok || destination == "" {
		return Failure("destination parameter required")
	}

	fullSource, err := n.resolvePath(source, runCtx)
	if err != nil {
		return Failure(err.Error())
	}
	fullDest, err := n.resolvePath(destination, runCtx)
	if err != nil {
		return Failure(err.Error())
	}

	format, failMsg := deriveArchiveFormat(params, fullSource)
	if failMsg != "" {
		return Failure(failMsg)
	}

	var files int
	if format == "zip" {
		files, failMsg = extractZip(fullSource, fullDest)
	} else {
		files, failMsg = extractTar(fullSource, fullDest, format)
	}
	if failMsg != "" {
		return Failure(failMsg)
	}

	return Success(map[string]interface{}{
		"extracted":   true,
		"source":      fullSource,
		"destination": fullDest,
		"format":      format,
		"files":       files,
	})
}

// extractZip unpacks a zip archive, skipping entries that escape the
// destination (zip-slip) and entries that fail individually.
func extractZip(fullSource, fullDest string) (int, string) {
	reader, err := zip.OpenReader(fullSource)
	if err != nil {
		return 0, fmt.Sprintf("open failed: %v", err)
	}
	defer reader.Close()

	files := 0
	for _, file := range reader.File {
		destPath := filepath.Join(fullDest, file.Name)
		if !strings.HasPrefix(destPath, filepath.Clean(fullDest)+string(os.PathSeparator)) {
			continue
		}

		if file.FileInfo().IsDir() {
			os.MkdirAll(destPath, 0o755)
			continue
		}
		if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			continue
		}

		srcFile, err := file.Open()
		if err != nil {
			continue
		}
		dstFile, err := os.Create(destPath)
		if err != nil {
			srcFile.Close()
			continue
		}
		_, err = io.Copy(dstFile, srcFile)
		srcFile.Close()
		dstFile.Close()
		if err == nil {
			files++
		}
	}
	return files, ""
}

// extractTar unpacks a gzip- or zstd-compressed tar archive with the same
// traversal guard as extractZip.
func extractTar(fullSource, fullDest, format string) (int, string) {
	f, err := os.Open(fullSource)
	if err != nil {
		return 0, fmt.Sprintf("open failed: %v", err)
	}
	defer f.Close()

	reader, failMsg := tarReader(f, format)
	if failMsg != "" {
		return 0, failMsg
	}

	files := 0
	for {
		header, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return files, fmt.Sprintf("read failed: %v", err)
		}

		destPath := filepath.Join(fullDest, header.Name)
		if !strings.HasPrefix(destPath, filepath.Clean(fullDest)+string(os.PathSeparator)) {
			continue
		}

		switch header.Typeflag {
		case tar.TypeDir:
			os.MkdirAll(destPath, 0o755)
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
				continue
			}
			outFile, err := os.Create(destPath)
			if err != nil {
				continue
			}
			_, err = io.Copy(outFile, reader)
			outFile.Close()
			if err == nil {
				files++
			}
		}
	}
	return files, ""
}

func (n *ArchiveNode) entries(params map[string]interface{}, runCtx *types.Context) (*types.Result, error) {
	source, ok := GetString(params, "source")
	if !ok || source == "" {
		return Failure("source parameter required")
	}

	fullSource, err := n.resolvePath(source, runCtx)
	if err != nil {
		return Failure(err.Error())
	}

	format, failMsg := deriveArchiveFormat(params, fullSource)
	if failMsg != "" {
		return Failure(failMsg)
	}

	members := []map[string]interface{}{}

	if format == "zip" {
		reader, err := zip.OpenReader(fullSource)
		if err != nil {
			return Failure(fmt.Sprintf("open failed: %v", err))
		}
		defer reader.Close()

		for _, file := range reader.File {
			info := file.FileInfo()
			members = append(members, map[string]interface{}{
				"name":            file.Name,
				"size":            info.Size(),
				"compressed_size": int64(file.CompressedSize64),
				"modified_at":     info.ModTime().UTC().Format(time.RFC3339),
				"is_dir":          info.IsDir(),
			})
		}
	} else {
		f, err := os.Open(fullSource)
		if err != nil {
			return Failure(fmt.Sprintf("open failed: %v", err))
		}
		defer f.Close()

		reader, failMsg := tarReader(f, format)
		if failMsg != "" {
			return Failure(failMsg)
		}
		for {
			header, err := reader.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return Failure(fmt.Sprintf("read failed: %v", err))
			}
			members = append(members, map[string]interface{}{
				"name":        header.Name,
				"size":        header.Size,
				"modified_at": header.ModTime.UTC().Format(time.RFC3339),
				"is_dir":      header.Typeflag == tar.TypeDir,
			})
		}
	}

	return Success(map[string]interface{}{
		"source":  fullSource,
		"format":  format,
		"entries": members,
		"count":   len(members),
	})
}

// tarReader wraps an archive file in the decompressor the format calls
// for. The second return is a failure message, empty on success.
func tarReader(f *os.File, format string) (*tar.Reader, string) {
	switch format {
	case "tar.gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Sprintf("gzip failed: %v", err)
		}
		return tar.NewReader(gz), ""
	case "tar.zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Sprintf("zstd failed: %v", err)
		}
		return tar.NewReader(zr.IOReadCloser()), ""
	}
	return nil, fmt.Sprintf("unsupported archive format: %s", format)
}

// deriveArchiveFormat resolves the format parameter, falling back to the
// archive filename for "auto". The second return is a failure message,
// empty on success.
func deriveArchiveFormat(params map[string]interface{}, fullPath string) (string, string) {
	format, _ := GetString(params, "format")
	if format == "" {
		format = "auto"
	}

	switch format {
	case "zip", "tar.gz", "tar.zst":
		return format, ""
	case "auto":
	default:
		return "", fmt.Sprintf("unsupported archive format: %s", format)
	}

	name := strings.ToLower(filepath.Base(fullPath))
	switch {
	case strings.HasSuffix(name, ".zip"):
		return "zip", ""
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return "tar.gz", ""
	case strings.HasSuffix(name, ".tar.zst"):
		return "tar.zst", ""
	}
	return "", fmt.Sprintf("cannot derive archive format from %s", filepath.Base(fullPath))
}
