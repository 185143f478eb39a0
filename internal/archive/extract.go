package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"

	"gradinghub/internal/errdefs"
)

// Limits bounds resource use during extraction. MaxUnpackedBytes is the
// absolute ceiling on cumulative unpacked size; MaxRatio is the maximum
// unpacked-to-packed size ratio before an archive is treated as a
// decompression bomb.
type Limits struct {
	MaxUnpackedBytes int64
	MaxRatio         int64
}

func DefaultLimits() Limits {
	return Limits{
		MaxUnpackedBytes: 1 << 30, // 1 GiB
		MaxRatio:         100,
	}
}

func (l Limits) exceeded(unpacked, packed int64) bool {
	if unpacked > l.MaxUnpackedBytes {
		return true
	}
	return packed > 0 && unpacked > packed*l.MaxRatio
}

// Extract unpacks the archive at archivePath into destDir. If destDir
// already exists the previous extraction is reused verbatim and no bytes
// are read from the archive; the existence of destDir is the completion
// marker. Content is materialized in a temporary sibling directory first
// and published under destDir with a single rename, so a concurrent
// reader never observes a half-written extraction.
//
// Entries that would escape destDir (absolute paths or parent-directory
// segments) are dropped. Cumulative unpacked size is tracked while
// copying and the extraction aborts as soon as either limit is crossed,
// without unpacking the remainder.
//
// The returned bool reports whether this call materialized the extraction
// (false on cache hit, including losing a publish race to a concurrent
// ingest of the same digest).
func Extract(archivePath, destDir string, limits Limits) (bool, error) {
	if _, err := os.Stat(destDir); err == nil {
		return false, nil
	}

	info, err := os.Stat(archivePath)
	if err != nil {
		return false, fmt.Errorf("%w: stat %s: %v", errdefs.ErrUnreadableInput, archivePath, err)
	}
	packedSize := info.Size()

	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %v", errdefs.ErrCorruptArchive, archivePath, err)
	}
	defer func() { _ = reader.Close() }()

	// Reject obvious bombs from the headers alone, before writing a byte.
	// Declared sizes can lie, so the copy loop re-enforces the same bound.
	var declared int64
	for _, f := range reader.File {
		declared += int64(f.UncompressedSize64)
	}
	if limits.exceeded(declared, packedSize) {
		return false, fmt.Errorf("%w: declared unpacked size %d exceeds limits (packed %d)",
			errdefs.ErrUnsafeArchive, declared, packedSize)
	}

	parent := filepath.Dir(destDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return false, fmt.Errorf("creating cache directory %s: %w", parent, err)
	}

	tmpDir, err := os.MkdirTemp(parent, ".extract-*")
	if err != nil {
		return false, fmt.Errorf("creating staging directory: %w", err)
	}

	if err := unpack(reader, tmpDir, packedSize, limits); err != nil {
		_ = os.RemoveAll(tmpDir)
		return false, err
	}

	if err := os.Rename(tmpDir, destDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		if _, statErr := os.Stat(destDir); statErr == nil {
			// A concurrent ingest of the same digest published first.
			return false, nil
		}
		return false, fmt.Errorf("publishing extraction to %s: %w", destDir, err)
	}

	return true, nil
}

func unpack(reader *zip.ReadCloser, destDir string, packedSize int64, limits Limits) error {
	var unpacked int64

	for _, f := range reader.File {
		target, ok := safeJoin(destDir, f.Name)
		if !ok {
			continue
		}

		if strings.HasSuffix(f.Name, "/") {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", target, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", target, err)
		}

		written, err := writeEntry(f, target, unpacked, packedSize, limits)
		unpacked += written
		if err != nil {
			return err
		}
	}

	return nil
}

func writeEntry(f *zip.File, target string, unpackedSoFar, packedSize int64, limits Limits) (int64, error) {
	src, err := f.Open()
	if err != nil {
		return 0, fmt.Errorf("%w: entry %s: %v", errdefs.ErrCorruptArchive, f.Name, err)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", target, err)
	}
	defer func() { _ = dst.Close() }()

	// Copy at most one byte past the remaining budget so an over-budget
	// entry is detected without draining the whole stream.
	budget := limits.MaxUnpackedBytes - unpackedSoFar
	if packedSize > 0 {
		if ratioBudget := packedSize*limits.MaxRatio - unpackedSoFar; ratioBudget < budget {
			budget = ratioBudget
		}
	}

	written, err := io.Copy(dst, io.LimitReader(src, budget+1))
	if err != nil {
		return written, fmt.Errorf("%w: entry %s: %v", errdefs.ErrCorruptArchive, f.Name, err)
	}
	if written > budget || limits.exceeded(unpackedSoFar+written, packedSize) {
		return written, fmt.Errorf("%w: unpacked size exceeds limits at entry %s",
			errdefs.ErrUnsafeArchive, f.Name)
	}

	return written, nil
}

// safeJoin resolves an archive entry name against destDir, reporting
// false for any name that would land outside the destination subtree.
func safeJoin(destDir, name string) (string, bool) {
	name = strings.TrimSuffix(name, "/")
	if name == "" || strings.HasPrefix(name, "/") {
		return "", false
	}
	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return "", false
	}
	return filepath.Join(destDir, filepath.FromSlash(name)), true
}
