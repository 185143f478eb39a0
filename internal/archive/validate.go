package archive

import (
	"fmt"
	"os"
	"strings"

	"github.com/klauspost/compress/zip"

	"gradinghub/internal/domain"
)

// Validate inspects the archive at path without extracting anything to
// the cache. The report is advisory: ingestion applies the same limits
// again while actually unpacking.
func Validate(path string, limits Limits) domain.ArchiveReport {
	info, err := os.Stat(path)
	if err != nil {
		return invalidReport(fmt.Sprintf("unreadable: %v", err))
	}
	packedSize := info.Size()

	reader, err := zip.OpenReader(path)
	if err != nil {
		return invalidReport(fmt.Sprintf("not a readable zip archive: %v", err))
	}
	defer func() { _ = reader.Close() }()

	report := domain.ArchiveReport{IsValid: true}
	for _, f := range reader.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		report.FileCount++
		report.TotalSize += int64(f.UncompressedSize64)
	}

	if limits.exceeded(report.TotalSize, packedSize) {
		report.IsValid = false
		report.BombSuspected = true
		msg := fmt.Sprintf("declared unpacked size %d exceeds limits (packed %d)", report.TotalSize, packedSize)
		report.Message = &msg
	}

	return report
}

func invalidReport(message string) domain.ArchiveReport {
	return domain.ArchiveReport{IsValid: false, Message: &message}
}
