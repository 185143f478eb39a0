package archive_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"

	"gradinghub/internal/archive"
	"gradinghub/internal/errdefs"
)

func writeZip(t *testing.T, entries map[string][]byte) string {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	path := filepath.Join(t.TempDir(), "archive.zip")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func generousLimits() archive.Limits {
	return archive.Limits{MaxUnpackedBytes: 1 << 30, MaxRatio: 1 << 20}
}

func TestExtract(t *testing.T) {
	t.Run("unpacks every regular file", func(t *testing.T) {
		path := writeZip(t, map[string][]byte{
			"main.py":          []byte("print('hi')\n"),
			"report/answer.md": []byte("# Answer\n"),
			"student_id.txt":   []byte("12345678\n"),
		})
		dest := filepath.Join(t.TempDir(), "digest")

		written, err := archive.Extract(path, dest, generousLimits())
		require.NoError(t, err)
		require.True(t, written)

		for _, name := range []string{"main.py", "report/answer.md", "student_id.txt"} {
			_, err := os.Stat(filepath.Join(dest, filepath.FromSlash(name)))
			require.NoError(t, err, name)
		}
	})

	t.Run("existing destination is reused without writes", func(t *testing.T) {
		path := writeZip(t, map[string][]byte{"main.py": []byte("print('hi')\n")})
		dest := filepath.Join(t.TempDir(), "digest")

		written, err := archive.Extract(path, dest, generousLimits())
		require.NoError(t, err)
		require.True(t, written)

		// Removing a file and re-extracting proves the cache hit path
		// never touches the destination.
		require.NoError(t, os.Remove(filepath.Join(dest, "main.py")))

		written, err = archive.Extract(path, dest, generousLimits())
		require.NoError(t, err)
		require.False(t, written)
		_, err = os.Stat(filepath.Join(dest, "main.py"))
		require.True(t, os.IsNotExist(err))
	})

	t.Run("traversal entries are dropped", func(t *testing.T) {
		path := writeZip(t, map[string][]byte{
			"ok.txt":         []byte("fine"),
			"../escape.txt":  []byte("evil"),
			"/absolute.txt":  []byte("evil"),
			"a/../../up.txt": []byte("evil"),
		})
		parent := t.TempDir()
		dest := filepath.Join(parent, "sub", "digest")

		written, err := archive.Extract(path, dest, generousLimits())
		require.NoError(t, err)
		require.True(t, written)

		_, err = os.Stat(filepath.Join(dest, "ok.txt"))
		require.NoError(t, err)
		_, err = os.Stat(filepath.Join(parent, "sub", "escape.txt"))
		require.True(t, os.IsNotExist(err))
		_, err = os.Stat(filepath.Join(parent, "escape.txt"))
		require.True(t, os.IsNotExist(err))
		_, err = os.Stat(filepath.Join(parent, "up.txt"))
		require.True(t, os.IsNotExist(err))
	})

	t.Run("bomb ratio rejected before extraction", func(t *testing.T) {
		// A megabyte of zeros compresses to a couple of KiB, blowing
		// well past a 10x unpacked-to-packed bound.
		path := writeZip(t, map[string][]byte{"zeros.bin": make([]byte, 1<<20)})
		dest := filepath.Join(t.TempDir(), "digest")

		limits := archive.Limits{MaxUnpackedBytes: 1 << 30, MaxRatio: 10}
		_, err := archive.Extract(path, dest, limits)
		require.Error(t, err)
		require.True(t, errors.Is(err, errdefs.ErrUnsafeArchive))

		_, err = os.Stat(dest)
		require.True(t, os.IsNotExist(err), "nothing may be published for a rejected archive")
	})

	t.Run("absolute size ceiling rejected", func(t *testing.T) {
		path := writeZip(t, map[string][]byte{"big.txt": bytes.Repeat([]byte("data"), 64)})
		dest := filepath.Join(t.TempDir(), "digest")

		limits := archive.Limits{MaxUnpackedBytes: 16, MaxRatio: 1 << 20}
		_, err := archive.Extract(path, dest, limits)
		require.Error(t, err)
		require.True(t, errors.Is(err, errdefs.ErrUnsafeArchive))
	})

	t.Run("corrupt archive", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.zip")
		require.NoError(t, os.WriteFile(path, []byte("this is not a zip"), 0o644))

		_, err := archive.Extract(path, filepath.Join(t.TempDir(), "digest"), generousLimits())
		require.Error(t, err)
		require.True(t, errors.Is(err, errdefs.ErrCorruptArchive))
	})

	t.Run("missing source", func(t *testing.T) {
		_, err := archive.Extract(filepath.Join(t.TempDir(), "nope.zip"), filepath.Join(t.TempDir(), "digest"), generousLimits())
		require.Error(t, err)
		require.True(t, errors.Is(err, errdefs.ErrUnreadableInput))
	})
}

func TestValidate(t *testing.T) {
	t.Run("counts regular files and sizes", func(t *testing.T) {
		path := writeZip(t, map[string][]byte{
			"a.txt":     []byte("aaaa"),
			"dir/b.txt": []byte("bbbbbb"),
		})

		report := archive.Validate(path, generousLimits())
		require.True(t, report.IsValid)
		require.False(t, report.BombSuspected)
		require.Equal(t, 2, report.FileCount)
		require.Equal(t, int64(10), report.TotalSize)
	})

	t.Run("flags suspected bombs", func(t *testing.T) {
		path := writeZip(t, map[string][]byte{"zeros.bin": make([]byte, 1<<20)})

		report := archive.Validate(path, archive.Limits{MaxUnpackedBytes: 1 << 30, MaxRatio: 10})
		require.False(t, report.IsValid)
		require.True(t, report.BombSuspected)
		require.NotNil(t, report.Message)
	})

	t.Run("rejects non-archives", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("just text"), 0o644))

		report := archive.Validate(path, generousLimits())
		require.False(t, report.IsValid)
		require.False(t, report.BombSuspected)
		require.NotNil(t, report.Message)
	})
}
