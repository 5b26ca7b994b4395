package table

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ja7ad/synthusage/pkg/types"
)

// countingWriter tracks how many bytes went through it.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// writeAtomic renders into a temp file next to path and renames it over
// path once fill succeeded. On failure the temp file is removed and path is
// left as it was.
func writeAtomic(path string, fill func(w io.Writer) error) (n types.Bytes, err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("creating dirs for %s: %w", path, err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("create temp for %s: %w", path, err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	bw := bufio.NewWriter(f)
	cw := &countingWriter{w: bw}
	if err = fill(cw); err != nil {
		return 0, err
	}
	if err = bw.Flush(); err != nil {
		return 0, fmt.Errorf("flush %s: %w", path, err)
	}
	if err = f.Sync(); err != nil {
		return 0, fmt.Errorf("sync %s: %w", path, err)
	}
	if err = f.Chmod(0o644); err != nil {
		return 0, fmt.Errorf("chmod %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return 0, fmt.Errorf("close %s: %w", path, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return 0, fmt.Errorf("rename into %s: %w", path, err)
	}
	return types.Bytes(cw.n), nil
}
