package plugin

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	ciErrors "github.com/mrz1836/moodle-plugin-ci/internal/errors"
)

// CopyTo copies the filtered plugin tree into dst, which must not exist yet.
// Excluded files are never written.
func (c *Capabilities) CopyTo(dst string) error {
	if _, err := os.Stat(dst); err == nil {
		return fmt.Errorf("%w: %s", ciErrors.ErrDestinationExists, dst)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", dst, err)
	}

	if err := os.MkdirAll(dst, 0o750); err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	return c.walk("", func(rel string) error {
		src := filepath.Join(c.dir, filepath.FromSlash(rel))
		target := filepath.Join(dst, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(target), err)
		}
		return copyFile(src, target)
	})
}

func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	in, err := os.Open(src) //#nosec G304 -- src comes from walking the plugin root
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, info.Mode().Perm()) //#nosec G304 -- dst is below the install path
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copying %s: %w", src, err)
	}
	return out.Close()
}
