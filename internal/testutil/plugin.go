package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WritePlugin creates a plugin directory under t.TempDir() with a version.php
// declaring component plus the given extra files (relative path → content).
func WritePlugin(t *testing.T, component string, files map[string]string) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "plugin")
	version := fmt.Sprintf("<?php\ndefined('MOODLE_INTERNAL') || die();\n\n$plugin->component = '%s';\n$plugin->version = 2024010100;\n", component)
	WriteFile(t, dir, "version.php", version)

	for rel, content := range files {
		WriteFile(t, dir, rel, content)
	}
	return dir
}

// WriteFile writes content to dir/rel, creating parent directories.
func WriteFile(t *testing.T, dir, rel, content string) {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
