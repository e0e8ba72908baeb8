// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  Store
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, XBearerToken, "  AAAA%2Fbearer  \n")
				writeFile(t, dir, "other", "value")
				return dir
			},
			want: Store{XBearerToken: "AAAA%2Fbearer", "other": "value"},
		},
		{
			name: "returns empty store for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: Store{},
		},
		{
			name: "skips empty files, dotfiles and directories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, XBearerToken, "tok")
				writeFile(t, dir, "empty", "")
				writeFile(t, dir, "blank", "   \n\t  ")
				writeFile(t, dir, ".gitkeep", "x")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
				return dir
			},
			want: Store{XBearerToken: "tok"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t), &bytes.Buffer{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFileWarns(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("file permissions not enforced")
	}
	dir := t.TempDir()
	writeFile(t, dir, XBearerToken, "tok")
	writeFile(t, dir, "locked", "secret")
	require.NoError(t, os.Chmod(filepath.Join(dir, "locked"), 0o000))

	var warn bytes.Buffer
	got, err := Load(dir, &warn)
	require.NoError(t, err)
	assert.Equal(t, Store{XBearerToken: "tok"}, got)
	assert.Contains(t, warn.String(), "warning: could not read secret locked")
}

func TestLoadNotADirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := Load(path, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestStoreGetAndKeys(t *testing.T) {
	s := Store{"b": "2", XBearerToken: "tok", "a": "1"}
	assert.Equal(t, "tok", s.Get(XBearerToken))
	assert.Equal(t, "", s.Get("missing"))
	assert.Equal(t, []string{"a", "b", XBearerToken}, s.Keys())

	var empty Store
	assert.Equal(t, "", empty.Get(XBearerToken))
	assert.Empty(t, empty.Keys())
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
