package adb

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("PATH manipulation differs on windows")
	}

	t.Run("NotFoundIsDeterministic", func(t *testing.T) {
		t.Setenv("PATH", t.TempDir())
		t.Setenv("HOME", t.TempDir())
		t.Setenv("ANDROID_HOME", "")
		t.Setenv("ANDROID_SDK_ROOT", "")

		for i := 0; i < 3; i++ {
			_, err := Locate()
			assert.ErrorIs(t, err, ErrNotFound)
		}
	})

	t.Run("FoundOnPath", func(t *testing.T) {
		dir := t.TempDir()
		bin := filepath.Join(dir, "adb")
		require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755))
		t.Setenv("PATH", dir)

		path, err := Locate()
		require.NoError(t, err)
		assert.Equal(t, bin, path)
	})

	t.Run("SDKEnvFallback", func(t *testing.T) {
		t.Setenv("PATH", t.TempDir())
		t.Setenv("HOME", t.TempDir())
		sdk := t.TempDir()
		tools := filepath.Join(sdk, "platform-tools")
		require.NoError(t, os.MkdirAll(tools, 0o755))
		bin := filepath.Join(tools, "adb")
		require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755))
		t.Setenv("ANDROID_HOME", sdk)

		path, err := Locate()
		require.NoError(t, err)
		assert.Equal(t, bin, path)
	})

	t.Run("NonExecutableSkipped", func(t *testing.T) {
		t.Setenv("PATH", t.TempDir())
		t.Setenv("HOME", t.TempDir())
		sdk := t.TempDir()
		tools := filepath.Join(sdk, "platform-tools")
		require.NoError(t, os.MkdirAll(tools, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(tools, "adb"), []byte("data"), 0o644))
		t.Setenv("ANDROID_HOME", sdk)
		t.Setenv("ANDROID_SDK_ROOT", "")

		_, err := Locate()
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
