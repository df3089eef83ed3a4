package adb

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ErrNotFound is returned when no adb binary exists on the PATH or in any
// known install location.
var ErrNotFound = errors.New("adb binary not found")

// Locate finds the adb executable. The PATH wins; otherwise the Android SDK
// environment variables and a per-platform list of common install
// directories are checked in order, stopping at the first hit.
func Locate() (string, error) {
	if path, err := exec.LookPath("adb"); err == nil {
		return path, nil
	}
	for _, path := range fallbackPaths() {
		if isExecutable(path) {
			return path, nil
		}
	}
	return "", ErrNotFound
}

func fallbackPaths() []string {
	exe := "adb"
	if runtime.GOOS == "windows" {
		exe = "adb.exe"
	}

	var paths []string
	for _, env := range []string{"ANDROID_HOME", "ANDROID_SDK_ROOT"} {
		if sdk := os.Getenv(env); sdk != "" {
			paths = append(paths, filepath.Join(sdk, "platform-tools", exe))
		}
	}

	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		for _, env := range []string{"LOCALAPPDATA", "PROGRAMFILES(X86)", "PROGRAMFILES"} {
			if base := os.Getenv(env); base != "" {
				paths = append(paths, filepath.Join(base, "Android", "Sdk", "platform-tools", exe))
			}
		}
		paths = append(paths,
			`C:\adb\adb.exe`,
			`C:\platform-tools\adb.exe`,
		)
	case "darwin":
		paths = append(paths,
			filepath.Join(home, "Library", "Android", "sdk", "platform-tools", exe),
			"/usr/local/bin/adb",
			"/opt/homebrew/bin/adb",
		)
	default:
		paths = append(paths,
			filepath.Join(home, "Android", "Sdk", "platform-tools", exe),
			"/usr/local/bin/adb",
			"/usr/bin/adb",
			"/opt/android-sdk/platform-tools/adb",
		)
	}
	return paths
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

// InstallHint returns a platform-appropriate suggestion for installing the
// platform-tools package.
func InstallHint() string {
	switch runtime.GOOS {
	case "darwin":
		return "brew install android-platform-tools"
	case "windows":
		return "winget install Google.PlatformTools"
	default:
		return "sudo apt install android-tools-adb"
	}
}
