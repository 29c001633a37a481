package ffmpeg

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	ffmpegEnv  = "SUBLAY_FFMPEG_PATH"
	ffprobeEnv = "SUBLAY_FFPROBE_PATH"
)

var ErrNotFound = errors.New("ffmpeg binaries not found")

type BinaryPaths struct {
	FFmpeg  string
	FFprobe string
}

var (
	ensureOnce sync.Once
	ensureErr  error
	ensurePath BinaryPaths
)

// Ensure locates ffmpeg and ffprobe once per process.
func Ensure() (BinaryPaths, error) {
	ensureOnce.Do(func() {
		ensurePath, ensureErr = resolve(os.Getenv, exec.LookPath, cacheDir())
	})
	return ensurePath, ensureErr
}

func FFmpegPath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFmpeg, nil
}

func FFprobePath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFprobe, nil
}

// resolve checks, in order, the environment overrides, PATH, and a
// manually populated cache directory.
func resolve(
	getenv func(string) string,
	lookPath func(string) (string, error),
	installDir string,
) (BinaryPaths, error) {
	ffmpegPath := getenv(ffmpegEnv)
	ffprobePath := getenv(ffprobeEnv)
	if ffmpegPath != "" && ffprobePath != "" {
		return BinaryPaths{FFmpeg: ffmpegPath, FFprobe: ffprobePath}, nil
	}

	if ffmpegPath == "" {
		if found, err := lookPath("ffmpeg"); err == nil {
			ffmpegPath = found
		}
	}
	if ffprobePath == "" {
		if found, err := lookPath("ffprobe"); err == nil {
			ffprobePath = found
		}
	}
	if ffmpegPath != "" && ffprobePath != "" {
		return BinaryPaths{FFmpeg: ffmpegPath, FFprobe: ffprobePath}, nil
	}

	if installDir != "" {
		exeSuffix := executableSuffix()
		if ffmpegPath == "" {
			ffmpegPath = filepath.Join(installDir, "ffmpeg"+exeSuffix)
		}
		if ffprobePath == "" {
			ffprobePath = filepath.Join(installDir, "ffprobe"+exeSuffix)
		}
		if binariesExist(ffmpegPath, ffprobePath) {
			return BinaryPaths{FFmpeg: ffmpegPath, FFprobe: ffprobePath}, nil
		}
	}

	return BinaryPaths{}, fmt.Errorf(
		"%w: install ffmpeg or set %s and %s",
		ErrNotFound,
		ffmpegEnv,
		ffprobeEnv,
	)
}

func cacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil || dir == "" {
		return ""
	}
	return filepath.Join(dir, "sublay", "ffmpeg", runtime.GOOS, runtime.GOARCH)
}

func binariesExist(ffmpegPath, ffprobePath string) bool {
	return fileExists(ffmpegPath) && fileExists(ffprobePath)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}

func executableSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
