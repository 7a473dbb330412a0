package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	ProfileFile       = "profile.json"
	rejectionsPattern = "rejections-%s.json"
	summaryPattern    = "weekly-summary-%s.%s"
)

// Timestamp renders t as a filename-safe UTC stamp, e.g. 2026-10-15T09-30-00-123Z.
func Timestamp(t time.Time) string {
	return strings.Replace(t.UTC().Format("2006-01-02T15-04-05.000Z"), ".", "-", 1)
}

// RunStamp is Timestamp(t) followed by the first eight characters of runID,
// so runs started in the same millisecond never share artifact names.
func RunStamp(t time.Time, runID string) string {
	stamp := Timestamp(t)
	if runID == "" {
		return stamp
	}
	if len(runID) > 8 {
		runID = runID[:8]
	}
	return stamp + "-" + runID
}

func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// WriteProfile overwrites dir/profile.json.
func WriteProfile(dir string, profile any) (string, error) {
	path := filepath.Join(dir, ProfileFile)
	b, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// WriteRejections writes dir/rejections-<stamp>.json. It refuses to replace an
// existing file.
func WriteRejections(dir, stamp string, rejections any) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf(rejectionsPattern, stamp))
	b, err := json.MarshalIndent(rejections, "", "  ")
	if err != nil {
		return "", fmt.Errorf("json marshal: %w", err)
	}
	if err := writeNew(path, b); err != nil {
		return "", err
	}
	return path, nil
}

func summaryPath(dir, stamp, ext string) string {
	return filepath.Join(dir, fmt.Sprintf(summaryPattern, stamp, ext))
}

func writeNew(path string, b []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
