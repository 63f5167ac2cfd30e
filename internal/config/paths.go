package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for file locations: datasets live
// under DataDir, generated reports under ReportsDir, logs under LogsDir.
type Paths struct {
	BaseDir    string
	DataDir    string
	ReportsDir string
	LogsDir    string

	// Well-known report files
	SummaryCSV   string
	SummaryJSON  string
	BenchmarkCSV string
}

// GetPaths returns the application paths relative to the executable
// location, or to TABPROC_BASE_DIR when set (used by tests).
func GetPaths() (*Paths, error) {
	baseDir := os.Getenv("TABPROC_BASE_DIR")
	if baseDir == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to get executable path: %v", err)
		}

		exe, err = filepath.EvalSymlinks(exe)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
		}

		baseDir = filepath.Dir(exe)
	}

	return NewPaths(baseDir), nil
}

// NewPaths builds the path set rooted at baseDir
func NewPaths(baseDir string) *Paths {
	dataDir := filepath.Join(baseDir, "data")
	reportsDir := filepath.Join(dataDir, "reports")

	return &Paths{
		BaseDir:    baseDir,
		DataDir:    dataDir,
		ReportsDir: reportsDir,
		LogsDir:    filepath.Join(baseDir, "logs"),

		SummaryCSV:   filepath.Join(reportsDir, "summary.csv"),
		SummaryJSON:  filepath.Join(reportsDir, "summary.json"),
		BenchmarkCSV: filepath.Join(reportsDir, "benchmarks.csv"),
	}
}

// EnsureDirectories creates all required directories if they do not exist
func (p *Paths) EnsureDirectories() error {
	dirs := []string{p.DataDir, p.ReportsDir, p.LogsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetLogPath returns the full path for a log file name
func (p *Paths) GetLogPath(name string) string {
	return filepath.Join(p.LogsDir, name)
}

// GetReportPath returns the full path for a report file name
func (p *Paths) GetReportPath(name string) string {
	return filepath.Join(p.ReportsDir, name)
}

// FileExists reports whether path exists and is a regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
