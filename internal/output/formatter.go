package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/microdca/dcasim/internal/domain"
)

// Report bundles whatever a run produced for rendering: a daily comparison,
// a yearly projection, or both.
type Report struct {
	Name       string
	Comparison *domain.ComparisonResult
	Projection *domain.ProjectionResult
}

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(rep *Report) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// WriteFormatted runs a formatter and writes its output to a timestamped file
// in dir with the given extension, returning the filename.
func WriteFormatted(f Formatter, rep *Report, dir, ext string) (string, error) {
	data, err := f.Format(rep)
	if err != nil {
		return "", err
	}
	filename := filepath.Join(dir, fmt.Sprintf("dcasim_%s_%s.%s", f.Name(), time.Now().Format("20060102_150405"), ext))
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", err
	}
	return filename, nil
}

// builtInFormatters stores available formatters (extended incrementally).
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	DailyCSVExporter{},
	ProjectionCSVExporter{},
	JSONFormatter{},
}

// GetFormatterByName fetches a registered formatter, nil when unknown.
func GetFormatterByName(name string) Formatter {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, len(builtInFormatters))
	for i, f := range builtInFormatters {
		names[i] = f.Name()
	}
	return names
}
