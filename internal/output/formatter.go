package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rpgo/yearend-calculator/internal/domain"
)

// ErrUnsupportedFormat is returned when no formatter matches the requested name.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(report *domain.SettlementReport) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
	// Extension is the file extension used when the output is written to disk.
	Extension() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID  string
	Ext string
	F   func(*domain.SettlementReport) ([]byte, error)
}

func (ff FormatterFunc) Format(r *domain.SettlementReport) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                                      { return ff.ID }
func (ff FormatterFunc) Extension() string                                 { return ff.Ext }

// WriteFormatted runs a formatter and writes output to a timestamped file in dir.
func WriteFormatted(f Formatter, report *domain.SettlementReport, dir string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := filepath.Join(dir, fmt.Sprintf("settlement_report_%s_%s.%s", f.Name(), time.Now().Format("20060102_150405"), f.Extension()))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

// builtInFormatters stores available formatters.
var builtInFormatters = []Formatter{
	ConsoleVerboseFormatter{},
	ConsoleFormatter{},
	CSVFormatter{},
	JSONFormatter{},
}

// GetFormatterByName fetches a registered formatter by name or alias.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"verbose":     "console",
	"text":        "console",
	"lite":        "console-lite",
	"summary":     "console-lite",
	"json-pretty": "json",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
