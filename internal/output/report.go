package output

import (
	"fmt"
	"strings"

	"github.com/rpgo/yearend-calculator/internal/domain"
)

// Render formats a report with the named formatter.
func Render(report *domain.SettlementReport, format string) ([]byte, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupported(format)
	}
	return f.Format(report)
}

// GenerateReport writes a report to dir in the named format, or in every
// format when format is "all". It returns the written file names.
func GenerateReport(report *domain.SettlementReport, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, f := range builtInFormatters {
			name, err := WriteFormatted(f, report, dir)
			if err != nil {
				return files, err
			}
			files = append(files, name)
		}
		return files, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupported(format)
	}
	name, err := WriteFormatted(f, report, dir)
	if err != nil {
		return nil, err
	}
	return []string{name}, nil
}

func unsupported(format string) error {
	return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}
