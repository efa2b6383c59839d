package output

import (
	"github.com/goccy/go-json"
	"github.com/rpgo/yearend-calculator/internal/domain"
)

// JSONFormatter serializes the settlement report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string      { return "json" }
func (j JSONFormatter) Extension() string { return "json" }

func (j JSONFormatter) Format(report *domain.SettlementReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
