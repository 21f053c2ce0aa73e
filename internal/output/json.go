package output

import (
	"encoding/json"

	"github.com/polisim/polisim/internal/domain"
)

// JSONFormatter renders the ranking as indented JSON.
type JSONFormatter struct{}

// Name returns the format flag value this formatter answers to.
func (jf *JSONFormatter) Name() string { return "json" }

// Format renders the table.
func (jf *JSONFormatter) Format(table *domain.RankingTable) (string, error) {
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
