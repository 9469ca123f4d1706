// backend/src/services/datasource.go
package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/username/financecoach/backend/src/models"
)

// ErrUnknownPersona indicates a persona id that is not configured.
var ErrUnknownPersona = errors.New("unknown persona id")

// DataSourceError indicates the backing dataset is missing or malformed.
type DataSourceError struct {
	err error
}

func (e *DataSourceError) Error() string {
	return e.err.Error()
}

func (e *DataSourceError) Unwrap() error {
	return e.err
}

func newDataSourceError(format string, args ...any) error {
	return &DataSourceError{err: fmt.Errorf(format, args...)}
}

// FinanceDataSource supplies the fixed persona set and their transaction datasets.
type FinanceDataSource interface {
	ListPersonas() []models.Persona
	LoadTransactions(personaID string) ([]models.TransactionRecord, error)
	TargetSavingsRate(personaID string) (float64, error)
}

// personaConfig describes one demo persona and its CSV dataset.
type personaConfig struct {
	File              string
	Name              string
	Description       string
	TargetSavingsRate float64
}

// personaRegistry is the fixed demo persona set. Iteration order for
// ListPersonas follows personaOrder so the API output is stable.
var personaRegistry = map[string]personaConfig{
	"single": {
		File:              "persona_single_demo.csv",
		Name:              "Solo Starter",
		Description:       "Young professional exploring mindful spending.",
		TargetSavingsRate: 0.2,
	},
	"family": {
		File:              "persona_family_demo.csv",
		Name:              "Family Planner",
		Description:       "Parents balancing household costs and childcare.",
		TargetSavingsRate: 0.22,
	},
	"recent_grad": {
		File:              "persona_recent_grad_demo.csv",
		Name:              "Recent Grad",
		Description:       "Early career graduate managing starter salary and loans.",
		TargetSavingsRate: 0.18,
	},
}

var personaOrder = []string{"single", "family", "recent_grad"}

// csvDataSource reads persona transaction datasets from CSV files under dataDir.
type csvDataSource struct {
	dataDir string
}

// NewCSVDataSource creates a FinanceDataSource backed by the CSV files in dataDir.
func NewCSVDataSource(dataDir string) FinanceDataSource {
	return &csvDataSource{dataDir: dataDir}
}

func (s *csvDataSource) ListPersonas() []models.Persona {
	personas := make([]models.Persona, 0, len(personaOrder))
	for _, id := range personaOrder {
		cfg := personaRegistry[id]
		personas = append(personas, models.Persona{
			ID:          id,
			Name:        cfg.Name,
			Description: cfg.Description,
		})
	}
	return personas
}

func (s *csvDataSource) TargetSavingsRate(personaID string) (float64, error) {
	cfg, ok := personaRegistry[personaID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownPersona, personaID)
	}
	return cfg.TargetSavingsRate, nil
}

func (s *csvDataSource) LoadTransactions(personaID string) ([]models.TransactionRecord, error) {
	cfg, ok := personaRegistry[personaID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPersona, personaID)
	}

	if _, err := os.Stat(s.dataDir); err != nil {
		return nil, newDataSourceError("data directory not found: %s", s.dataDir)
	}

	filePath := filepath.Join(s.dataDir, cfg.File)
	file, err := os.Open(filePath)
	if err != nil {
		return nil, newDataSourceError("persona data not found: %s", filePath)
	}
	defer file.Close()

	records, err := parseTransactionCSV(file, personaID)
	if err != nil {
		return nil, newDataSourceError("failed to parse %s: %w", cfg.File, err)
	}
	return records, nil
}

// Column indexes of the persona CSV layout:
// date,description,category,amount,type,essential
const (
	colDate = iota
	colDescription
	colCategory
	colAmount
	colType
	colEssential
	numColumns
)

// parseTransactionCSV converts CSV rows into TransactionRecords. Rows that do
// not carry a parseable date are rejected; amount and essential degrade to
// zero values when malformed, matching the lenient loader the demo shipped with.
func parseTransactionCSV(file io.Reader, personaID string) ([]models.TransactionRecord, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields per record

	// Read and discard the header row
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV records: %w", err)
	}

	records := make([]models.TransactionRecord, 0, len(rows))
	for i, row := range rows {
		if len(row) < numColumns {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", i+2, numColumns, len(row))
		}

		date, err := time.Parse("2006-01-02", strings.TrimSpace(row[colDate]))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid date %q: %w", i+2, row[colDate], err)
		}

		txType := strings.ToLower(strings.TrimSpace(row[colType]))
		if txType == "" {
			txType = models.TransactionTypeExpense
		}

		records = append(records, models.TransactionRecord{
			PersonaID:   personaID,
			Date:        date,
			Description: strings.TrimSpace(row[colDescription]),
			Category:    strings.TrimSpace(row[colCategory]),
			Amount:      parseAmount(row[colAmount]),
			Type:        txType,
			Essential:   parseEssential(row[colEssential]),
		})
	}

	return records, nil
}

// parseAmount defaults to 0 when the value is missing or unparseable.
func parseAmount(s string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return value
}

// parseEssential treats "1", "true", "yes" and "y" (any case) as true.
func parseEssential(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}
