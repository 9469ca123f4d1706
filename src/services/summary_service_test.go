package services

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/financecoach/backend/src/logger"
	"github.com/username/financecoach/backend/src/models"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

// stubDataSource counts LoadTransactions calls so tests can observe cache hits.
type stubDataSource struct {
	personas     []models.Persona
	transactions map[string][]models.TransactionRecord
	targetRates  map[string]float64
	loadErr      error
	loadCalls    int
}

func (s *stubDataSource) ListPersonas() []models.Persona {
	return s.personas
}

func (s *stubDataSource) LoadTransactions(personaID string) ([]models.TransactionRecord, error) {
	s.loadCalls++
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	txs, ok := s.transactions[personaID]
	if !ok {
		return nil, ErrUnknownPersona
	}
	return txs, nil
}

func (s *stubDataSource) TargetSavingsRate(personaID string) (float64, error) {
	rate, ok := s.targetRates[personaID]
	if !ok {
		return 0, ErrUnknownPersona
	}
	return rate, nil
}

func newStubDataSource() *stubDataSource {
	return &stubDataSource{
		personas: []models.Persona{
			{ID: "family", Name: "Family Planner", Description: "Parents balancing household costs."},
		},
		transactions: map[string][]models.TransactionRecord{
			"family": {
				income("2024-01-01", "Salary", 500),
				expense("2024-01-05", "Groceries", 100, true),
				expense("2024-01-10", "Dining", 50, false),
			},
		},
		targetRates: map[string]float64{"family": 0.22},
	}
}

func TestSummaryService_CachesPerPersona(t *testing.T) {
	ds := newStubDataSource()
	svc := NewSummaryService(ds)

	first, err := svc.GetSummary("family")
	require.NoError(t, err)

	second, err := svc.GetSummary("family")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, ds.loadCalls, "second call must be served from cache")
}

func TestSummaryService_UnknownPersona(t *testing.T) {
	svc := NewSummaryService(newStubDataSource())

	_, err := svc.GetSummary("nobody")
	assert.ErrorIs(t, err, ErrUnknownPersona)
}

func TestSummaryService_ErrorsAreNotCached(t *testing.T) {
	ds := newStubDataSource()
	ds.loadErr = newDataSourceError("persona data not found: boom.csv")
	svc := NewSummaryService(ds)

	_, err := svc.GetSummary("family")
	var dsErr *DataSourceError
	require.ErrorAs(t, err, &dsErr)

	// Once the data source recovers, the next call recomputes.
	ds.loadErr = nil
	summary, err := svc.GetSummary("family")
	require.NoError(t, err)
	assert.Equal(t, 2, ds.loadCalls)
	assert.Equal(t, 0.7, summary.Goals.CurrentSavingsRate)
}
