// backend/src/services/summary_service.go
package services

import (
	"github.com/patrickmn/go-cache"
	"github.com/username/financecoach/backend/src/logger"
	"github.com/username/financecoach/backend/src/models"
)

// SummaryService memoizes computed finance summaries per persona id for the
// process lifetime. The underlying dataset is immutable while the server
// runs, so entries never expire and are never invalidated.
type SummaryService struct {
	dataSource   FinanceDataSource
	summaryCache *cache.Cache
}

// NewSummaryService creates a SummaryService over the given data source.
func NewSummaryService(dataSource FinanceDataSource) *SummaryService {
	return &SummaryService{
		dataSource:   dataSource,
		summaryCache: cache.New(cache.NoExpiration, cache.NoExpiration),
	}
}

// GetSummary returns the cached summary for a persona, computing and storing
// it on first access. Errors from the data source pass through and are never
// cached. Concurrent first accesses for the same persona may both compute;
// recomputation is deterministic, so last write wins harmlessly.
func (s *SummaryService) GetSummary(personaID string) (models.FinanceSummary, error) {
	if cached, found := s.summaryCache.Get(personaID); found {
		return cached.(models.FinanceSummary), nil
	}

	transactions, err := s.dataSource.LoadTransactions(personaID)
	if err != nil {
		return models.FinanceSummary{}, err
	}
	targetRate, err := s.dataSource.TargetSavingsRate(personaID)
	if err != nil {
		return models.FinanceSummary{}, err
	}

	summary := ComputeSummary(targetRate, transactions)
	s.summaryCache.Set(personaID, summary, cache.NoExpiration)

	logger.L.Debug("Finance summary computed", "personaID", personaID,
		"months", len(summary.MonthlyOverview), "categories", len(summary.Categories))
	return summary, nil
}
