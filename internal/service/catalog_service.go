package service

import (
	"fmt"

	"github.com/quizforge/quizforge/internal/dto"
	"github.com/quizforge/quizforge/internal/model"
	"github.com/quizforge/quizforge/internal/repository"
	"github.com/rs/zerolog/log"
)

// CatalogVersion is the static version string reported for every catalog
// entry.
const CatalogVersion = "1"

// CatalogService lists the available tests with their question-count
// breakdown.
type CatalogService interface {
	ListTests() ([]dto.TestMetadataDTO, error)
}

type catalogService struct {
	testRepo repository.TestRepository
}

func NewCatalogService(testRepo repository.TestRepository) CatalogService {
	return &catalogService{testRepo: testRepo}
}

func (s *catalogService) ListTests() ([]dto.TestMetadataDTO, error) {
	tests, err := s.testRepo.FindAllWithCategories()
	if err != nil {
		log.Error().Err(err).Msg("ListTests: failed to fetch tests")
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}

	countRows, err := s.testRepo.CountQuestionsByType()
	if err != nil {
		log.Error().Err(err).Msg("ListTests: failed to count questions")
		return nil, fmt.Errorf("error counting questions: %w", err)
	}

	counts := make(map[string]dto.QuestionCountsDTO, len(tests))
	for _, row := range countRows {
		c := counts[row.TestID.String()]
		if row.Type.IsClosed() {
			c.Closed += row.Count
		} else if row.Type == model.OpenEnded {
			c.Open += row.Count
		}
		c.Total = c.Closed + c.Open
		counts[row.TestID.String()] = c
	}

	// Never nil, so an empty store serializes as [] rather than null.
	metadata := make([]dto.TestMetadataDTO, 0, len(tests))
	for _, t := range tests {
		entry := dto.TestMetadataDTO{
			Scope:          t.Title,
			Version:        CatalogVersion,
			TestID:         t.ID.String(),
			QuestionCounts: counts[t.ID.String()],
		}
		if len(t.Categories) > 0 {
			// Categories are preloaded in name order; the first one is the
			// primary.
			name := t.Categories[0].Name
			entry.Category = &name
		}
		metadata = append(metadata, entry)
	}
	return metadata, nil
}
