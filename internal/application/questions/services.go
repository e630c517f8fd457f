package questions

import (
	"context"
	"log"

	"github.com/sainiharshit322/personnel-empowerment/internal/domain/ai"
)

const (
	defaultCompany = "TSR Corporation"
	defaultCount   = 3
)

// Service generates the engagement questions served to the survey page.
type Service struct {
	Generator ai.QuestionGenerator
	Company   string
	Count     int
	// Fallback is served when the generator fails; empty means the
	// failure propagates to the caller
	Fallback []string
}

// Questions returns the generated question list, or the configured
// fallback set when generation fails.
func (s *Service) Questions(ctx context.Context) ([]string, error) {
	company := s.Company
	if company == "" {
		company = defaultCompany
	}
	count := s.Count
	if count <= 0 {
		count = defaultCount
	}

	qs, err := s.Generator.Generate(ctx, company, count)
	if err != nil {
		if len(s.Fallback) > 0 {
			log.Printf("question generation failed, serving fallback set: %v", err)
			return append([]string(nil), s.Fallback...), nil
		}
		return nil, err
	}
	return qs, nil
}
