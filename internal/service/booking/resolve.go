package booking

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/beautybox/salon-api/internal/model"
)

// ResolutionOutcome tags which branch of the service-matching heuristic
// produced the result, so callers and tests can tell a real match from a
// fallback.
type ResolutionOutcome string

const (
	ResolutionExact       ResolutionOutcome = "exact"
	ResolutionToken       ResolutionOutcome = "token"
	ResolutionFirstActive ResolutionOutcome = "first_active"
	ResolutionAutoCreated ResolutionOutcome = "auto_created"
)

// minTokenLength filters connective words ("de", "con", "las") out of token
// matching.
const minTokenLength = 4

// Placeholder values for services auto-created when nothing in the catalog is
// active. Deliberately visible in listings so the owner corrects them.
const (
	placeholderPrice      = 50
	placeholderDuration   = 60
	placeholderSupplyCost = 5
)

// resolveService maps free-form requested text onto a catalog service. The
// fallback order is fixed: exact case-insensitive name match, then the first
// token (longer than 3 chars, in original word order) whose text appears in a
// service name, then the first active service, and only with an empty active
// catalog an auto-created placeholder. The heuristic is lossy; the outcome
// tag records which branch fired.
func (s *Service) resolveService(ctx context.Context, requested string) (*model.Service, ResolutionOutcome, error) {
	active, err := s.services.List(ctx, false)
	if err != nil {
		return nil, "", err
	}
	// Store order is not guaranteed stable; ascending id is the documented
	// tie-break.
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })

	wanted := strings.ToLower(strings.TrimSpace(requested))
	for i := range active {
		if strings.ToLower(active[i].Name) == wanted {
			return &active[i], ResolutionExact, nil
		}
	}

	for _, token := range matchTokens(wanted) {
		for i := range active {
			if strings.Contains(strings.ToLower(active[i].Name), token) {
				return &active[i], ResolutionToken, nil
			}
		}
	}

	if len(active) > 0 {
		return &active[0], ResolutionFirstActive, nil
	}

	placeholder := &model.Service{
		Name:            strings.TrimSpace(requested),
		CategoryID:      model.FallbackCategoryID,
		Price:           placeholderPrice,
		DurationMinutes: placeholderDuration,
		SupplyCost:      placeholderSupplyCost,
		Description:     "Creado automáticamente desde una solicitud web",
	}
	if _, err := s.services.Insert(ctx, placeholder); err != nil {
		return nil, "", fmt.Errorf("failed to auto-create service: %w", err)
	}
	s.log.Warn("auto-created placeholder service", "name", placeholder.Name)
	return placeholder, ResolutionAutoCreated, nil
}

// matchTokens keeps the words of the request long enough to be meaningful, in
// their original order.
func matchTokens(requested string) []string {
	var tokens []string
	for _, word := range strings.Fields(requested) {
		if len([]rune(word)) >= minTokenLength {
			tokens = append(tokens, word)
		}
	}
	return tokens
}
