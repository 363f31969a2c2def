// Package metadata assembles the full record shown in the detail view,
// filling gaps in the primary payload from secondary sources.
package metadata

import (
	"context"
	"strings"

	"github.com/ryanm101/biblioteca/internal/catalog"
	"github.com/ryanm101/biblioteca/internal/logging"
	"github.com/ryanm101/biblioteca/internal/tracing"
	"go.opentelemetry.io/otel/attribute"
)

// DetailSource is the primary detail API.
type DetailSource interface {
	GetGame(ctx context.Context, id int) *catalog.GameDetail
	Screenshots(ctx context.Context, id int) []string
}

// Service builds game details.
type Service struct {
	source   DetailSource
	provider Provider
}

// NewService creates a detail service. provider may be nil.
func NewService(src DetailSource, p Provider) *Service {
	return &Service{source: src, provider: p}
}

// Detail fetches the game with id, or nil when it could not be loaded.
// Missing screenshots come from the screenshots endpoint. A missing
// description comes from the metadata provider, whose match also fills an
// empty release date and user rating. Failures leave the fields empty.
func (s *Service) Detail(ctx context.Context, id int) *catalog.GameDetail {
	ctx, span := tracing.StartSpan(ctx, "metadata.detail", tracing.WithAttributes(attribute.Int("game.id", id)))
	defer span.End()

	d := s.source.GetGame(ctx, id)
	if d == nil {
		return nil
	}

	if len(d.Screenshots) == 0 {
		d.Screenshots = s.source.Screenshots(ctx, id)
	}

	if strings.TrimSpace(d.Description) == "" && s.provider != nil {
		if md, ok := s.lookup(d.Name); ok {
			enrich(d, md)
			span.SetAttributes(attribute.String("metadata.provider", s.provider.Name()))
		}
	}
	return d
}

func enrich(d *catalog.GameDetail, md GameMetadata) {
	d.Description = md.Description
	if d.Released == "" {
		d.Released = md.ReleaseDate
	}
	if d.UserRating == 0 && md.Rating > 0 {
		// provider ratings are out of 100
		d.UserRating = md.Rating / 20
	}
}

// lookup returns the best provider match for name that has a description.
func (s *Service) lookup(name string) (GameMetadata, bool) {
	results, err := s.provider.Search(name)
	if err != nil {
		logging.Warn("metadata search failed", "provider", s.provider.Name(), "query", name, "error", err)
		return GameMetadata{}, false
	}

	best, ok := BestMatch(name, results)
	if !ok {
		logging.Debug("no metadata match", "provider", s.provider.Name(), "query", name)
	}
	return best, ok
}

// BestMatch prefers a case-insensitive exact title match and otherwise the
// first result. Results without a description are never chosen.
func BestMatch(name string, results []GameMetadata) (GameMetadata, bool) {
	var first *GameMetadata
	for i := range results {
		r := &results[i]
		if strings.TrimSpace(r.Description) == "" {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(r.Name), strings.TrimSpace(name)) {
			return *r, true
		}
		if first == nil {
			first = r
		}
	}
	if first == nil {
		return GameMetadata{}, false
	}
	return *first, true
}
