// Package reconcile computes the three-way diff between the source and
// target catalogs.
package reconcile

import (
	"log/slog"

	"github.com/aluiziolira/go-catalog-sync/models"
	"github.com/aluiziolira/go-catalog-sync/title"
)

// Engine compares the two complete entry lists. Matching is exact on
// the normalized, alias-mapped title key; no fuzzy matching. The
// mapper and override set are read-only after construction.
type Engine struct {
	mapper    *title.Mapper
	overrides *title.OverrideSet
}

// New builds an engine over the loaded alias table and exemption set.
func New(mapper *title.Mapper, overrides *title.OverrideSet) *Engine {
	if mapper == nil {
		mapper = title.NewMapper(nil)
	}
	if overrides == nil {
		overrides = title.NewOverrideSet(nil)
	}
	return &Engine{mapper: mapper, overrides: overrides}
}

// Compare buckets every entry. Source entries land in InSync when their
// mapped key exists in the target, else in ToAdd. Target entries land
// in ToRemove when no source entry maps onto them and they are not
// exempt. Order within each bucket follows input order.
func (e *Engine) Compare(source, target []models.Entry) *models.ComparisonResult {
	targetKeys := make(map[string]struct{}, len(target))
	for _, t := range target {
		targetKeys[title.Normalize(t.Title)] = struct{}{}
	}

	sourceKeys := make(map[string]struct{}, len(source))
	result := &models.ComparisonResult{}
	for _, s := range source {
		key := title.Normalize(e.mapper.SourceToTarget(s.Title))
		sourceKeys[key] = struct{}{}
		if _, ok := targetKeys[key]; ok {
			result.InSync = append(result.InSync, s)
		} else {
			result.ToAdd = append(result.ToAdd, s)
		}
	}

	for _, t := range target {
		if _, ok := sourceKeys[title.Normalize(t.Title)]; ok {
			continue
		}
		if e.overrides.IsExempt(t.Title) {
			slog.Debug("removal suppressed by exemption", slog.String("title", t.Title))
			continue
		}
		result.ToRemove = append(result.ToRemove, t)
	}

	summary := result.Summarize()
	slog.Info("reconciliation complete",
		slog.Int("to_add", summary.Added),
		slog.Int("to_remove", summary.Removed),
		slog.Int("in_sync", summary.InSync),
	)
	return result
}
