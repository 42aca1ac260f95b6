package search

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tablesearch/internal/domain/search/field"
	"github.com/kailas-cloud/tablesearch/internal/domain/search/filter"
	"github.com/kailas-cloud/tablesearch/internal/domain/search/request"
	"github.com/kailas-cloud/tablesearch/internal/esquery"
	"github.com/kailas-cloud/tablesearch/internal/logger"
	"github.com/kailas-cloud/tablesearch/internal/metrics"
)

// EntityTable labels table search metrics and logs.
const EntityTable = "table"

// Service compiles search requests into search documents.
type Service struct {
	tables TableCompiler
}

// New creates a search service.
func New(tables TableCompiler) *Service {
	return &Service{tables: tables}
}

// CompileTables compiles a table search. It never fails; the document is
// returned to the caller for execution elsewhere.
func (s *Service) CompileTables(ctx context.Context, req *request.TableSearch) esquery.Document {
	start := time.Now()
	doc := s.tables.BuildQuery(req)
	metrics.CompileDuration.WithLabelValues(EntityTable).Observe(time.Since(start).Seconds())

	keywords := "match_all"
	if req.Keywords() != "" {
		keywords = "text"
	}
	metrics.CompiledQueriesTotal.WithLabelValues(EntityTable, keywords).Inc()
	for _, f := range req.Filters() {
		metrics.CompiledFiltersTotal.WithLabelValues(filterKind(f)).Inc()
	}

	log := logger.FromContext(ctx)
	if unknown := unknownFields(req.Fields()); len(unknown) > 0 {
		log.Debug("Ignoring unknown search fields", zap.Strings("fields", unknown))
	}
	log.Debug("Compiled table query",
		zap.Int("keywords_len", len(req.Keywords())),
		zap.Int("filters", len(req.Filters())),
		zap.Int("fields", len(req.Fields())),
		zap.Int("limit", req.Limit()),
		zap.Int("offset", req.Offset()),
		zap.Bool("concise", req.Concise()),
		zap.Int("sort_keys", len(req.Sort())),
		zap.Duration("duration", time.Since(start)),
	)

	return doc
}

// filterKind classifies a filter the same way the compiler routes it.
func filterKind(f filter.Filter) string {
	if f.Value.IsEmpty() {
		return "dropped"
	}
	switch strings.ToLower(f.Name) {
	case esquery.FilterStartDate, esquery.FilterEndDate,
		esquery.FilterMinDuration, esquery.FilterMaxDuration:
		return "range"
	default:
		return "match"
	}
}

func unknownFields(fields []field.Field) []string {
	var out []string
	for _, f := range fields {
		if !f.IsValid() {
			out = append(out, string(f))
		}
	}
	return out
}
