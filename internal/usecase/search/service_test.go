package search

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kailas-cloud/tablesearch/internal/domain/search/field"
	"github.com/kailas-cloud/tablesearch/internal/domain/search/filter"
	"github.com/kailas-cloud/tablesearch/internal/domain/search/request"
	"github.com/kailas-cloud/tablesearch/internal/esquery"
	"github.com/kailas-cloud/tablesearch/internal/esquery/table"
	"github.com/kailas-cloud/tablesearch/internal/logger"
	"github.com/kailas-cloud/tablesearch/internal/metrics"
)

type mockCompiler struct {
	doc    esquery.Document
	called bool
	last   *request.TableSearch
}

func (m *mockCompiler) BuildQuery(req *request.TableSearch) esquery.Document {
	m.called = true
	m.last = req
	return m.doc
}

func TestCompileTables_DelegatesToCompiler(t *testing.T) {
	want := esquery.Document{"size": 3}
	m := &mockCompiler{doc: want}
	svc := New(m)

	req := request.New("orders", nil, nil, 3, 0, false, nil)
	got := svc.CompileTables(context.Background(), &req)

	assert.True(t, m.called)
	assert.Same(t, &req, m.last)
	assert.Equal(t, want, got)
}

func TestCompileTables_WithTableBuilder(t *testing.T) {
	svc := New(table.NewBuilder())
	req := request.New("", nil, []field.Field{field.TableName}, 10, 0, false, nil)

	doc := svc.CompileTables(context.Background(), &req)
	assert.Equal(t, 10, doc["size"])
	assert.Equal(t, 0, doc["from"])
	assert.Contains(t, doc, "highlight")
}

func TestCompileTables_Metrics(t *testing.T) {
	svc := New(&mockCompiler{doc: esquery.Document{}})

	beforeText := testutil.ToFloat64(metrics.CompiledQueriesTotal.WithLabelValues(EntityTable, "text"))
	beforeRange := testutil.ToFloat64(metrics.CompiledFiltersTotal.WithLabelValues("range"))
	beforeDropped := testutil.ToFloat64(metrics.CompiledFiltersTotal.WithLabelValues("dropped"))
	beforeMatch := testutil.ToFloat64(metrics.CompiledFiltersTotal.WithLabelValues("match"))

	req := request.New("orders", []filter.Filter{
		filter.New("EndDate", "2020-12-31"),
		filter.New("owner", ""),
		filter.New("schema", "main"),
	}, nil, 1, 0, false, nil)
	svc.CompileTables(context.Background(), &req)

	assert.InDelta(t, beforeText+1,
		testutil.ToFloat64(metrics.CompiledQueriesTotal.WithLabelValues(EntityTable, "text")), 0.001)
	assert.InDelta(t, beforeRange+1, testutil.ToFloat64(metrics.CompiledFiltersTotal.WithLabelValues("range")), 0.001)
	assert.InDelta(t, beforeDropped+1,
		testutil.ToFloat64(metrics.CompiledFiltersTotal.WithLabelValues("dropped")), 0.001)
	assert.InDelta(t, beforeMatch+1, testutil.ToFloat64(metrics.CompiledFiltersTotal.WithLabelValues("match")), 0.001)
}

func TestCompileTables_LogsThroughContextLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx := logger.ContextWithLogger(context.Background(), zap.New(core))

	svc := New(&mockCompiler{doc: esquery.Document{}})
	req := request.New("x", nil, []field.Field{field.Column, "owner"}, 1, 0, false, nil)
	svc.CompileTables(ctx, &req)

	require.Equal(t, 1, logs.FilterMessage("Ignoring unknown search fields").Len())
	entries := logs.FilterMessage("Compiled table query").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ContextMap()["fields"])
}

func TestFilterKind(t *testing.T) {
	tests := []struct {
		f    filter.Filter
		want string
	}{
		{filter.New("startdate", "x"), "range"},
		{filter.New("MaxDuration", "1"), "range"},
		{filter.New("tag", []string{"a"}), "match"},
		{filter.New("tag", []string{}), "dropped"},
		{filter.New("enddate", ""), "dropped"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, filterKind(tt.f), tt.f.Name)
	}
}
