package search

import (
	"github.com/kailas-cloud/tablesearch/internal/domain/search/request"
	"github.com/kailas-cloud/tablesearch/internal/esquery"
)

// TableCompiler compiles table search requests into search documents.
type TableCompiler interface {
	BuildQuery(req *request.TableSearch) esquery.Document
}
