package repository

import (
	"context"

	"github.com/linkai-dev/linkai/models"
)

// RecordSource streams normalized patent records out of the document store.
// The engine consumes records exactly as the ETL pipeline wrote them and
// never reaches into raw vendor documents.
type RecordSource interface {
	// ListAll invokes fn for every record in the collection. Iteration stops
	// on the first fn error or when ctx is cancelled.
	ListAll(ctx context.Context, fn func(models.PatentRecord) error) error

	// EstimatedCount returns the approximate number of records available.
	EstimatedCount(ctx context.Context) (int64, error)
}
