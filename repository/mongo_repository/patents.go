package mongo_repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/linkai-dev/linkai/models"
	"github.com/linkai-dev/linkai/repository"
)

// mongoPatentSource implements repository.RecordSource over the patents
// collection written by the ETL pipeline.
type mongoPatentSource struct {
	collection *mongo.Collection
}

// NewPatentSource creates a record source over the given database/collection
func NewPatentSource(client *mongo.Client, dbName, collection string) repository.RecordSource {
	return &mongoPatentSource{collection: client.Database(dbName).Collection(collection)}
}

func (s *mongoPatentSource) ListAll(ctx context.Context, fn func(models.PatentRecord) error) error {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("patents find failed: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var record models.PatentRecord
		if err := cursor.Decode(&record); err != nil {
			// a malformed document must not abort the whole build
			continue
		}
		if err := fn(record); err != nil {
			return err
		}
	}
	if err := cursor.Err(); err != nil {
		return fmt.Errorf("patents cursor failed: %w", err)
	}
	return nil
}

func (s *mongoPatentSource) EstimatedCount(ctx context.Context) (int64, error) {
	count, err := s.collection.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("patents count failed: %w", err)
	}
	return count, nil
}
