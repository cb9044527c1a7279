package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/driftbox/driftbox/internal/core/domain"
)

const filesCollection = "files"

type MongoFileRepository struct {
	coll *mongo.Collection
}

func NewFileRepository(db *mongo.Database) *MongoFileRepository {
	return &MongoFileRepository{coll: db.Collection(filesCollection)}
}

func (r *MongoFileRepository) Insert(ctx context.Context, file *domain.StoredFile) error {
	if _, err := r.coll.InsertOne(ctx, file); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateKey
		}
		return fmt.Errorf("insert file: %w", err)
	}
	return nil
}

func (r *MongoFileRepository) FindByKey(ctx context.Context, key string) (*domain.StoredFile, error) {
	var file domain.StoredFile
	if err := r.coll.FindOne(ctx, bson.M{"key": key}).Decode(&file); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrFileNotFound
		}
		return nil, fmt.Errorf("find file: %w", err)
	}
	return &file, nil
}

// ListByOwner returns the owner's files ordered by upload time, ascending,
// so repeated listings are deterministic.
func (r *MongoFileRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.StoredFile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer cursor.Close(ctx)

	var files []domain.StoredFile
	if err := cursor.All(ctx, &files); err != nil {
		return nil, fmt.Errorf("decode files: %w", err)
	}
	return files, nil
}
