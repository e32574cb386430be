package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pawgrounds/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MediaRepository is the media-URL attachment store: an ordered list of
// media objects per post, kept in MongoDB.
type MediaRepository interface {
	AttachMedia(ctx context.Context, postID uint, items []models.MediaItemInput) ([]models.MediaItem, error)
	GetByPostID(ctx context.Context, postID uint) ([]models.MediaItem, error)
	GetByPostIDs(ctx context.Context, postIDs []uint) (map[uint][]models.MediaItem, error)
	DeleteByPostID(ctx context.Context, postID uint) error
}

// MongoMediaRepository implements MediaRepository for MongoDB
type MongoMediaRepository struct {
	collection *mongo.Collection
}

// NewMongoMediaRepository creates a new MongoMediaRepository
func NewMongoMediaRepository(db *mongo.Database) *MongoMediaRepository {
	return &MongoMediaRepository{collection: db.Collection("post_media")}
}

// AttachMedia stores the ordered media list for a post
func (r *MongoMediaRepository) AttachMedia(ctx context.Context, postID uint, items []models.MediaItemInput) ([]models.MediaItem, error) {
	stored := make([]models.MediaItem, len(items))
	for i, in := range items {
		stored[i] = models.MediaItem{
			ID:              uuid.NewString(),
			Type:            in.Type,
			URL:             in.URL,
			ThumbnailURL:    in.ThumbnailURL,
			Width:           in.Width,
			Height:          in.Height,
			DurationSeconds: in.DurationSeconds,
		}
	}

	doc := models.MediaAttachment{
		PostID:    postID,
		Items:     stored,
		CreatedAt: time.Now(),
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return stored, nil
}

// GetByPostID retrieves the ordered media list for a post
func (r *MongoMediaRepository) GetByPostID(ctx context.Context, postID uint) ([]models.MediaItem, error) {
	var doc models.MediaAttachment
	err := r.collection.FindOne(ctx, bson.M{"post_id": postID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return []models.MediaItem{}, nil
		}
		return nil, err
	}
	return doc.Items, nil
}

// GetByPostIDs retrieves the media lists of several posts in one query
func (r *MongoMediaRepository) GetByPostIDs(ctx context.Context, postIDs []uint) (map[uint][]models.MediaItem, error) {
	result := make(map[uint][]models.MediaItem, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"post_id": bson.M{"$in": postIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc models.MediaAttachment
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		result[doc.PostID] = doc.Items
	}
	return result, cursor.Err()
}

// DeleteByPostID removes the media document of a post
func (r *MongoMediaRepository) DeleteByPostID(ctx context.Context, postID uint) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"post_id": postID})
	return err
}
