package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/pawgrounds/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CheckInResolver resolves a check-in reference into the denormalized
// summary the feed shows. Check-in bookkeeping itself is owned elsewhere;
// this is a read-only collaborator.
type CheckInResolver interface {
	GetCheckInSummary(ctx context.Context, checkInID string) (*models.CheckInSummary, error)
}

// MongoCheckInResolver implements CheckInResolver over the check-in
// collection maintained by the park service.
type MongoCheckInResolver struct {
	collection *mongo.Collection
}

// NewMongoCheckInResolver creates a new MongoCheckInResolver
func NewMongoCheckInResolver(db *mongo.Database) *MongoCheckInResolver {
	return &MongoCheckInResolver{collection: db.Collection("checkins")}
}

type checkInDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	ParkID      string             `bson:"park_id"`
	ParkName    string             `bson:"park_name"`
	CheckedInAt time.Time          `bson:"checked_in_at"`
}

// GetCheckInSummary retrieves a check-in summary by its hex ID
func (r *MongoCheckInResolver) GetCheckInSummary(ctx context.Context, checkInID string) (*models.CheckInSummary, error) {
	objID, err := primitive.ObjectIDFromHex(checkInID)
	if err != nil {
		return nil, fmt.Errorf("invalid check-in ID format: %w", err)
	}

	var doc checkInDoc
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("check-in not found")
		}
		return nil, err
	}

	return &models.CheckInSummary{
		ID:          doc.ID.Hex(),
		ParkID:      doc.ParkID,
		ParkName:    doc.ParkName,
		CheckedInAt: doc.CheckedInAt,
	}, nil
}
