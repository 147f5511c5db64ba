package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/brc-dashboard/dashboard-api/internal/core/domain"
)

const collectionActivities = "activities"

// ActivityRepository persists audit records. Inserts only; the trail is
// append-only.
type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivities)}
}

type activityDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ProjectID string             `bson:"project_id"`
	ActorID   string             `bson:"actor_id"`
	Action    string             `bson:"action"`
	Detail    string             `bson:"detail,omitempty"`
	Timestamp time.Time          `bson:"timestamp"`
}

func (r *ActivityRepository) Insert(ctx context.Context, a *domain.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, activityDoc{
		ProjectID: a.ProjectID,
		ActorID:   a.ActorID,
		Action:    a.Action,
		Detail:    a.Detail,
		Timestamp: a.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}
