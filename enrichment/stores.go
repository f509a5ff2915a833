package enrichment

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"glana/models"
)

// Narrow store interfaces consumed by the orchestrator and resolver.
// The Mongo-backed repositories satisfy them; tests use in-memory fakes.

type ItemStore interface {
	CreateIfAbsent(ctx context.Context, item *models.Item) (*models.Item, bool, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Item, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
}

type ThemeStore interface {
	Insert(ctx context.Context, t *models.Theme) (*models.Theme, error)
	FindByName(ctx context.Context, name string) (*models.Theme, error)
	List(ctx context.Context) ([]models.Theme, error)
}

type AILogStore interface {
	Insert(ctx context.Context, log models.AILog) (*mongo.InsertOneResult, error)
}
