package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"glana/db"
	"glana/models"
)

type ThemeRepository struct {
	col *mongo.Collection
}

func NewThemeRepository(database *mongo.Database) *ThemeRepository {
	return &ThemeRepository{col: database.Collection("themes")}
}

// Insert creates a new theme. Returns ErrDuplicate when a theme with the same
// name (case-insensitively) already exists; the caller decides whether that is
// a conflict (explicit create) or a race to reconcile (resolver).
func (r *ThemeRepository) Insert(ctx context.Context, t *models.Theme) (*models.Theme, error) {
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	if t.Color == "" {
		t.Color = models.DefaultThemeColor
	}
	if t.SuggestedTags == nil {
		t.SuggestedTags = []string{}
	}

	res, err := r.col.InsertOne(ctx, t)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid
	}
	return t, nil
}

// FindByID returns a theme by its ObjectID
func (r *ThemeRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Theme, error) {
	var t models.Theme
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindByName returns a theme by name, compared case-insensitively via the
// same collation as the unique index.
func (r *ThemeRepository) FindByName(ctx context.Context, name string) (*models.Theme, error) {
	opts := options.FindOne().SetCollation(db.NameCollation)
	var t models.Theme
	if err := r.col.FindOne(ctx, bson.M{"name": name}, opts).Decode(&t); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List returns all themes sorted by name
func (r *ThemeRepository) List(ctx context.Context) ([]models.Theme, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var results []models.Theme
	for cur.Next(ctx) {
		var t models.Theme
		if err := cur.Decode(&t); err != nil {
			return nil, err
		}
		results = append(results, t)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// CountAll returns the total number of themes
func (r *ThemeRepository) CountAll(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

// UpdateFields updates specific fields of a theme, always refreshing updated_at
func (r *ThemeRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	update := bson.M{
		"$set": bson.M{
			"updated_at": time.Now(),
		},
	}
	for k, v := range updates {
		update["$set"].(bson.M)[k] = v
	}
	res, err := r.col.UpdateByID(ctx, id, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a theme row. Callers must null out item references first
// (ItemRepository.UnsetTheme) to preserve the deletion ordering invariant.
func (r *ThemeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
