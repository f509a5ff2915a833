package repositories

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"glana/models"
)

// 조회 파라미터 상한. 범위를 벗어난 값은 상한으로 잘라낸다.
const (
	defaultListLimit   = 20
	maxListLimit       = 100
	defaultSampleCount = 5
	maxSampleCount     = 20
)

type ItemRepository struct {
	col *mongo.Collection
}

func NewItemRepository(db *mongo.Database) *ItemRepository {
	return &ItemRepository{col: db.Collection("items")}
}

// CreateIfAbsent inserts a new item keyed by external_id. When another item
// with the same external_id already exists the pre-existing document is
// returned unmodified with created=false. The unique index on external_id
// makes this exactly-once even under concurrent ingestion.
func (r *ItemRepository) CreateIfAbsent(ctx context.Context, item *models.Item) (*models.Item, bool, error) {
	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	if item.CapturedAt.IsZero() {
		item.CapturedAt = now
	}
	item.UpdatedAt = now
	if item.Tags == nil {
		item.Tags = []string{}
	}

	res, err := r.col.InsertOne(ctx, item)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			existing, ferr := r.FindByExternalID(ctx, item.ExternalID)
			if ferr != nil {
				return nil, false, ferr
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		item.ID = oid
	}
	return item, true, nil
}

// FindByID returns an item by its ObjectID
func (r *ItemRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Item, error) {
	var it models.Item
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&it); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

// FindByExternalID returns an item by its external (source platform) id
func (r *ItemRepository) FindByExternalID(ctx context.Context, externalID string) (*models.Item, error) {
	var it models.Item
	if err := r.col.FindOne(ctx, bson.M{"external_id": externalID}).Decode(&it); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

// UpdateFields updates specific fields of an item, always refreshing updated_at
func (r *ItemRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
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
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an item
func (r *ItemRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UnsetTheme nulls theme_id on every item referencing the given theme.
// Used by theme deletion, which must complete this before removing the theme row.
func (r *ItemRepository) UnsetTheme(ctx context.Context, themeID primitive.ObjectID) (int64, error) {
	res, err := r.col.UpdateMany(ctx, bson.M{"theme_id": themeID}, bson.M{
		"$unset": bson.M{"theme_id": ""},
		"$set":   bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

type ListItemsOptions struct {
	ThemeID          *primitive.ObjectID
	OnlyFavorites    bool
	OnlyUnclassified bool
	Search           string
	Limit            int
	Offset           int
}

// List returns items with filters and pagination, sorted by captured_at desc.
// The returned total is computed against the same filter; the tag filter is
// intentionally not part of it (tags live in an array field and are
// post-filtered by the service layer).
func (r *ItemRepository) List(ctx context.Context, opt ListItemsOptions) ([]models.Item, int64, error) {
	filter := bson.M{}
	if opt.ThemeID != nil {
		filter["theme_id"] = *opt.ThemeID
	}
	if opt.OnlyFavorites {
		filter["is_favorite"] = true
	}
	if opt.OnlyUnclassified {
		filter["is_classified"] = false
	}
	if opt.Search != "" {
		filter["content"] = primitive.Regex{Pattern: regexp.QuoteMeta(opt.Search), Options: "i"}
	}

	if opt.Limit <= 0 {
		opt.Limit = defaultListLimit
	}
	if opt.Limit > maxListLimit {
		opt.Limit = maxListLimit
	}
	if opt.Offset < 0 {
		opt.Offset = 0
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().
		SetSkip(int64(opt.Offset)).
		SetLimit(int64(opt.Limit)).
		SetSort(bson.D{
			{Key: "captured_at", Value: -1},
			{Key: "_id", Value: -1},
		})
	cur, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var results []models.Item
	for cur.Next(ctx) {
		var it models.Item
		if err := cur.Decode(&it); err != nil {
			return nil, 0, err
		}
		results = append(results, it)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

type SampleItemsOptions struct {
	ThemeID    *primitive.ObjectID
	ExcludeIDs []primitive.ObjectID
	// Favorites, when set, restricts the sample to one priority tier.
	// 서비스 계층이 즐겨찾기 우선 2단계 샘플링에 사용한다.
	Favorites *bool
	Count     int
}

// Sample selects up to Count random items from the matching set, shuffled
// with $rand. This is a single-tier primitive; favorites-first ordering is
// composed by the service layer from two calls.
func (r *ItemRepository) Sample(ctx context.Context, opt SampleItemsOptions) ([]models.Item, error) {
	if opt.Count <= 0 {
		opt.Count = defaultSampleCount
	}
	if opt.Count > maxSampleCount {
		opt.Count = maxSampleCount
	}

	match := bson.M{}
	if opt.ThemeID != nil {
		match["theme_id"] = *opt.ThemeID
	}
	if opt.Favorites != nil {
		match["is_favorite"] = *opt.Favorites
	}
	if len(opt.ExcludeIDs) > 0 {
		match["_id"] = bson.M{"$nin": opt.ExcludeIDs}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$addFields", Value: bson.M{"_rand": bson.M{"$rand": bson.M{}}}}},
		{{Key: "$sort", Value: bson.D{{Key: "_rand", Value: 1}}}},
		{{Key: "$limit", Value: opt.Count}},
		{{Key: "$unset", Value: "_rand"}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var results []models.Item
	for cur.Next(ctx) {
		var it models.Item
		if err := cur.Decode(&it); err != nil {
			return nil, err
		}
		results = append(results, it)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// CountAll returns the total number of items
func (r *ItemRepository) CountAll(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

// CountUnclassified returns the number of items awaiting classification
func (r *ItemRepository) CountUnclassified(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"is_classified": false})
}

// CountByTheme returns item counts grouped by theme_id
func (r *ItemRepository) CountByTheme(ctx context.Context) (map[primitive.ObjectID]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"theme_id": bson.M{"$exists": true}}}},
		{{Key: "$group", Value: bson.M{"_id": "$theme_id", "count": bson.M{"$sum": 1}}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	counts := map[primitive.ObjectID]int64{}
	for cur.Next(ctx) {
		var row struct {
			ID    primitive.ObjectID `bson:"_id"`
			Count int64              `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.ID] = row.Count
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// LastCapturedAt returns the captured_at of the most recently captured item,
// or nil when the collection is empty.
func (r *ItemRepository) LastCapturedAt(ctx context.Context) (*time.Time, error) {
	findOpts := options.FindOne().
		SetSort(bson.D{{Key: "captured_at", Value: -1}}).
		SetProjection(bson.M{"captured_at": 1})
	var row struct {
		CapturedAt time.Time `bson:"captured_at"`
	}
	if err := r.col.FindOne(ctx, bson.M{}, findOpts).Decode(&row); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &row.CapturedAt, nil
}

// AllTagSets scans the full tag corpus in capture order (oldest first) for
// stats aggregation. Each element is one item's deduplicated tag set.
func (r *ItemRepository) AllTagSets(ctx context.Context) ([][]string, error) {
	findOpts := options.Find().
		SetProjection(bson.M{"tags": 1}).
		SetSort(bson.D{
			{Key: "captured_at", Value: 1},
			{Key: "_id", Value: 1},
		})
	cur, err := r.col.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var sets [][]string
	for cur.Next(ctx) {
		var row struct {
			Tags []string `bson:"tags"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		sets = append(sets, row.Tags)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return sets, nil
}
