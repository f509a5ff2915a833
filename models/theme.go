package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultThemeColor is the display hint used when a theme is created without one.
const DefaultThemeColor = "#6366f1"

// Theme represents a user-meaningful category an item can belong to
// Collection: themes
// Name is unique under case-insensitive comparison (see db.ensureIndexes),
// case-preserved for display.
type Theme struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Color         string             `bson:"color" json:"color"`
	SuggestedTags []string           `bson:"suggested_tags" json:"suggested_tags"`
}
