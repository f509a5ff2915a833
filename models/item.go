package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item represents a captured post document
// Collection: items
type Item struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	CreatedAt         time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time           `bson:"updated_at" json:"updated_at"`
	ExternalID        string              `bson:"external_id" json:"external_id"`
	SourceURL         string              `bson:"source_url" json:"source_url"`
	AuthorHandle      string              `bson:"author_handle" json:"author_handle"`
	AuthorDisplayName string              `bson:"author_display_name,omitempty" json:"author_display_name,omitempty"`
	Content           string              `bson:"content" json:"content"`
	ThemeID           *primitive.ObjectID `bson:"theme_id,omitempty" json:"theme_id,omitempty"`
	Tags              []string            `bson:"tags" json:"tags"`
	AIAnalysis        *AIAnalysis         `bson:"ai_analysis,omitempty" json:"ai_analysis,omitempty"`
	IsClassified      bool                `bson:"is_classified" json:"is_classified"`
	IsFavorite        bool                `bson:"is_favorite" json:"is_favorite"`
	CapturedAt        time.Time           `bson:"captured_at" json:"captured_at"`
}

// AIAnalysis nested info in Item (denormalized classification snapshot).
// Retained after theme resolution for audit, so a classified item always
// carries the raw model suggestion alongside the resolved theme_id.
type AIAnalysis struct {
	SuggestedTheme string    `bson:"suggested_theme" json:"suggested_theme"`
	SuggestedTags  []string  `bson:"suggested_tags" json:"suggested_tags"`
	HookType       string    `bson:"hook_type,omitempty" json:"hook_type,omitempty"`
	Tone           string    `bson:"tone,omitempty" json:"tone,omitempty"`
	Summary        string    `bson:"summary" json:"summary"`
	ModelName      string    `bson:"model_name" json:"model_name"`
	GeneratedAt    time.Time `bson:"generated_at" json:"generated_at"`
}
