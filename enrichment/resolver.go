package enrichment

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"glana/models"
	"glana/repositories"
)

// ThemeResolver maps a free-text theme name proposed by the classifier to a
// concrete theme id, creating the theme when it does not exist yet.
//
// Concurrent classification tasks may each propose the same new name (in
// varying case). The unique case-insensitive index on themes.name makes the
// create optimistic: insert, and when another task won the race, re-query by
// name and use the winner's id. At most one theme row ever exists per
// distinct case-insensitive name; no in-process lock is involved.
type ThemeResolver struct {
	themes ThemeStore
}

func NewThemeResolver(themes ThemeStore) *ThemeResolver {
	return &ThemeResolver{themes: themes}
}

// Resolve returns the id of the theme matching name (case-insensitively),
// creating it with an auto-generated description when absent.
func (r *ThemeResolver) Resolve(ctx context.Context, name, summary string) (primitive.ObjectID, error) {
	if name == "" {
		return primitive.NilObjectID, fmt.Errorf("theme name is empty")
	}

	existing, err := r.themes.FindByName(ctx, name)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return primitive.NilObjectID, err
	}

	created, err := r.themes.Insert(ctx, &models.Theme{
		Name:        name,
		Description: autoDescription(summary),
	})
	if err == nil {
		return created.ID, nil
	}
	if !errors.Is(err, repositories.ErrDuplicate) {
		return primitive.NilObjectID, err
	}

	// Lost the creation race: another task inserted the name first.
	winner, ferr := r.themes.FindByName(ctx, name)
	if ferr != nil {
		return primitive.NilObjectID, fmt.Errorf("refetch after name conflict: %w", ferr)
	}
	return winner.ID, nil
}

func autoDescription(summary string) string {
	if summary == "" {
		return "Auto-created from classification"
	}
	return "Auto-created from classification: " + summary
}
