package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"glana/internal/logger"
	"glana/models"
)

// ThemeStore는 ThemeService가 필요로 하는 저장소 연산의 부분집합이다.
type ThemeStore interface {
	Insert(ctx context.Context, t *models.Theme) (*models.Theme, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Theme, error)
	List(ctx context.Context) ([]models.Theme, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ThemeItemStore는 테마 삭제와 카운트 집계에 필요한 아이템 저장소 연산이다.
type ThemeItemStore interface {
	UnsetTheme(ctx context.Context, themeID primitive.ObjectID) (int64, error)
	CountByTheme(ctx context.Context) (map[primitive.ObjectID]int64, error)
}

// ThemeService encapsulates business logic for themes.
type ThemeService struct {
	themes ThemeStore
	items  ThemeItemStore
}

func NewThemeService(themes ThemeStore, items ThemeItemStore) *ThemeService {
	return &ThemeService{themes: themes, items: items}
}

// ThemeWithCount pairs a theme with the number of items assigned to it.
type ThemeWithCount struct {
	Theme models.Theme
	Count int64
}

// ListWithCounts returns all themes (sorted by name) with their item counts,
// including themes with zero items.
func (s *ThemeService) ListWithCounts(ctx context.Context) ([]ThemeWithCount, error) {
	themes, err := s.themes.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.items.CountByTheme(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ThemeWithCount, 0, len(themes))
	for _, t := range themes {
		out = append(out, ThemeWithCount{Theme: t, Count: counts[t.ID]})
	}
	return out, nil
}

type CreateThemeInput struct {
	Name          string
	Description   string
	Color         string
	SuggestedTags []string
}

// Create inserts a new theme. Duplicate names (case-insensitive) surface as
// repositories.ErrDuplicate, which the handler maps to 409.
func (s *ThemeService) Create(ctx context.Context, in CreateThemeInput) (*models.Theme, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	return s.themes.Insert(ctx, &models.Theme{
		Name:          in.Name,
		Description:   in.Description,
		Color:         in.Color,
		SuggestedTags: dedupTags(in.SuggestedTags),
	})
}

type UpdateThemeInput struct {
	Name          *string
	Description   *string
	Color         *string
	SuggestedTags *[]string
}

// Update applies a partial update to a theme.
func (s *ThemeService) Update(ctx context.Context, hexID string, in UpdateThemeInput) (*models.Theme, error) {
	id, err := parseObjectID(hexID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Color != nil {
		updates["color"] = *in.Color
	}
	if in.SuggestedTags != nil {
		updates["suggested_tags"] = dedupTags(*in.SuggestedTags)
	}
	if len(updates) > 0 {
		if err := s.themes.UpdateFields(ctx, id, updates); err != nil {
			return nil, err
		}
	}
	return s.themes.FindByID(ctx, id)
}

// Delete removes a theme. Items referencing it are detached first, so a
// failure past that point can never leave an item pointing at a missing
// theme row.
func (s *ThemeService) Delete(ctx context.Context, hexID string) error {
	id, err := parseObjectID(hexID)
	if err != nil {
		return err
	}
	if _, err := s.themes.FindByID(ctx, id); err != nil {
		return err
	}

	detached, err := s.items.UnsetTheme(ctx, id)
	if err != nil {
		return err
	}
	if detached > 0 {
		logger.InfoWithFields("detached items from deleted theme", logger.Fields{
			"theme_id": id.Hex(),
			"count":    detached,
		})
	}
	return s.themes.Delete(ctx, id)
}
