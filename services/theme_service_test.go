package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"glana/models"
	"glana/repositories"
	"glana/services"
)

func newThemeService() (*services.ThemeService, *fakeThemeStore, *fakeThemeItemStore, *[]string) {
	calls := &[]string{}
	themes := newFakeThemeStore(calls)
	items := &fakeThemeItemStore{counts: map[primitive.ObjectID]int64{}, calls: calls}
	return services.NewThemeService(themes, items), themes, items, calls
}

func TestCreateThemeAppliesDefaults(t *testing.T) {
	svc, _, _, _ := newThemeService()

	theme, err := svc.Create(context.Background(), services.CreateThemeInput{
		Name:          "Mindset",
		SuggestedTags: []string{"growth", "growth", "habits"},
	})
	require.NoError(t, err)

	assert.Equal(t, models.DefaultThemeColor, theme.Color)
	assert.Equal(t, []string{"growth", "habits"}, theme.SuggestedTags)
}

func TestCreateThemeRequiresName(t *testing.T) {
	svc, _, _, _ := newThemeService()
	_, err := svc.Create(context.Background(), services.CreateThemeInput{})
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestCreateThemeSurfacesDuplicate(t *testing.T) {
	svc, themes, _, _ := newThemeService()
	themes.insertErr = repositories.ErrDuplicate

	_, err := svc.Create(context.Background(), services.CreateThemeInput{Name: "Mindset"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)
}

func TestListWithCountsIncludesZeroCountThemes(t *testing.T) {
	svc, themes, items, _ := newThemeService()
	busy := themes.put(&models.Theme{Name: "Business"})
	themes.put(&models.Theme{Name: "Empty"})
	items.counts[busy.ID] = 7

	out, err := svc.ListWithCounts(context.Background())
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, int64(7), out[0].Count)
	assert.Equal(t, "Empty", out[1].Theme.Name)
	assert.Equal(t, int64(0), out[1].Count)
}

func TestDeleteThemeDetachesItemsFirst(t *testing.T) {
	svc, themes, items, calls := newThemeService()
	theme := themes.put(&models.Theme{Name: "Mindset"})
	items.counts[theme.ID] = 3

	require.NoError(t, svc.Delete(context.Background(), theme.ID.Hex()))

	// 아이템의 theme_id 해제가 테마 삭제보다 먼저 일어나야 한다.
	assert.Equal(t, []string{"unset_theme", "delete_theme"}, *calls)
	assert.Equal(t, []primitive.ObjectID{theme.ID}, items.detached)
	_, err := themes.FindByID(context.Background(), theme.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestDeleteUnknownTheme(t *testing.T) {
	svc, _, items, _ := newThemeService()

	err := svc.Delete(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Empty(t, items.detached)
}

func TestUpdateThemePartialFields(t *testing.T) {
	svc, themes, _, _ := newThemeService()
	theme := themes.put(&models.Theme{Name: "Mindset", Color: "#111111"})

	name := "Growth Mindset"
	updated, err := svc.Update(context.Background(), theme.ID.Hex(), services.UpdateThemeInput{
		Name: &name,
	})
	require.NoError(t, err)

	assert.Equal(t, "Growth Mindset", updated.Name)
	assert.Equal(t, "#111111", updated.Color)
}

func TestUpdateThemeRejectsEmptyName(t *testing.T) {
	svc, themes, _, _ := newThemeService()
	theme := themes.put(&models.Theme{Name: "Mindset"})

	empty := ""
	_, err := svc.Update(context.Background(), theme.ID.Hex(), services.UpdateThemeInput{Name: &empty})
	assert.ErrorIs(t, err, services.ErrValidation)
}
