package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"glana/models"
	"glana/services"
)

func TestStatsOverview(t *testing.T) {
	busy := models.Theme{ID: primitive.NewObjectID(), Name: "Business"}
	empty := models.Theme{ID: primitive.NewObjectID(), Name: "Empty"}
	captured := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	svc := services.NewStatsService(
		&fakeStatsItemStore{
			total:        12,
			unclassified: 4,
			counts:       map[primitive.ObjectID]int64{busy.ID: 8},
			lastCaptured: &captured,
			tagSets:      [][]string{{"ai", "growth"}, {"ai"}, {"growth"}},
		},
		&fakeStatsThemeStore{themes: []models.Theme{busy, empty}},
	)

	stats, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(12), stats.TotalItems)
	assert.Equal(t, int64(2), stats.TotalThemes)
	assert.Equal(t, int64(4), stats.UnclassifiedCount)
	require.NotNil(t, stats.LastCapturedAt)
	assert.Equal(t, captured, *stats.LastCapturedAt)

	// 0건 테마도 포함하고 건수 내림차순으로 정렬한다.
	require.Len(t, stats.PerThemeCounts, 2)
	assert.Equal(t, "Business", stats.PerThemeCounts[0].ThemeName)
	assert.Equal(t, int64(8), stats.PerThemeCounts[0].Count)
	assert.Equal(t, int64(0), stats.PerThemeCounts[1].Count)

	// 동수 태그는 먼저 등장한 쪽이 앞선다.
	require.Len(t, stats.TopTags, 2)
	assert.Equal(t, services.TagCount{Tag: "ai", Count: 2}, stats.TopTags[0])
	assert.Equal(t, services.TagCount{Tag: "growth", Count: 2}, stats.TopTags[1])
}

func TestStatsOverviewEmptyLibrary(t *testing.T) {
	svc := services.NewStatsService(&fakeStatsItemStore{}, &fakeStatsThemeStore{})

	stats, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.TotalItems)
	assert.Nil(t, stats.LastCapturedAt)
	assert.Empty(t, stats.TopTags)
	assert.Empty(t, stats.PerThemeCounts)
}

func TestStatsTopTagsLimitsToTen(t *testing.T) {
	sets := make([][]string, 0, 12)
	tags := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	// "a"가 12회로 최다, 이후 태그는 점차 감소
	for i, tag := range tags {
		for j := 0; j <= len(tags)-i; j++ {
			sets = append(sets, []string{tag})
		}
	}

	svc := services.NewStatsService(&fakeStatsItemStore{tagSets: sets}, &fakeStatsThemeStore{})
	stats, err := svc.Overview(context.Background())
	require.NoError(t, err)

	require.Len(t, stats.TopTags, 10)
	assert.Equal(t, "a", stats.TopTags[0].Tag)
	assert.NotContains(t, []string{stats.TopTags[9].Tag}, "l")
}