package services

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"glana/models"
)

// StatsItemStore는 통계 집계에 필요한 아이템 저장소 연산이다.
type StatsItemStore interface {
	CountAll(ctx context.Context) (int64, error)
	CountUnclassified(ctx context.Context) (int64, error)
	CountByTheme(ctx context.Context) (map[primitive.ObjectID]int64, error)
	LastCapturedAt(ctx context.Context) (*time.Time, error)
	AllTagSets(ctx context.Context) ([][]string, error)
}

// StatsThemeStore는 통계 집계에 필요한 테마 저장소 연산이다.
type StatsThemeStore interface {
	List(ctx context.Context) ([]models.Theme, error)
}

// StatsService aggregates library-wide statistics.
type StatsService struct {
	items  StatsItemStore
	themes StatsThemeStore
}

func NewStatsService(items StatsItemStore, themes StatsThemeStore) *StatsService {
	return &StatsService{items: items, themes: themes}
}

type ThemeCount struct {
	ThemeID   primitive.ObjectID
	ThemeName string
	Count     int64
}

type TagCount struct {
	Tag   string
	Count int64
}

type Stats struct {
	TotalItems        int64
	TotalThemes       int64
	UnclassifiedCount int64
	PerThemeCounts    []ThemeCount
	TopTags           []TagCount
	LastCapturedAt    *time.Time
}

// Overview computes the full stats snapshot: totals, per-theme counts
// (zero-count themes included, descending by count), the ten most frequent
// tags, and the last capture time.
func (s *StatsService) Overview(ctx context.Context) (Stats, error) {
	totalItems, err := s.items.CountAll(ctx)
	if err != nil {
		return Stats{}, err
	}
	unclassified, err := s.items.CountUnclassified(ctx)
	if err != nil {
		return Stats{}, err
	}
	themes, err := s.themes.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	counts, err := s.items.CountByTheme(ctx)
	if err != nil {
		return Stats{}, err
	}
	lastCaptured, err := s.items.LastCapturedAt(ctx)
	if err != nil {
		return Stats{}, err
	}
	tagSets, err := s.items.AllTagSets(ctx)
	if err != nil {
		return Stats{}, err
	}

	perTheme := make([]ThemeCount, 0, len(themes))
	for _, t := range themes {
		perTheme = append(perTheme, ThemeCount{
			ThemeID:   t.ID,
			ThemeName: t.Name,
			Count:     counts[t.ID],
		})
	}
	// 동수일 때는 List가 돌려준 이름순을 유지한다.
	sort.SliceStable(perTheme, func(i, j int) bool {
		return perTheme[i].Count > perTheme[j].Count
	})

	return Stats{
		TotalItems:        totalItems,
		TotalThemes:       int64(len(themes)),
		UnclassifiedCount: unclassified,
		PerThemeCounts:    perTheme,
		TopTags:           topTags(tagSets, 10),
		LastCapturedAt:    lastCaptured,
	}, nil
}

// topTags counts tag frequency across all tag sets and returns the top n,
// ties broken by which tag entered the library first. The sets arrive in
// capture order, oldest first.
func topTags(tagSets [][]string, n int) []TagCount {
	counts := map[string]int64{}
	firstSeen := map[string]int{}
	order := 0
	for _, set := range tagSets {
		for _, tag := range set {
			if tag == "" {
				continue
			}
			if _, ok := counts[tag]; !ok {
				firstSeen[tag] = order
				order++
			}
			counts[tag]++
		}
	}

	out := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		out = append(out, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return firstSeen[out[i].Tag] < firstSeen[out[j].Tag]
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
