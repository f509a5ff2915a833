package dto

import "time"

// ThemeCountDTO는 테마별 아이템 수다. 0건 테마도 포함된다.
type ThemeCountDTO struct {
	ThemeID   string `json:"theme_id"`
	ThemeName string `json:"theme_name" example:"Mindset"`
	Count     int64  `json:"count" example:"8"`
}

// TagCountDTO는 태그별 출현 횟수다.
type TagCountDTO struct {
	Tag   string `json:"tag" example:"ai"`
	Count int64  `json:"count" example:"12"`
}

// StatsResponseDTO는 라이브러리 전체 통계 응답이다.
type StatsResponseDTO struct {
	TotalItems        int64           `json:"total_items" example:"120"`
	TotalThemes       int64           `json:"total_themes" example:"9"`
	UnclassifiedCount int64           `json:"unclassified_count" example:"3"`
	ItemsPerTheme     []ThemeCountDTO `json:"items_per_theme"`
	TopTags           []TagCountDTO   `json:"top_tags"`
	LastCapturedAt    *time.Time      `json:"last_captured_at,omitempty"`
}
