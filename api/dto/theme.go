package dto

import "glana/models"

// CreateThemeRequest는 테마 생성 요청 바디다.
type CreateThemeRequest struct {
	Name          string   `json:"name" example:"Mindset"`
	Description   string   `json:"description,omitempty" example:"Growth and habits"`
	Color         string   `json:"color,omitempty" example:"#6366f1"`
	SuggestedTags []string `json:"suggested_tags,omitempty"`
}

// UpdateThemeRequest는 테마 부분 수정 요청 바디다. nil은 변경 없음을 의미한다.
type UpdateThemeRequest struct {
	Name          *string   `json:"name,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Color         *string   `json:"color,omitempty"`
	SuggestedTags *[]string `json:"suggested_tags,omitempty"`
}

// ThemeWithCountDTO는 테마와 소속 아이템 수를 함께 돌려준다.
type ThemeWithCountDTO struct {
	models.Theme
	ItemCount int64 `json:"item_count" example:"7"`
}

// ThemeListResponseDTO는 테마 목록 응답이다.
type ThemeListResponseDTO struct {
	Themes []ThemeWithCountDTO `json:"themes"`
}
