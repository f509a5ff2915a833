package dto

import "glana/models"

// CaptureItemRequest는 포스트 수집 요청 바디다. external_id가 비어 있으면
// source_url에서 추출한다.
type CaptureItemRequest struct {
	SourceURL         string `json:"source_url" example:"https://x.com/naval/status/1002103360646823936"`
	ExternalID        string `json:"external_id,omitempty" example:"1002103360646823936"`
	AuthorHandle      string `json:"author_handle" example:"naval"`
	AuthorDisplayName string `json:"author_display_name,omitempty" example:"Naval"`
	Content           string `json:"content" example:"Seek wealth, not money or status."`
}

// CaptureFromURLRequest는 URL 단독 수집 요청 바디다.
type CaptureFromURLRequest struct {
	URL string `json:"url" example:"https://x.com/naval/status/1002103360646823936"`
}

// UpdateItemRequest는 아이템 부분 수정 요청 바디다. 포인터 필드의 nil은
// 변경 없음을 의미하며, theme_id의 빈 문자열은 테마 해제를 의미한다.
type UpdateItemRequest struct {
	ThemeID         *string   `json:"theme_id,omitempty"`
	Tags            *[]string `json:"tags,omitempty"`
	IsFavorite      *bool     `json:"is_favorite,omitempty"`
	ForceReclassify bool      `json:"force_reclassify,omitempty"`
}

// ItemResponseDTO는 단건 아이템 응답이다. 중복 수집인 경우 message에
// 기존 아이템임을 알린다.
type ItemResponseDTO struct {
	Item    models.Item `json:"item"`
	Message string      `json:"message,omitempty" example:"item already exists"`
}

// ItemListResponseDTO는 목록 응답이다. total/has_more는 태그 필터 적용 이전의
// 기본 쿼리 기준으로 계산된다.
type ItemListResponseDTO struct {
	Items   []models.Item `json:"items"`
	Total   int64         `json:"total" example:"25"`
	HasMore bool          `json:"has_more" example:"true"`
}

// SuggestionsResponseDTO는 샘플링 응답이다.
type SuggestionsResponseDTO struct {
	Items []models.Item `json:"items"`
}
