package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"glana/capture"
	"glana/enrichment"
	"glana/models"
	"glana/repositories"
)

// 조회 파라미터 상한. 초과하는 값은 상한으로 잘라낸다.
const (
	defaultListLimit   = 20
	maxListLimit       = 100
	defaultSampleCount = 5
	maxSampleCount     = 20
)

var (
	// ErrValidation은 입력 값이 잘못된 경우를 나타낸다. 핸들러는 400으로 매핑한다.
	ErrValidation = errors.New("validation failed")
	// ErrUnprocessable은 콘텐츠를 추출할 수 없는 경우를 나타낸다. 핸들러는 422로 매핑한다.
	ErrUnprocessable = errors.New("content could not be extracted")
)

// ItemStore는 ItemService가 필요로 하는 저장소 연산의 부분집합이다.
type ItemStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Item, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, opt repositories.ListItemsOptions) ([]models.Item, int64, error)
	Sample(ctx context.Context, opt repositories.SampleItemsOptions) ([]models.Item, error)
}

// Enricher는 아이템 수집과 분류 스케줄링을 담당한다.
type Enricher interface {
	Ingest(ctx context.Context, in enrichment.IngestInput) (*models.Item, bool, error)
	ScheduleClassification(ctx context.Context, item *models.Item)
}

// PostFetcher는 URL에서 포스트 콘텐츠를 가져온다.
type PostFetcher interface {
	FromURL(ctx context.Context, postURL string) (capture.Post, error)
}

// ItemService encapsulates business logic for captured items.
type ItemService struct {
	items    ItemStore
	enricher Enricher
	fetcher  PostFetcher
}

func NewItemService(items ItemStore, enricher Enricher, fetcher PostFetcher) *ItemService {
	return &ItemService{items: items, enricher: enricher, fetcher: fetcher}
}

type CaptureInput struct {
	SourceURL         string
	ExternalID        string
	AuthorHandle      string
	AuthorDisplayName string
	Content           string
}

// Capture ingests a post. The external id is extracted from the status URL
// when not given explicitly. Returns created=false when the post already
// exists, with the pre-existing item.
func (s *ItemService) Capture(ctx context.Context, in CaptureInput) (*models.Item, bool, error) {
	if in.Content == "" {
		return nil, false, fmt.Errorf("%w: content is required", ErrValidation)
	}
	if in.AuthorHandle == "" {
		return nil, false, fmt.Errorf("%w: author_handle is required", ErrValidation)
	}
	externalID := in.ExternalID
	if externalID == "" {
		if in.SourceURL == "" {
			return nil, false, fmt.Errorf("%w: either external_id or source_url is required", ErrValidation)
		}
		id, err := capture.ExternalIDFromURL(in.SourceURL)
		if err != nil {
			return nil, false, fmt.Errorf("%w: source_url does not contain a post id", ErrValidation)
		}
		externalID = id
	}

	return s.enricher.Ingest(ctx, enrichment.IngestInput{
		ExternalID:        externalID,
		SourceURL:         in.SourceURL,
		AuthorHandle:      in.AuthorHandle,
		AuthorDisplayName: in.AuthorDisplayName,
		Content:           in.Content,
	})
}

// CaptureFromURL captures a post given only its URL, fetching the content
// from the syndication API (with a page-extraction fallback).
func (s *ItemService) CaptureFromURL(ctx context.Context, postURL string) (*models.Item, bool, error) {
	if postURL == "" {
		return nil, false, fmt.Errorf("%w: url is required", ErrValidation)
	}
	post, err := s.fetcher.FromURL(ctx, postURL)
	if err != nil {
		if errors.Is(err, capture.ErrInvalidPostURL) {
			return nil, false, fmt.Errorf("%w: url does not contain a post id", ErrValidation)
		}
		return nil, false, fmt.Errorf("%w: %v", ErrUnprocessable, err)
	}

	return s.enricher.Ingest(ctx, enrichment.IngestInput{
		ExternalID:        post.ExternalID,
		SourceURL:         post.SourceURL,
		AuthorHandle:      post.AuthorHandle,
		AuthorDisplayName: post.AuthorDisplayName,
		Content:           post.Content,
	})
}

// Get loads an item by its ObjectID hex.
func (s *ItemService) Get(ctx context.Context, hexID string) (*models.Item, error) {
	id, err := parseObjectID(hexID)
	if err != nil {
		return nil, err
	}
	return s.items.FindByID(ctx, id)
}

type UpdateItemInput struct {
	// nil은 변경 없음을 의미한다. ThemeID의 빈 문자열은 테마 해제를 의미한다.
	ThemeID         *string
	Tags            *[]string
	IsFavorite      *bool
	ForceReclassify bool
}

// Update applies a partial update. ForceReclassify resets the classification
// flag and re-schedules the item for classification.
func (s *ItemService) Update(ctx context.Context, hexID string, in UpdateItemInput) (*models.Item, error) {
	id, err := parseObjectID(hexID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.ThemeID != nil {
		if *in.ThemeID == "" {
			updates["theme_id"] = nil
		} else {
			themeID, err := primitive.ObjectIDFromHex(*in.ThemeID)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid theme_id", ErrValidation)
			}
			updates["theme_id"] = themeID
		}
	}
	if in.Tags != nil {
		updates["tags"] = dedupTags(*in.Tags)
	}
	if in.IsFavorite != nil {
		updates["is_favorite"] = *in.IsFavorite
	}
	if in.ForceReclassify {
		updates["is_classified"] = false
	}
	if len(updates) == 0 {
		return s.items.FindByID(ctx, id)
	}

	if err := s.items.UpdateFields(ctx, id, updates); err != nil {
		return nil, err
	}
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.ForceReclassify {
		s.enricher.ScheduleClassification(ctx, item)
	}
	return item, nil
}

// Delete removes an item.
func (s *ItemService) Delete(ctx context.Context, hexID string) error {
	id, err := parseObjectID(hexID)
	if err != nil {
		return err
	}
	return s.items.Delete(ctx, id)
}

type ListItemsInput struct {
	ThemeID          string // hex; optional
	Tag              string // optional; post-query filter
	OnlyFavorites    bool
	OnlyUnclassified bool
	Search           string
	Limit            int
	Offset           int
}

type ListItemsResult struct {
	Items []models.Item
	// Total과 HasMore는 태그 필터 적용 이전의 값이다. 태그는 배열 필드라
	// 서비스 레이어에서 사후 필터링하며, 페이지네이션 메타데이터는
	// 기본 쿼리 기준으로 계산된다.
	Total   int64
	HasMore bool
}

// List returns items matching the filters, ordered by captured_at desc.
func (s *ItemService) List(ctx context.Context, in ListItemsInput) (ListItemsResult, error) {
	opt := repositories.ListItemsOptions{
		OnlyFavorites:    in.OnlyFavorites,
		OnlyUnclassified: in.OnlyUnclassified,
		Search:           in.Search,
		Limit:            in.Limit,
		Offset:           in.Offset,
	}
	if in.ThemeID != "" {
		themeID, err := primitive.ObjectIDFromHex(in.ThemeID)
		if err != nil {
			return ListItemsResult{}, fmt.Errorf("%w: invalid theme_id", ErrValidation)
		}
		opt.ThemeID = &themeID
	}
	if opt.Limit <= 0 {
		opt.Limit = defaultListLimit
	}
	if opt.Limit > maxListLimit {
		opt.Limit = maxListLimit
	}
	if opt.Offset < 0 {
		opt.Offset = 0
	}

	items, total, err := s.items.List(ctx, opt)
	if err != nil {
		return ListItemsResult{}, err
	}

	if tag := strings.TrimSpace(in.Tag); tag != "" {
		filtered := make([]models.Item, 0, len(items))
		for _, it := range items {
			for _, t := range it.Tags {
				if t == tag {
					filtered = append(filtered, it)
					break
				}
			}
		}
		items = filtered
	}

	return ListItemsResult{
		Items:   items,
		Total:   total,
		HasMore: int64(opt.Offset+opt.Limit) < total,
	}, nil
}

type SampleItemsInput struct {
	ThemeID    string   // hex; optional
	ExcludeIDs []string // hex ids; unparseable entries are ignored
	Count      int
}

// Sample returns up to Count random items, favorites ordered first.
// 두 단계로 추첨한다: 즐겨찾기 중에서 먼저 뽑고, 모자란 수만큼 나머지에서
// 채운다. 각 단계 내부의 순서는 무작위다. 매칭되는 아이템이 Count보다
// 적으면 있는 만큼만 반환한다.
func (s *ItemService) Sample(ctx context.Context, in SampleItemsInput) ([]models.Item, error) {
	count := in.Count
	if count <= 0 {
		count = defaultSampleCount
	}
	if count > maxSampleCount {
		count = maxSampleCount
	}

	opt := repositories.SampleItemsOptions{Count: count}
	if in.ThemeID != "" {
		themeID, err := primitive.ObjectIDFromHex(in.ThemeID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid theme_id", ErrValidation)
		}
		opt.ThemeID = &themeID
	}
	for _, hex := range in.ExcludeIDs {
		if id, err := primitive.ObjectIDFromHex(strings.TrimSpace(hex)); err == nil {
			opt.ExcludeIDs = append(opt.ExcludeIDs, id)
		}
	}

	favorites := true
	opt.Favorites = &favorites
	picked, err := s.items.Sample(ctx, opt)
	if err != nil {
		return nil, err
	}

	if remaining := count - len(picked); remaining > 0 {
		rest := opt
		notFavorite := false
		rest.Favorites = &notFavorite
		rest.Count = remaining
		others, err := s.items.Sample(ctx, rest)
		if err != nil {
			return nil, err
		}
		picked = append(picked, others...)
	}
	return picked, nil
}

func parseObjectID(hexID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid id", ErrValidation)
	}
	return id, nil
}

// dedupTags는 저장 전에 태그 중복을 제거한다. 수동 편집 태그는 대소문자를
// 보존한다. 정규화는 분류기 출력에만 적용된다.
func dedupTags(tags []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
