package services_test

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"glana/capture"
	"glana/enrichment"
	"glana/models"
	"glana/repositories"
)

// fakeItemStore는 미리 준비한 응답을 돌려주고 호출 인자를 기록한다.
type fakeItemStore struct {
	itemsByID map[primitive.ObjectID]*models.Item

	listItems   []models.Item
	listTotal   int64
	lastListOpt repositories.ListItemsOptions

	samplePool []models.Item
	sampleOpts []repositories.SampleItemsOptions

	updates map[primitive.ObjectID]map[string]interface{}
	deleted []primitive.ObjectID
}

func newFakeItemStore() *fakeItemStore {
	return &fakeItemStore{
		itemsByID: map[primitive.ObjectID]*models.Item{},
		updates:   map[primitive.ObjectID]map[string]interface{}{},
	}
}

func (s *fakeItemStore) put(item *models.Item) *models.Item {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	s.itemsByID[item.ID] = item
	return item
}

func (s *fakeItemStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Item, error) {
	it, ok := s.itemsByID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (s *fakeItemStore) UpdateFields(_ context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	it, ok := s.itemsByID[id]
	if !ok {
		return repositories.ErrNotFound
	}
	s.updates[id] = updates
	for k, v := range updates {
		switch k {
		case "theme_id":
			if v == nil {
				it.ThemeID = nil
			} else {
				themeID := v.(primitive.ObjectID)
				it.ThemeID = &themeID
			}
		case "tags":
			it.Tags = v.([]string)
		case "is_favorite":
			it.IsFavorite = v.(bool)
		case "is_classified":
			it.IsClassified = v.(bool)
		}
	}
	it.UpdatedAt = time.Now()
	return nil
}

func (s *fakeItemStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := s.itemsByID[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.itemsByID, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *fakeItemStore) List(_ context.Context, opt repositories.ListItemsOptions) ([]models.Item, int64, error) {
	s.lastListOpt = opt
	return s.listItems, s.listTotal, nil
}

// Sample은 저장소 프리미티브처럼 풀에서 필터에 맞는 아이템을 Count개까지
// 골라낸다. 무작위 순서 대신 풀 순서를 그대로 쓴다.
func (s *fakeItemStore) Sample(_ context.Context, opt repositories.SampleItemsOptions) ([]models.Item, error) {
	s.sampleOpts = append(s.sampleOpts, opt)

	excluded := map[primitive.ObjectID]bool{}
	for _, id := range opt.ExcludeIDs {
		excluded[id] = true
	}

	var out []models.Item
	for _, it := range s.samplePool {
		if excluded[it.ID] {
			continue
		}
		if opt.Favorites != nil && it.IsFavorite != *opt.Favorites {
			continue
		}
		if opt.ThemeID != nil && (it.ThemeID == nil || *it.ThemeID != *opt.ThemeID) {
			continue
		}
		out = append(out, it)
		if len(out) == opt.Count {
			break
		}
	}
	return out, nil
}

// fakeEnricher는 수집/스케줄 호출을 기록한다.
type fakeEnricher struct {
	store     *fakeItemStore
	existing  map[string]*models.Item
	ingested  []enrichment.IngestInput
	scheduled []primitive.ObjectID
}

func newFakeEnricher(store *fakeItemStore) *fakeEnricher {
	return &fakeEnricher{store: store, existing: map[string]*models.Item{}}
}

func (e *fakeEnricher) Ingest(_ context.Context, in enrichment.IngestInput) (*models.Item, bool, error) {
	e.ingested = append(e.ingested, in)
	if it, ok := e.existing[in.ExternalID]; ok {
		return it, false, nil
	}
	it := e.store.put(&models.Item{
		ExternalID:        in.ExternalID,
		SourceURL:         in.SourceURL,
		AuthorHandle:      in.AuthorHandle,
		AuthorDisplayName: in.AuthorDisplayName,
		Content:           in.Content,
		Tags:              []string{},
		CapturedAt:        time.Now(),
	})
	e.existing[in.ExternalID] = it
	return it, true, nil
}

func (e *fakeEnricher) ScheduleClassification(_ context.Context, item *models.Item) {
	e.scheduled = append(e.scheduled, item.ID)
}

// fakeFetcher는 고정된 캡처 결과 또는 에러를 돌려준다.
type fakeFetcher struct {
	post capture.Post
	err  error
}

func (f *fakeFetcher) FromURL(_ context.Context, postURL string) (capture.Post, error) {
	if f.err != nil {
		return capture.Post{}, f.err
	}
	p := f.post
	p.SourceURL = postURL
	return p, nil
}

// fakeThemeStore는 테마 CRUD와 호출 순서를 기록한다.
type fakeThemeStore struct {
	themes    map[primitive.ObjectID]*models.Theme
	order     []models.Theme
	insertErr error
	calls     *[]string
}

func newFakeThemeStore(calls *[]string) *fakeThemeStore {
	return &fakeThemeStore{themes: map[primitive.ObjectID]*models.Theme{}, calls: calls}
}

func (s *fakeThemeStore) record(call string) {
	if s.calls != nil {
		*s.calls = append(*s.calls, call)
	}
}

func (s *fakeThemeStore) put(t *models.Theme) *models.Theme {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	s.themes[t.ID] = t
	s.order = append(s.order, *t)
	return t
}

func (s *fakeThemeStore) Insert(_ context.Context, t *models.Theme) (*models.Theme, error) {
	s.record("insert")
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	if t.Color == "" {
		t.Color = models.DefaultThemeColor
	}
	return s.put(t), nil
}

func (s *fakeThemeStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Theme, error) {
	t, ok := s.themes[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *fakeThemeStore) List(_ context.Context) ([]models.Theme, error) {
	out := make([]models.Theme, 0, len(s.order))
	for _, t := range s.order {
		if _, ok := s.themes[t.ID]; ok {
			out = append(out, *s.themes[t.ID])
		}
	}
	return out, nil
}

func (s *fakeThemeStore) UpdateFields(_ context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	t, ok := s.themes[id]
	if !ok {
		return repositories.ErrNotFound
	}
	for k, v := range updates {
		switch k {
		case "name":
			t.Name = v.(string)
		case "description":
			t.Description = v.(string)
		case "color":
			t.Color = v.(string)
		case "suggested_tags":
			t.SuggestedTags = v.([]string)
		}
	}
	return nil
}

func (s *fakeThemeStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.record("delete_theme")
	if _, ok := s.themes[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.themes, id)
	return nil
}

// fakeThemeItemStore는 테마 삭제 시의 아이템 연산을 기록한다.
type fakeThemeItemStore struct {
	counts   map[primitive.ObjectID]int64
	detached []primitive.ObjectID
	calls    *[]string
}

func (s *fakeThemeItemStore) UnsetTheme(_ context.Context, themeID primitive.ObjectID) (int64, error) {
	if s.calls != nil {
		*s.calls = append(*s.calls, "unset_theme")
	}
	s.detached = append(s.detached, themeID)
	n := s.counts[themeID]
	delete(s.counts, themeID)
	return n, nil
}

func (s *fakeThemeItemStore) CountByTheme(_ context.Context) (map[primitive.ObjectID]int64, error) {
	out := map[primitive.ObjectID]int64{}
	for k, v := range s.counts {
		out[k] = v
	}
	return out, nil
}

// fakeStatsItemStore는 통계용 미리 준비된 값을 돌려준다.
type fakeStatsItemStore struct {
	total        int64
	unclassified int64
	counts       map[primitive.ObjectID]int64
	lastCaptured *time.Time
	tagSets      [][]string
}

func (s *fakeStatsItemStore) CountAll(_ context.Context) (int64, error)          { return s.total, nil }
func (s *fakeStatsItemStore) CountUnclassified(_ context.Context) (int64, error) { return s.unclassified, nil }
func (s *fakeStatsItemStore) CountByTheme(_ context.Context) (map[primitive.ObjectID]int64, error) {
	return s.counts, nil
}
func (s *fakeStatsItemStore) LastCapturedAt(_ context.Context) (*time.Time, error) {
	return s.lastCaptured, nil
}
func (s *fakeStatsItemStore) AllTagSets(_ context.Context) ([][]string, error) {
	return s.tagSets, nil
}

type fakeStatsThemeStore struct {
	themes []models.Theme
}

func (s *fakeStatsThemeStore) List(_ context.Context) ([]models.Theme, error) {
	return s.themes, nil
}
