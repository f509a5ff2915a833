package enrichment_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"glana/eventbus"
	"glana/models"
	"glana/repositories"
)

// In-memory stores mirroring the repository contracts, including the unique
// index semantics the Mongo layer provides.

type fakeItemStore struct {
	mu         sync.Mutex
	items      map[primitive.ObjectID]*models.Item
	byExternal map[string]primitive.ObjectID
}

func newFakeItemStore() *fakeItemStore {
	return &fakeItemStore{
		items:      map[primitive.ObjectID]*models.Item{},
		byExternal: map[string]primitive.ObjectID{},
	}
}

func (s *fakeItemStore) CreateIfAbsent(_ context.Context, item *models.Item) (*models.Item, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.byExternal[item.ExternalID]; ok {
		cp := *s.items[id]
		return &cp, false, nil
	}
	item.ID = primitive.NewObjectID()
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.CapturedAt.IsZero() {
		item.CapturedAt = now
	}
	cp := *item
	s.items[item.ID] = &cp
	s.byExternal[item.ExternalID] = item.ID
	return item, true, nil
}

func (s *fakeItemStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (s *fakeItemStore) UpdateFields(_ context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return repositories.ErrNotFound
	}
	for k, v := range updates {
		switch k {
		case "theme_id":
			if v == nil {
				it.ThemeID = nil
			} else if p, ok := v.(*primitive.ObjectID); ok {
				it.ThemeID = p
			}
		case "tags":
			it.Tags = v.([]string)
		case "ai_analysis":
			a := v.(models.AIAnalysis)
			it.AIAnalysis = &a
		case "is_classified":
			it.IsClassified = v.(bool)
		case "is_favorite":
			it.IsFavorite = v.(bool)
		}
	}
	it.UpdatedAt = time.Now()
	return nil
}

func (s *fakeItemStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

type fakeThemeStore struct {
	mu     sync.Mutex
	themes []models.Theme
}

func (s *fakeThemeStore) Insert(_ context.Context, t *models.Theme) (*models.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.themes {
		if strings.EqualFold(existing.Name, t.Name) {
			return nil, repositories.ErrDuplicate
		}
	}
	t.ID = primitive.NewObjectID()
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Color == "" {
		t.Color = models.DefaultThemeColor
	}
	s.themes = append(s.themes, *t)
	return t, nil
}

func (s *fakeThemeStore) FindByName(_ context.Context, name string) (*models.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.themes {
		if strings.EqualFold(t.Name, name) {
			cp := t
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *fakeThemeStore) List(_ context.Context) ([]models.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Theme, len(s.themes))
	copy(out, s.themes)
	return out, nil
}

func (s *fakeThemeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.themes)
}

type fakeAILogStore struct {
	mu   sync.Mutex
	rows []models.AILog
}

func (s *fakeAILogStore) Insert(_ context.Context, log models.AILog) (*mongo.InsertOneResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, log)
	return &mongo.InsertOneResult{}, nil
}

// fakeBus records published events without delivering them; tests drive the
// handler directly.
type fakeBus struct {
	mu        sync.Mutex
	published []eventbus.Event
}

func (b *fakeBus) Publish(_ context.Context, _ string, event eventbus.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, event)
	return nil
}

func (b *fakeBus) Subscribe(ctx context.Context, _ string, _ eventbus.Topic, _ eventbus.EventHandler) error {
	<-ctx.Done()
	return ctx.Err()
}

func (b *fakeBus) Close() {}

func (b *fakeBus) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.published)
}
