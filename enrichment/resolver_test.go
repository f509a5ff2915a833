package enrichment_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"glana/enrichment"
	"glana/models"
	"glana/repositories"
)

func TestResolveReturnsExistingThemeCaseInsensitive(t *testing.T) {
	store := &fakeThemeStore{}
	created, err := store.Insert(context.Background(), &models.Theme{Name: "Growth"})
	require.NoError(t, err)

	resolver := enrichment.NewThemeResolver(store)

	for _, name := range []string{"Growth", "growth", "GROWTH"} {
		id, err := resolver.Resolve(context.Background(), name, "summary")
		require.NoError(t, err)
		assert.Equal(t, created.ID, id)
	}
	assert.Equal(t, 1, store.count())
}

func TestResolveCreatesThemeWithAutoDescription(t *testing.T) {
	store := &fakeThemeStore{}
	resolver := enrichment.NewThemeResolver(store)

	id, err := resolver.Resolve(context.Background(), "Storytelling", "a strong narrative hook")
	require.NoError(t, err)
	assert.NotEqual(t, primitive.NilObjectID, id)

	created, err := store.FindByName(context.Background(), "storytelling")
	require.NoError(t, err)
	assert.Equal(t, "Storytelling", created.Name, "creation preserves the supplied case")
	assert.Equal(t, "Auto-created from classification: a strong narrative hook", created.Description)
}

func TestResolveRejectsEmptyName(t *testing.T) {
	resolver := enrichment.NewThemeResolver(&fakeThemeStore{})
	_, err := resolver.Resolve(context.Background(), "", "summary")
	assert.Error(t, err)
}

// The one true race: N concurrent classification results all proposing the
// same brand-new theme name in varying case must yield exactly one theme row,
// with every resolver call agreeing on its id.
func TestResolveConcurrentSameNameCreatesOneTheme(t *testing.T) {
	store := &fakeThemeStore{}
	resolver := enrichment.NewThemeResolver(store)

	names := []string{"Growth", "growth", "GROWTH", "gRoWtH", "Growth", "growth", "GROWTH", "growth"}
	ids := make([]primitive.ObjectID, len(names))
	errs := make([]error, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			ids[i], errs[i] = resolver.Resolve(context.Background(), name, "summary")
		}(i, name)
	}
	wg.Wait()

	for i := range names {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i], "all resolvers must agree on the winner")
	}
	assert.Equal(t, 1, store.count(), "exactly one theme row may be created")
}

// raceThemeStore simulates losing the creation race between the name lookup
// and the insert: the first FindByName misses, the insert conflicts, and the
// refetch sees the winner.
type raceThemeStore struct {
	fakeThemeStore
	winner     models.Theme
	findCalls  int
	insertHits int
}

func (s *raceThemeStore) FindByName(ctx context.Context, name string) (*models.Theme, error) {
	s.findCalls++
	if s.findCalls == 1 {
		return nil, repositories.ErrNotFound
	}
	cp := s.winner
	return &cp, nil
}

func (s *raceThemeStore) Insert(ctx context.Context, t *models.Theme) (*models.Theme, error) {
	s.insertHits++
	return nil, repositories.ErrDuplicate
}

func TestResolveRefetchesAfterLosingCreateRace(t *testing.T) {
	store := &raceThemeStore{
		winner: models.Theme{ID: primitive.NewObjectID(), Name: "Growth"},
	}
	resolver := enrichment.NewThemeResolver(store)

	id, err := resolver.Resolve(context.Background(), "growth", "summary")
	require.NoError(t, err)
	assert.Equal(t, store.winner.ID, id)
	assert.Equal(t, 1, store.insertHits)
	assert.Equal(t, 2, store.findCalls, "conflict must trigger a refetch by name")
}
