package wishlist

import (
	"context"
	"errors"
	"testing"

	"github.com/ryanm101/biblioteca/internal/catalog"
	"github.com/ryanm101/biblioteca/internal/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func game(id int, name string) catalog.GameSummary {
	return catalog.GameSummary{
		ID:        id,
		Slug:      name,
		Name:      name,
		Released:  "2020-09-17",
		Image:     "https://media.example/" + name + ".jpg",
		Score:     catalog.Score(88),
		Genres:    []string{"Indie"},
		Platforms: []string{"PC"},
	}
}

func TestToggle_AddThenRemove(t *testing.T) {
	ctx := context.Background()
	s := New(kv.NewMemory())
	g := game(1, "hades")

	saved, err := s.Toggle(ctx, g)
	require.NoError(t, err)
	assert.True(t, saved)
	assert.True(t, s.Has(ctx, 1))
	assert.Equal(t, 1, s.Count(ctx))

	saved, err = s.Toggle(ctx, g)
	require.NoError(t, err)
	assert.False(t, saved)
	assert.False(t, s.Has(ctx, 1))
	assert.Equal(t, 0, s.Count(ctx))
}

func TestToggle_Parity(t *testing.T) {
	ctx := context.Background()
	s := New(kv.NewMemory())
	_, err := s.Toggle(ctx, game(1, "celeste"))
	require.NoError(t, err)

	g := game(2, "hades")
	for n := 1; n <= 6; n++ {
		saved, err := s.Toggle(ctx, g)
		require.NoError(t, err)

		odd := n%2 == 1
		assert.Equal(t, odd, saved, "toggle #%d", n)
		assert.Equal(t, saved, s.Has(ctx, g.ID), "toggle #%d", n)
		if odd {
			assert.Equal(t, 2, s.Count(ctx))
		} else {
			assert.Equal(t, 1, s.Count(ctx))
		}
	}
	assert.True(t, s.Has(ctx, 1))
}

func TestGetAll_PreservesOrderAndFields(t *testing.T) {
	ctx := context.Background()
	s := New(kv.NewMemory())

	for _, g := range []catalog.GameSummary{game(3, "c"), game(1, "a"), game(2, "b")} {
		_, err := s.Toggle(ctx, g)
		require.NoError(t, err)
	}

	all := s.GetAll(ctx)
	require.Len(t, all, 3)
	assert.Equal(t, []int{3, 1, 2}, []int{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, game(3, "c"), all[0])
}

func TestGetAll_FieldsSurviveReopen(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	_, err := New(store).Toggle(ctx, game(7, "hades"))
	require.NoError(t, err)

	all := New(store).GetAll(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, "2020-09-17", all[0].Released)
	assert.Equal(t, "hades", all[0].Slug)
	assert.Equal(t, game(7, "hades"), all[0])
}

func TestGetAll_NoDuplicates(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	s := New(store)

	_, _ = s.Toggle(ctx, game(1, "a"))
	// Another handle on the same storage sees the same list
	other := New(store)
	saved, err := other.Toggle(ctx, game(1, "a"))
	require.NoError(t, err)
	assert.False(t, saved)
	assert.Empty(t, s.GetAll(ctx))
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	s := New(kv.NewMemory())
	_, _ = s.Toggle(ctx, game(1, "a"))

	removed, err := s.Remove(ctx, 1)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.Remove(ctx, 1)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestCorruptStorage_ReadsEmptyAndIsNotOverwritten(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	require.NoError(t, store.Set(ctx, StorageKey, []byte(`[{"id":1,`)))
	s := New(store)

	assert.Empty(t, s.GetAll(ctx))
	assert.Equal(t, 0, s.Count(ctx))
	assert.False(t, s.Has(ctx, 1))

	saved, err := s.Toggle(ctx, game(2, "b"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorrupt))
	assert.False(t, saved)

	raw, err := store.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1,`, string(raw))
}

func TestStorageFailure_NoNotification(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	s := New(store)
	_, _ = s.Toggle(ctx, game(1, "a"))

	notified := 0
	s.Subscribe(func(Change) { notified++ })

	store.FailSet = errors.New("disk full")
	saved, err := s.Toggle(ctx, game(1, "a"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, kv.ErrStorage))
	assert.True(t, saved, "membership is unchanged after a failed write")
	assert.Zero(t, notified)

	store.FailSet = nil
	assert.True(t, s.Has(ctx, 1))
}

func TestSubscribe_ReceivesChanges(t *testing.T) {
	ctx := context.Background()
	s := New(kv.NewMemory())

	var cardView, detailView []Change
	s.Subscribe(func(c Change) { cardView = append(cardView, c) })
	unsub := s.Subscribe(func(c Change) { detailView = append(detailView, c) })

	g := game(7, "outer-wilds")
	_, _ = s.Toggle(ctx, g)

	require.Len(t, cardView, 1)
	require.Len(t, detailView, 1)
	assert.Equal(t, Change{ID: 7, Saved: true, Game: g}, cardView[0])

	unsub()
	_, _ = s.Toggle(ctx, g)

	require.Len(t, cardView, 2)
	assert.Len(t, detailView, 1)
	assert.False(t, cardView[1].Saved)
	assert.Equal(t, "outer-wilds", cardView[1].Game.Name)
}

func TestSubscribe_ListenerMayReadStore(t *testing.T) {
	ctx := context.Background()
	s := New(kv.NewMemory())

	var seen bool
	s.Subscribe(func(c Change) { seen = s.Has(ctx, c.ID) })

	_, err := s.Toggle(ctx, game(4, "d"))
	require.NoError(t, err)
	assert.True(t, seen)
}
