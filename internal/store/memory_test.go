package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/jamo-archer/apps/go-server/internal/match"
)

func TestSaveGetDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	m := match.New(match.Options{Sentences: []string{"가"}})

	require.NoError(t, st.Save(ctx, m))
	assert.Equal(t, 1, st.Len())

	got, err := st.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Same(t, m, got)

	require.NoError(t, st.Delete(ctx, m.ID))
	_, err = st.Get(ctx, m.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, st.Len())

	assert.NoError(t, st.Delete(ctx, "nope"))
	assert.Error(t, st.Save(ctx, nil))
}

func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m := match.New(match.Options{})
			_ = st.Save(ctx, m)
			_, _ = st.Get(ctx, m.ID)
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, st.Len())
}
