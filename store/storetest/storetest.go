// Package storetest holds the behavior every store.PageStore must share.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/frameshow/store"
)

// Run exercises a PageStore created fresh by open for each subtest.
func Run(t *testing.T, open func(t *testing.T) store.PageStore) {
	ctx := context.Background()

	t.Run("SaveLoad", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.Save(ctx, "intro", []byte(`{"num_frames":1}`)))

		data, err := s.Load(ctx, "intro")
		require.NoError(t, err)
		assert.JSONEq(t, `{"num_frames":1}`, string(data))
	})

	t.Run("SaveReplaces", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.Save(ctx, store.AutosaveName, []byte("a")))
		require.NoError(t, s.Save(ctx, store.AutosaveName, []byte("b")))

		data, err := s.Load(ctx, store.AutosaveName)
		require.NoError(t, err)
		assert.Equal(t, []byte("b"), data)

		names, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{store.AutosaveName}, names)
	})

	t.Run("LoadMissing", func(t *testing.T) {
		s := open(t)
		_, err := s.Load(ctx, "nope")
		assert.ErrorIs(t, err, store.ErrPageNotFound)
	})

	t.Run("ListSorted", func(t *testing.T) {
		s := open(t)
		names, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, names)

		for _, name := range []string{"b", "c", "a"} {
			require.NoError(t, s.Save(ctx, name, []byte(name)))
		}
		names, err = s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, names)
	})

	t.Run("Delete", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.Save(ctx, "gone", []byte("x")))
		require.NoError(t, s.Delete(ctx, "gone"))

		_, err := s.Load(ctx, "gone")
		assert.ErrorIs(t, err, store.ErrPageNotFound)
		assert.ErrorIs(t, s.Delete(ctx, "gone"), store.ErrPageNotFound)
	})

	t.Run("EmptyName", func(t *testing.T) {
		s := open(t)
		assert.Error(t, s.Save(ctx, "", []byte("x")))
	})
}
