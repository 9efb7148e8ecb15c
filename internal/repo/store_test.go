package repo

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID  string
	Val int
}

func newItemStore() *Store[item] {
	return NewStore(func(i item) string { return i.ID })
}

func TestStoreReplaceLeavesStateOnError(t *testing.T) {
	s := newItemStore()
	require.NoError(t, s.Add(item{ID: "a", Val: 1}))

	_, err := s.Replace("a", func(cur item) (item, error) {
		cur.Val = 99
		return cur, errors.New("rejected")
	})
	require.Error(t, err)
	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, got.Val)

	_, err = s.Replace("missing", func(cur item) (item, error) { return cur, nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreSnapshotsAreCopies(t *testing.T) {
	s := newItemStore()
	require.NoError(t, s.Add(item{ID: "a", Val: 1}))
	snap := s.All()
	snap[0].Val = 42
	got, _ := s.Get("a")
	assert.Equal(t, 1, got.Val)
}

func TestStoreAddRejectsDuplicate(t *testing.T) {
	s := newItemStore()
	require.NoError(t, s.Add(item{ID: "a"}))
	assert.ErrorIs(t, s.Add(item{ID: "a"}), errDuplicateID)
}

func TestStoreDeleteKeepsOrder(t *testing.T) {
	s := newItemStore()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Add(item{ID: id}))
	}
	assert.True(t, s.Delete("b"))
	assert.False(t, s.Delete("b"))
	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "c", all[1].ID)
}

func TestStoreConcurrentWriters(t *testing.T) {
	s := newItemStore()
	require.NoError(t, s.Add(item{ID: "counter"}))
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Add(item{ID: fmt.Sprintf("item-%d", i)})
			_, _ = s.Replace("counter", func(cur item) (item, error) {
				cur.Val++
				return cur, nil
			})
			_ = s.All()
		}(i)
	}
	wg.Wait()
	got, _ := s.Get("counter")
	assert.Equal(t, 50, got.Val)
	assert.Equal(t, 51, s.Len())
}
