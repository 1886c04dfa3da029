package registry

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/savekeep/pkg/types"
)

func folders(entries []types.BackupEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Folder
	}
	return out
}

func TestSet_AppendKeepsFolderOrder(t *testing.T) {
	s := NewSet(nil)
	for _, name := range []string{"20240301-101010", "20231111-000000", "b", "a"} {
		s.Append(types.BackupEntry{Origin: types.OriginDefault, Folder: name})
	}

	got := folders(s.List())
	assert.True(t, sort.StringsAreSorted(got), "entries not sorted: %v", got)
	assert.Equal(t, []string{"20231111-000000", "20240301-101010", "a", "b"}, got)
}

func TestSet_AppendAllowsDuplicates(t *testing.T) {
	s := NewSet(nil)
	s.Append(types.BackupEntry{Origin: types.OriginDefault, Folder: "dup"})
	s.Append(types.BackupEntry{Origin: 0, Folder: "dup"})

	require.Equal(t, 2, s.Len())
	// Last inserted wins on lookup.
	idx := s.Find("dup")
	assert.Equal(t, 1, idx)
	assert.Equal(t, 0, s.List()[idx].Origin)
	assert.Equal(t, -1, s.Find("missing"))
}

func TestSet_RemoveAt(t *testing.T) {
	s := NewSet(nil)
	s.Replace([]types.BackupEntry{
		{Origin: types.OriginDefault, Folder: "c"},
		{Origin: types.OriginDefault, Folder: "a"},
		{Origin: 1, Folder: "b"},
	})

	e, err := s.RemoveAt(1)
	require.NoError(t, err)
	assert.Equal(t, types.BackupEntry{Origin: 1, Folder: "b"}, e)
	assert.Equal(t, []string{"a", "c"}, folders(s.List()))

	t.Run("out of range", func(t *testing.T) {
		_, err := s.RemoveAt(2)
		assert.ErrorIs(t, err, types.ErrInvalidIndex)
		_, err = s.RemoveAt(-1)
		assert.ErrorIs(t, err, types.ErrInvalidIndex)
		assert.Equal(t, 2, s.Len())
	})
}

func TestSet_ListIsSnapshot(t *testing.T) {
	s := NewSet(nil)
	s.Append(types.BackupEntry{Folder: "a"})

	list := s.List()
	list[0].Folder = "changed"
	assert.Equal(t, "a", s.List()[0].Folder)
}

func TestSet_SharedLock(t *testing.T) {
	var mu sync.Mutex
	s := NewSet(&mu)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Append(types.BackupEntry{Origin: types.OriginDefault, Folder: "x"})
		}()
		go func() {
			defer wg.Done()
			_ = s.List()
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, s.Len())

	for s.Len() > 0 {
		_, err := s.RemoveAt(0)
		require.NoError(t, err)
	}

	// The caller's lock is the set's lock.
	mu.Lock()
	done := make(chan struct{})
	go func() {
		s.Append(types.BackupEntry{Folder: "blocked"})
		close(done)
	}()
	select {
	case <-done:
		t.Fatal("Append did not wait for the shared lock")
	default:
	}
	mu.Unlock()
	<-done
	assert.Equal(t, 1, s.Len())
}
