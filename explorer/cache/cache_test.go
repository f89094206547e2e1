package cache

import (
	"path/filepath"
	"testing"

	"github.com/zeebo/assert"
)

type entry struct {
	Name string `json:"name"`
}

func testStore(t *testing.T, s Store) {
	_, ok, err := s.Get(ValidatorsKey)
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, SaveJSON(s, ValidatorsKey, []entry{{Name: "a"}, {Name: "b"}}))
	assert.NoError(t, SaveJSON(s, ValidatorsKey, []entry{{Name: "c"}}))

	var got []entry
	ok, err = LoadJSON(s, ValidatorsKey, &got)
	assert.NoError(t, err)
	assert.True(t, ok)
	// overwritten, not merged
	assert.DeepEqual(t, got, []entry{{Name: "c"}})

	assert.NoError(t, s.Put("broken", []byte("{")))
	_, err = LoadJSON(s, "broken", &got)
	assert.Error(t, err)

	assert.NoError(t, s.Close())
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	s := NewMemoryStore()
	value := []byte("abc")
	assert.NoError(t, s.Put("k", value))
	value[0] = 'x'

	got, ok, err := s.Get("k")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, string(got), "abc")

	assert.NoError(t, s.Close())
	_, _, err = s.Get("k")
	assert.Error(t, err)
}

func TestLevelStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	s, err := NewLevelStore(dir)
	assert.NoError(t, err)
	testStore(t, s)

	// the entry survives reopening
	s, err = NewLevelStore(dir)
	assert.NoError(t, err)
	defer s.Close()
	var got []entry
	ok, err := LoadJSON(s, ValidatorsKey, &got)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, len(got), 1)
}

func TestOpen(t *testing.T) {
	s, err := Open("memory", "")
	assert.NoError(t, err)
	_, ok := s.(*MemoryStore)
	assert.True(t, ok)

	_, err = Open("leveldb", "")
	assert.Error(t, err)

	_, err = Open("redis", "")
	assert.Error(t, err)
}
