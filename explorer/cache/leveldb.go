package cache

import (
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// LevelStore keeps entries in a LevelDB directory so the validator directory
// survives restarts
type LevelStore struct {
	db   *leveldb.DB
	path string
}

func NewLevelStore(path string) (*LevelStore, error) {
	if path == "" {
		return nil, errors.New("leveldb cache needs a path")
	}
	db, err := leveldb.OpenFile(path, &opt.Options{})
	if err != nil {
		return nil, fmt.Errorf("opening leveldb: %w", err)
	}
	return &LevelStore{db: db, path: path}, nil
}

func (s *LevelStore) Get(key string) ([]byte, bool, error) {
	data, err := s.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, false, nil
	}
	if errors.Is(err, leveldb.ErrClosed) {
		return nil, false, ErrClosed
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, true, nil
}

func (s *LevelStore) Put(key string, value []byte) error {
	if err := s.db.Put([]byte(key), value, &opt.WriteOptions{Sync: true}); err != nil {
		if errors.Is(err, leveldb.ErrClosed) {
			return ErrClosed
		}
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func (s *LevelStore) Close() error {
	return s.db.Close()
}
