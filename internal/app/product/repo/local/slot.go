package local

import (
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

// Slot is a durable key-value slot. Get returns (nil, nil) for a missing key.
type Slot interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}

// LevelDBSlot keeps slots in a LevelDB database.
type LevelDBSlot struct {
	db *leveldb.DB
}

// OpenLevelDB opens (or creates) the database directory at path.
func OpenLevelDB(path string) (*LevelDBSlot, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("local: open leveldb %s: %w", path, err)
	}
	return &LevelDBSlot{db: db}, nil
}

// OpenMemLevelDB opens a LevelDB database kept in memory. Contents are lost on Close.
func OpenMemLevelDB() (*LevelDBSlot, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("local: open in-memory leveldb: %w", err)
	}
	return &LevelDBSlot{db: db}, nil
}

func (s *LevelDBSlot) Get(key string) ([]byte, error) {
	v, err := s.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Put overwrites the slot and syncs the write before returning.
func (s *LevelDBSlot) Put(key string, value []byte) error {
	return s.db.Put([]byte(key), value, &opt.WriteOptions{Sync: true})
}

func (s *LevelDBSlot) Close() error {
	return s.db.Close()
}
