package resource

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/klauspost/compress/zstd"
)

// BadgerStore packs resources into a badger database, one key per path.
// Values are zstd-compressed when compression is enabled; a one byte
// header records which encoding a value uses so archives stay readable
// after the setting changes.
type BadgerStore struct {
	mu  sync.RWMutex
	db  *badger.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

const (
	rawValue  byte = 0
	zstdValue byte = 1
)

// BadgerOptions configures OpenBadgerStore. An empty Dir opens an
// in-memory database.
type BadgerOptions struct {
	Dir      string
	Compress bool
}

func OpenBadgerStore(opts BadgerOptions) (*BadgerStore, error) {
	bo := badger.DefaultOptions(opts.Dir).WithLogger(nil)
	if opts.Dir == "" {
		bo = bo.WithInMemory(true)
	}
	db, err := badger.Open(bo)
	if err != nil {
		return nil, fmt.Errorf("resource: open badger store: %w", err)
	}
	s := &BadgerStore{db: db}
	s.dec, err = zstd.NewReader(nil)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if opts.Compress {
		s.enc, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return s, nil
}

func (s *BadgerStore) Get(name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrClosed
	}
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(Clean(name)))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(value) == 0 {
		return nil, fmt.Errorf("resource: %s: empty value", name)
	}
	switch value[0] {
	case rawValue:
		return value[1:], nil
	case zstdValue:
		return s.dec.DecodeAll(value[1:], nil)
	default:
		return nil, fmt.Errorf("resource: %s: unknown value encoding %d", name, value[0])
	}
}

func (s *BadgerStore) Put(name string, data []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return ErrClosed
	}
	var value []byte
	if s.enc != nil {
		value = s.enc.EncodeAll(data, []byte{zstdValue})
	} else {
		value = append([]byte{rawValue}, data...)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(Clean(name)), value)
	})
}

func (s *BadgerStore) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrClosed
	}
	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			names = append(names, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	return names, err
}

func (s *BadgerStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	if s.enc != nil {
		_ = s.enc.Close()
	}
	s.dec.Close()
	err := s.db.Close()
	s.db = nil
	return err
}
