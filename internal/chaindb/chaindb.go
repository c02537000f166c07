// Package chaindb persists the block header tree and a few chain-state
// markers in a LevelDB key-value store.
package chaindb

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ccoveille/go-safecast"
	"github.com/libsv/go-p2p/chaincfg/chainhash"
	"github.com/syndtr/goleveldb/leveldb"
	ldberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var (
	ErrNotFound        = errors.New("key not found in chain db")
	ErrBadHeaderRecord = errors.New("malformed header record")
)

const (
	minCache   = 16 // MiB
	minHandles = 16
)

// Key layout. Header keys embed the big-endian height before the hash
// so that a plain key-order iteration yields parents before children.
var (
	bestBlockKey   = []byte("B")
	reindexFlagKey = []byte("R")
	headerPrefix   = []byte("h")
)

// Store is a thin wrapper around a LevelDB instance holding block
// headers and chain markers.
type Store struct {
	db     *leveldb.DB
	path   string
	logger *slog.Logger
}

// Open opens (or creates) the database at path. Cache is the total
// memory allowance in MiB split between block cache and write buffer.
func Open(logger *slog.Logger, path string, cache int, handles int) (*Store, error) {
	if cache < minCache {
		cache = minCache
	}
	if handles < minHandles {
		handles = minHandles
	}

	logger = logger.With(slog.String("module", "chaindb"), slog.String("path", path))

	db, err := leveldb.OpenFile(path, &opt.Options{
		OpenFilesCacheCapacity: handles,
		BlockCacheCapacity:     cache / 2 * opt.MiB,
		WriteBuffer:            cache / 4 * opt.MiB,
		Filter:                 filter.NewBloomFilter(10),
	})
	if _, corrupted := err.(*ldberrors.ErrCorrupted); corrupted {
		logger.Warn("Chain db corrupted, recovering")
		db, err = leveldb.RecoverFile(path, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open chain db: %w", err)
	}

	return &Store{db: db, path: path, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Path() string {
	return s.path
}

// Read returns the value stored at key.
func (s *Store) Read(key []byte) ([]byte, error) {
	value, err := s.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, ErrNotFound
	}

	return value, err
}

// Write stores value at key.
func (s *Store) Write(key, value []byte) error {
	return s.db.Put(key, value, nil)
}

func (s *Store) Has(key []byte) (bool, error) {
	return s.db.Has(key, nil)
}

func (s *Store) Delete(key []byte) error {
	return s.db.Delete(key, nil)
}

// BatchWrite applies all puts of the given batch atomically.
func (s *Store) BatchWrite(fn func(put func(key, value []byte))) error {
	batch := new(leveldb.Batch)
	fn(batch.Put)

	return s.db.Write(batch, nil)
}

// NewIterator iterates all keys sharing prefix, starting at start
// within that prefix. Callers must Release the iterator.
func (s *Store) NewIterator(prefix, start []byte) iterator {
	r := util.BytesPrefix(prefix)
	r.Start = append(r.Start, start...)

	return s.db.NewIterator(r, nil)
}

// CompactRange flattens the underlying store for the given key range.
// Nil boundaries cover the whole keyspace.
func (s *Store) CompactRange(start, limit []byte) error {
	return s.db.CompactRange(util.Range{Start: start, Limit: limit})
}

type iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Release()
	Error() error
}

// BestBlockHash returns the marker of the last fully connected block,
// or ErrNotFound when the db is fresh.
func (s *Store) BestBlockHash() (*chainhash.Hash, error) {
	value, err := s.Read(bestBlockKey)
	if err != nil {
		return nil, err
	}

	return chainhash.NewHash(value)
}

func (s *Store) SetBestBlockHash(hash *chainhash.Hash) error {
	return s.Write(bestBlockKey, hash[:])
}

// Reindexing reports whether a full reindex was in progress when the
// db was last written.
func (s *Store) Reindexing() (bool, error) {
	found, err := s.Has(reindexFlagKey)
	if err != nil {
		return false, err
	}

	return found, nil
}

func (s *Store) SetReindexing(active bool) error {
	if active {
		return s.Write(reindexFlagKey, []byte{1})
	}

	return s.Delete(reindexFlagKey)
}

func headerKey(height int32, hash *chainhash.Hash) ([]byte, error) {
	heightUint32, err := safecast.ToUint32(height)
	if err != nil {
		return nil, err
	}

	key := make([]byte, 0, len(headerPrefix)+4+chainhash.HashSize)
	key = append(key, headerPrefix...)
	key = binary.BigEndian.AppendUint32(key, heightUint32)
	key = append(key, hash[:]...)

	return key, nil
}

// WriteHeader stores one header record. The value is the parent hash,
// the height lives in the key.
func (s *Store) WriteHeader(hash, parent *chainhash.Hash, height int32) error {
	key, err := headerKey(height, hash)
	if err != nil {
		return err
	}

	return s.Write(key, parent[:])
}

// WriteHeaders stores a batch of header records atomically. The slices
// must have equal length.
func (s *Store) WriteHeaders(hashes, parents []*chainhash.Hash, heights []int32) error {
	if len(hashes) != len(parents) || len(hashes) != len(heights) {
		return errors.New("header batch slices must have equal length")
	}

	keys := make([][]byte, len(hashes))
	for i, hash := range hashes {
		key, err := headerKey(heights[i], hash)
		if err != nil {
			return err
		}
		keys[i] = key
	}

	return s.BatchWrite(func(put func(key, value []byte)) {
		for i := range hashes {
			put(keys[i], parents[i][:])
		}
	})
}

// LoadHeaders replays all stored header records in height order. The
// callback receives each header's hash, parent hash and height.
func (s *Store) LoadHeaders(fn func(hash, parent chainhash.Hash, height int32) error) error {
	it := s.NewIterator(headerPrefix, nil)
	defer it.Release()

	loaded := 0
	for it.Next() {
		key := it.Key()
		value := it.Value()
		if len(key) != len(headerPrefix)+4+chainhash.HashSize || len(value) != chainhash.HashSize {
			return ErrBadHeaderRecord
		}

		height := int32(binary.BigEndian.Uint32(key[len(headerPrefix):]))

		var hash, parent chainhash.Hash
		copy(hash[:], key[len(headerPrefix)+4:])
		copy(parent[:], value)

		if err := fn(hash, parent, height); err != nil {
			return err
		}
		loaded++
	}
	if err := it.Error(); err != nil {
		return fmt.Errorf("failed to iterate header records: %w", err)
	}

	s.logger.Info("Loaded header records", slog.Int("count", loaded))

	return nil
}
