package ostore

//spellchecker:words errors github syndtr goleveldb leveldb util
import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"

	"github.com/FAU-CDI/vobox/pkg/omap"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// LevelBackend stores records inside a single leveldb database.
//
// Records are keyed by the type, followed by a zero byte, followed by the encoded id.
type LevelBackend struct {
	Path string

	DB *leveldb.DB
}

var _ Backend = (*LevelBackend)(nil)

var errInvalidKey = errors.New("invalid record key")

// key returns the database key for the given object.
func (lb *LevelBackend) key(tp string, id omap.ID) ([]byte, error) {
	if tp == "" || bytes.IndexByte([]byte(tp), 0) >= 0 {
		return nil, errInvalidType
	}

	key := make([]byte, len(tp)+1+omap.IDLen)
	copy(key, tp)
	id.Encode(key[len(tp)+1:])
	return key, nil
}

// parseKey parses a key created by key.
func parseKey(key []byte) (tp string, id omap.ID, err error) {
	sep := bytes.IndexByte(key, 0)
	if sep <= 0 {
		return "", 0, errInvalidKey
	}
	if err := omap.UnmarshalID(&id, key[sep+1:]); err != nil {
		return "", 0, err
	}
	return string(key[:sep]), id, nil
}

// Open opens the database, creating it if it does not exist.
// If the database is already open, does nothing.
func (lb *LevelBackend) Open() error {
	if lb.DB != nil {
		return nil
	}

	db, err := leveldb.OpenFile(lb.Path, nil)
	if err != nil {
		return fmt.Errorf("failed to open database file: %w", err)
	}
	lb.DB = db
	return nil
}

// Close closes the database.
func (lb *LevelBackend) Close() error {
	var err error

	if lb.DB != nil {
		err = lb.DB.Close()
	}
	lb.DB = nil
	if err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

var errClosed = errors.New("database not open")

func (lb *LevelBackend) Write(tp string, id omap.ID, value []byte) error {
	if lb.DB == nil {
		return errClosed
	}
	key, err := lb.key(tp, id)
	if err != nil {
		return err
	}
	if err := lb.DB.Put(key, value, nil); err != nil {
		return fmt.Errorf("failed to put record: %w", err)
	}
	return nil
}

func (lb *LevelBackend) Read(tp string, id omap.ID) ([]byte, error) {
	if lb.DB == nil {
		return nil, errClosed
	}
	key, err := lb.key(tp, id)
	if err != nil {
		return nil, err
	}

	value, err := lb.DB.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, fs.ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return value, nil
}

// Remove deletes the record of the given object.
// Deleting a record that does not exist is not an error.
func (lb *LevelBackend) Remove(tp string, id omap.ID) error {
	if lb.DB == nil {
		return errClosed
	}
	key, err := lb.key(tp, id)
	if err != nil {
		return err
	}
	if err := lb.DB.Delete(key, nil); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

// Iterate calls f for all records in the database.
// Records are visited ordered by type, and then by id.
func (lb *LevelBackend) Iterate(f func(Record) error) error {
	if lb.DB == nil {
		return errClosed
	}

	it := lb.DB.NewIterator(&util.Range{}, nil)
	defer it.Release()

	for it.Next() {
		tp, id, err := parseKey(it.Key())
		if err != nil {
			return err
		}

		// the iterator re-uses the underlying value buffer
		value := bytes.Clone(it.Value())
		if err := f(Record{Type: tp, ID: id, Value: value}); err != nil {
			return err
		}
	}
	if err := it.Error(); err != nil {
		return fmt.Errorf("failed to iterate database: %w", err)
	}
	return nil
}
