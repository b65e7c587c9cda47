package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/mrjoshuak/savekit/types"
	"github.com/sirupsen/logrus"
)

// Badger implements Store on BadgerDB.
//
// Keys:
//
//	save:{userID}:{id}   JSON-encoded SaveRecord
//	id:{id}              userID, so records can be found by ID alone
//	tag:{id}:{tag}       empty value, one per association
type Badger struct {
	db  *badger.DB
	log logrus.FieldLogger
}

// OpenBadger opens or creates the database at path.
func OpenBadger(path string, logger logrus.FieldLogger) (*Badger, error) {
	return openBadger(badger.DefaultOptions(path), logger)
}

// OpenBadgerInMemory opens a database that is never written to disk.
func OpenBadgerInMemory(logger logrus.FieldLogger) (*Badger, error) {
	return openBadger(badger.DefaultOptions("").WithInMemory(true), logger)
}

func openBadger(opts badger.Options, logger logrus.FieldLogger) (*Badger, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	opts.Logger = &badgerLogger{logger.WithField("component", "badgerdb")}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db at %q: %w", opts.Dir, err)
	}
	logger.WithField("path", opts.Dir).Debug("BadgerDB opened")

	return &Badger{
		db:  db,
		log: logger.WithField("component", "store"),
	}, nil
}

// Close closes the database.
func (s *Badger) Close() error {
	if err := s.db.Close(); err != nil {
		s.log.WithError(err).Error("Error closing BadgerDB")
		return err
	}
	return nil
}

func recordKey(userID, id string) []byte {
	return []byte(fmt.Sprintf("save:%s:%s", userID, id))
}

func userPrefix(userID string) []byte {
	return []byte(fmt.Sprintf("save:%s:", userID))
}

func indexKey(id string) []byte {
	return []byte("id:" + id)
}

func tagKey(id, tag string) []byte {
	return []byte(fmt.Sprintf("tag:%s:%s", id, tag))
}

func tagPrefix(id string) []byte {
	return []byte(fmt.Sprintf("tag:%s:", id))
}

// Insert stores rec and returns its ID.
func (s *Badger) Insert(ctx context.Context, rec types.SaveRecord) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if rec.UserID == "" {
		return "", errors.New("record has no user_id")
	}
	if strings.Contains(rec.UserID, ":") {
		return "", fmt.Errorf("invalid user_id %q", rec.UserID)
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if strings.Contains(rec.ID, ":") {
		return "", fmt.Errorf("invalid id %q", rec.ID)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("failed to marshal record: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(recordKey(rec.UserID, rec.ID), data); err != nil {
			return err
		}
		return txn.Set(indexKey(rec.ID), []byte(rec.UserID))
	})
	if err != nil {
		return "", fmt.Errorf("failed to save record: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"id":        rec.ID,
		"user_id":   rec.UserID,
		"save_type": rec.SaveType,
	}).Debug("Record saved")
	return rec.ID, nil
}

// Get returns the record with the given ID, or ErrNotFound.
func (s *Badger) Get(ctx context.Context, id string) (types.SaveRecord, error) {
	var rec types.SaveRecord
	if err := ctx.Err(); err != nil {
		return rec, err
	}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(indexKey(id))
		if err != nil {
			return err
		}
		userID, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}

		item, err = txn.Get(recordKey(string(userID), id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return rec, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return rec, fmt.Errorf("failed to get record %s: %w", id, err)
	}
	return rec, nil
}

// ListByUser returns the user's records ordered by key.
func (s *Badger) ListByUser(ctx context.Context, userID string) ([]types.SaveRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var records []types.SaveRecord
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := userPrefix(userID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				var rec types.SaveRecord
				if err := json.Unmarshal(val, &rec); err != nil {
					return fmt.Errorf("failed to unmarshal record for key %s: %w", item.Key(), err)
				}
				records = append(records, rec)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list records for user %s: %w", userID, err)
	}
	return records, nil
}

// AddTags writes one join entry per tag. Blank tags are skipped.
func (s *Badger) AddTags(ctx context.Context, id string, tags []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(indexKey(id)); err != nil {
			return err
		}
		for _, tag := range tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			if err := txn.Set(tagKey(id, tag), nil); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to tag record %s: %w", id, err)
	}
	return nil
}

// TagsFor returns the record's tags, sorted.
func (s *Badger) TagsFor(ctx context.Context, id string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var tags []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := tagPrefix(id)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			tags = append(tags, strings.TrimPrefix(string(it.Item().Key()), string(prefix)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read tags for record %s: %w", id, err)
	}
	sort.Strings(tags)
	return tags, nil
}

// badgerLogger adapts logrus.FieldLogger to Badger's logger interface.
type badgerLogger struct {
	logger logrus.FieldLogger
}

func (l *badgerLogger) Errorf(f string, v ...interface{}) {
	l.logger.Errorf(f, v...)
}
func (l *badgerLogger) Warningf(f string, v ...interface{}) {
	l.logger.Warningf(f, v...)
}
func (l *badgerLogger) Infof(f string, v ...interface{}) {
	l.logger.Debugf(f, v...)
}
func (l *badgerLogger) Debugf(f string, v ...interface{}) {
	l.logger.Debugf(f, v...)
}
