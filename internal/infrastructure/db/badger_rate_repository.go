package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/gfranzini/expense-rate-service/internal/apperrors"
	"github.com/gfranzini/expense-rate-service/internal/domain/entity"
	"github.com/gfranzini/expense-rate-service/internal/infrastructure/cache"
)

const ratePrefix = "rate:"

// BadgerRateRepository implements the rate repository interface using
// BadgerDB. Date keys are stored as rate:YYYY-MM-DD, so lexical key order
// matches chronological order and the latest table is the last key of the
// prefix. A memo cache fronts reads: stored tables are immutable, so cached
// entries can never go stale.
type BadgerRateRepository struct {
	db    *badger.DB
	cache *cache.RateTableCache
}

// NewBadgerRateRepository creates a new BadgerDB rate repository
func NewBadgerRateRepository(db *badger.DB) *BadgerRateRepository {
	return &BadgerRateRepository{
		db:    db,
		cache: cache.NewRateTableCache(),
	}
}

func rateKey(date time.Time) []byte {
	return []byte(ratePrefix + date.Format(entity.DateLayout))
}

// FindByDate retrieves the rate table stored for an exact date.
func (r *BadgerRateRepository) FindByDate(ctx context.Context, date time.Time) (*entity.RateTable, error) {
	day := entity.DateOnly(date)
	dateKey := day.Format(entity.DateLayout)

	if table := r.cache.Get(dateKey); table != nil {
		return table, nil
	}

	var table entity.RateTable
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(rateKey(day))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &table)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: no rate table for %s", apperrors.ErrNotFound, dateKey)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve rate table for %s: %w", dateKey, err)
	}

	r.cache.Put(&table)
	return &table, nil
}

// FindLatest retrieves the rate table with the maximum stored date.
func (r *BadgerRateRepository) FindLatest(ctx context.Context) (*entity.RateTable, error) {
	var table entity.RateTable
	found := false

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(ratePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		// Seek past the last possible date key, then step back into the
		// prefix.
		it.Seek([]byte(ratePrefix + "\xff"))
		if !it.Valid() {
			return nil
		}

		found = true
		return it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &table)
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to retrieve latest rate table: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: rate store is empty", apperrors.ErrNotFound)
	}

	return &table, nil
}

// Insert stores a new rate table, insert-if-absent. Two resolvers racing on
// the same missing date serialize through Badger's transaction conflict
// detection: the loser re-runs, observes the winner's key, and receives the
// stored table with ErrDuplicateDate.
func (r *BadgerRateRepository) Insert(ctx context.Context, table *entity.RateTable) (*entity.RateTable, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	stored := &entity.RateTable{
		Date:        entity.DateOnly(table.Date),
		RetrievedAt: table.RetrievedAt,
		Rates:       table.Rates,
	}
	key := rateKey(stored.Date)

	data, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rate table: %w", err)
	}

	for {
		var existing *entity.RateTable

		err := r.db.Update(func(txn *badger.Txn) error {
			item, err := txn.Get(key)
			if err == nil {
				var found entity.RateTable
				if valErr := item.Value(func(val []byte) error {
					return json.Unmarshal(val, &found)
				}); valErr != nil {
					return valErr
				}
				existing = &found
				return nil
			}
			if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
			return txn.Set(key, data)
		})

		if errors.Is(err, badger.ErrConflict) {
			// A concurrent insert touched the same key; re-run to read
			// whichever table won.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to store rate table for %s: %w", stored.DateKey(), err)
		}

		if existing != nil {
			r.cache.Put(existing)
			return existing, fmt.Errorf("%w: %s", apperrors.ErrDuplicateDate, stored.DateKey())
		}

		r.cache.Put(stored)
		return stored, nil
	}
}
