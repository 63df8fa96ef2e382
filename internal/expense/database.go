package expense

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const (
	expenseBucketName = "expenses"
	fixedBucketName   = "fixed_expenses"
)

// DB defines the append-only store over the two expense collections. There
// are deliberately no update or delete operations; records are immutable
// once written.
type DB interface {
	// SaveExpense appends a one-time expense
	SaveExpense(expense *Expense) error

	// ListExpenses returns all one-time expenses
	ListExpenses() ([]*Expense, error)

	// SaveFixedExpense appends a fixed monthly expense
	SaveFixedExpense(expense *FixedExpense) error

	// ListFixedExpenses returns all fixed monthly expenses
	ListFixedExpenses() ([]*FixedExpense, error)

	// Close closes the database connection
	Close() error
}

// BoltDB implements the DB interface using BoltDB
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB opens the database file and ensures both buckets exist.
func NewBoltDB(path string) (*BoltDB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(expenseBucketName)); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(fixedBucketName)); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltDB{db: db}, nil
}

// SaveExpense appends a one-time expense.
func (b *BoltDB) SaveExpense(expense *Expense) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(expenseBucketName))
		data, err := json.Marshal(expense)
		if err != nil {
			return fmt.Errorf("marshaling expense: %w", err)
		}
		return bucket.Put([]byte(expense.ID), data)
	})
}

// ListExpenses returns all one-time expenses.
func (b *BoltDB) ListExpenses() ([]*Expense, error) {
	expenses := make([]*Expense, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(expenseBucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var expense Expense
			if err := json.Unmarshal(v, &expense); err != nil {
				return fmt.Errorf("unmarshaling expense: %w", err)
			}
			expenses = append(expenses, &expense)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

// SaveFixedExpense appends a fixed monthly expense.
func (b *BoltDB) SaveFixedExpense(expense *FixedExpense) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(fixedBucketName))
		data, err := json.Marshal(expense)
		if err != nil {
			return fmt.Errorf("marshaling fixed expense: %w", err)
		}
		return bucket.Put([]byte(expense.ID), data)
	})
}

// ListFixedExpenses returns all fixed monthly expenses.
func (b *BoltDB) ListFixedExpenses() ([]*FixedExpense, error) {
	expenses := make([]*FixedExpense, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(fixedBucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var expense FixedExpense
			if err := json.Unmarshal(v, &expense); err != nil {
				return fmt.Errorf("unmarshaling fixed expense: %w", err)
			}
			expenses = append(expenses, &expense)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

// Close closes the database connection.
func (b *BoltDB) Close() error {
	return b.db.Close()
}
