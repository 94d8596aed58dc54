package drinks

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when no drink exists with the requested id.
	ErrNotFound = errors.New("drink not found")

	// ErrDuplicateTitle is returned when a write collides with an existing
	// drink's title.
	ErrDuplicateTitle = errors.New("drink title already exists")
)

// Store is the persistence surface the handlers depend on.
type Store interface {
	List(ctx context.Context) ([]Drink, error)
	GetByID(ctx context.Context, id int64) (*Drink, error)
	Create(ctx context.Context, d *Drink) error
	Update(ctx context.Context, d *Drink) error
	Delete(ctx context.Context, id int64) error
}

const schema = `
CREATE TABLE IF NOT EXISTS drinks (
	id     INTEGER PRIMARY KEY AUTOINCREMENT,
	title  TEXT NOT NULL UNIQUE,
	recipe TEXT NOT NULL
);`

// SQLStore is the sqlite-backed drink store. Every write runs in its own
// transaction; anything other than a uniqueness conflict rolls back in full
// before the error is surfaced.
type SQLStore struct {
	db *sql.DB
}

// OpenStore opens (creating if necessary) the sqlite database at path and
// ensures the schema exists.
func OpenStore(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not ensure schema: %w", err)
	}

	return &SQLStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// List returns all drinks in store-default (insertion) order.
func (s *SQLStore) List(ctx context.Context) ([]Drink, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, recipe FROM drinks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drinks []Drink
	for rows.Next() {
		d, err := scanDrink(rows.Scan)
		if err != nil {
			return nil, err
		}
		drinks = append(drinks, *d)
	}

	return drinks, rows.Err()
}

// GetByID returns the drink with the given id or ErrNotFound.
func (s *SQLStore) GetByID(ctx context.Context, id int64) (*Drink, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, title, recipe FROM drinks WHERE id = ?`, id)

	d, err := scanDrink(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return d, nil
}

// Create inserts the drink and fills in its store-assigned id.
func (s *SQLStore) Create(ctx context.Context, d *Drink) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		recipe, err := json.Marshal(d.Recipe)
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO drinks (title, recipe) VALUES (?, ?)`, d.Title, string(recipe))
		if err != nil {
			return classifyWriteError(err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		d.ID = id

		return nil
	})
}

// Update rewrites the drink's title and recipe. ErrNotFound is returned when
// the id does not exist.
func (s *SQLStore) Update(ctx context.Context, d *Drink) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		recipe, err := json.Marshal(d.Recipe)
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE drinks SET title = ?, recipe = ? WHERE id = ?`, d.Title, string(recipe), d.ID)
		if err != nil {
			return classifyWriteError(err)
		}

		return requireRowsAffected(res)
	})
}

// Delete removes the drink with the given id or returns ErrNotFound.
func (s *SQLStore) Delete(ctx context.Context, id int64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM drinks WHERE id = ?`, id)
		if err != nil {
			return err
		}

		return requireRowsAffected(res)
	})
}

// inTx runs fn inside a transaction. The deferred rollback is a no-op after a
// successful commit.
func (s *SQLStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func classifyWriteError(err error) error {
	var serr sqlite3.Error
	if errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return ErrDuplicateTitle
	}
	return err
}

func requireRowsAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanDrink(scan func(dest ...any) error) (*Drink, error) {
	var d Drink
	var recipe string

	if err := scan(&d.ID, &d.Title, &recipe); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(recipe), &d.Recipe); err != nil {
		return nil, fmt.Errorf("could not decode stored recipe: %w", err)
	}

	return &d, nil
}
