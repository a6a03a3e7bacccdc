package tea

import (
	"context"
	"database/sql"
	"time"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

// PostgresStore backs the collection with a teas table. BIGSERIAL keeps
// the same ID contract as MemStore: monotonic, never reused.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS teas (
				id    BIGSERIAL PRIMARY KEY,
				name  TEXT NOT NULL DEFAULT '',
				price DOUBLE PRECISION NOT NULL DEFAULT 0
			)
		`)
		return err
	})
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) Create(ctx context.Context, name string, price float64) (Tea, error) {
	t := Tea{Name: name, Price: price}

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			INSERT INTO teas (name, price)
			VALUES ($1, $2)
			RETURNING id
		`, name, price).Scan(&t.ID)
	})
	if err != nil {
		return Tea{}, err
	}
	return t, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Tea, error) {
	var out []Tea

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, name, price
			FROM teas
			ORDER BY id ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Tea, 0, 16)
		for rows.Next() {
			var t Tea
			if err := rows.Scan(&t.ID, &t.Name, &t.Price); err != nil {
				return err
			}
			out = append(out, t)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (Tea, bool, error) {
	var t Tea

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			SELECT id, name, price
			FROM teas
			WHERE id = $1
		`, id).Scan(&t.ID, &t.Name, &t.Price)
	})

	if err == sql.ErrNoRows {
		return Tea{}, false, nil
	}
	if err != nil {
		return Tea{}, false, err
	}
	return t, true, nil
}

func (s *PostgresStore) Update(ctx context.Context, id int64, name string, price float64) (Tea, bool, error) {
	var t Tea

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			UPDATE teas
			SET name = $2, price = $3
			WHERE id = $1
			RETURNING id, name, price
		`, id, name, price).Scan(&t.ID, &t.Name, &t.Price)
	})

	if err == sql.ErrNoRows {
		return Tea{}, false, nil
	}
	if err != nil {
		return Tea{}, false, err
	}
	return t, true, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) (bool, error) {
	var n int64

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		res, err := s.db.ExecContext(ctx, `DELETE FROM teas WHERE id = $1`, id)
		if err != nil {
			return err
		}
		n, err = res.RowsAffected()
		return err
	})

	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
