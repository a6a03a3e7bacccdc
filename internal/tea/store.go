package tea

import "context"

// Tea is one record in the collection. IDs are assigned by the store,
// start at 1, grow monotonically, and are never reused after a delete.
type Tea struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Store owns the tea collection. Lookup operations report absence with
// the boolean result; the error channel is for infrastructure failures
// only and the in-memory implementation never uses it.
type Store interface {
	Create(ctx context.Context, name string, price float64) (Tea, error)
	List(ctx context.Context) ([]Tea, error)
	Get(ctx context.Context, id int64) (Tea, bool, error)
	Update(ctx context.Context, id int64, name string, price float64) (Tea, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Ping(ctx context.Context) error
}
