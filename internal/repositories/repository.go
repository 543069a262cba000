package repositories

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no record matches the identifier or key.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when the store rejects a write on a unique constraint.
	ErrDuplicate = errors.New("record violates a unique constraint")
)

// Repository defines data access for one entity kind.
type Repository[T any] interface {
	Find(ctx context.Context, filter Filter) ([]T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	FindOne(ctx context.Context, column string, value any) (*T, error)
	Create(ctx context.Context, record *T) error
	Update(ctx context.Context, record *T) error
	Delete(ctx context.Context, id string) (*T, error)
	Distinct(ctx context.Context, column string) ([]string, error)
	Ping(ctx context.Context) error
}

// Operator is a comparison used in a Condition.
type Operator string

const (
	OpEq  Operator = "="
	OpGte Operator = ">="
	OpLte Operator = "<="
)

// Condition compares one column against a value.
type Condition struct {
	Column string
	Op     Operator
	Value  any
}

// Filter is a store-agnostic query predicate. All parts are combined with AND;
// Search matches when any of the SearchIn columns contains it.
type Filter struct {
	// Search is a case-folded literal substring.
	Search   string
	SearchIn []string
	Where    []Condition
	OrderBy  string
	Limit    int
}

// Eq appends an equality condition.
func (f *Filter) Eq(column string, value any) {
	f.Where = append(f.Where, Condition{Column: column, Op: OpEq, Value: value})
}
