package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"catalogo/internal/models"
)

// recordPtr ties a record type to the pointer that implements models.Record.
type recordPtr[T any] interface {
	*T
	models.Record
}

// GORMRepository is a GORM implementation of Repository for any record kind.
type GORMRepository[T any, PT recordPtr[T]] struct {
	db   *gorm.DB
	kind string
}

// NewGORMRepository creates a repository over the table of T. kind is used in error messages.
func NewGORMRepository[T any, PT recordPtr[T]](db *gorm.DB, kind string) *GORMRepository[T, PT] {
	return &GORMRepository[T, PT]{
		db:   db,
		kind: kind,
	}
}

// Find retrieves every record matching the filter.
func (r *GORMRepository[T, PT]) Find(ctx context.Context, filter Filter) ([]T, error) {
	records := make([]T, 0)
	if err := r.db.WithContext(ctx).Scopes(filter.scope).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s records: %w", r.kind, err)
	}
	return records, nil
}

// GetByID retrieves a single record by its ID.
func (r *GORMRepository[T, PT]) GetByID(ctx context.Context, id string) (*T, error) {
	var record T
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s with ID %s: %w", r.kind, id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s by ID %s: %w", r.kind, id, err)
	}
	return &record, nil
}

// FindOne retrieves the first record whose column equals value.
func (r *GORMRepository[T, PT]) FindOne(ctx context.Context, column string, value any) (*T, error) {
	var record T
	err := r.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s with %s %v: %w", r.kind, column, value, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find %s by %s: %w", r.kind, column, err)
	}
	return &record, nil
}

// Create inserts a new record, assigning an ID when none is set.
func (r *GORMRepository[T, PT]) Create(ctx context.Context, record *T) error {
	p := PT(record)
	if p.GetID() == "" {
		p.SetID(uuid.New().String())
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return r.writeError("create", err)
	}
	return nil
}

// Update writes every field of an existing record. Save is avoided because it
// inserts the row when it no longer exists.
func (r *GORMRepository[T, PT]) Update(ctx context.Context, record *T) error {
	res := r.db.WithContext(ctx).Model(record).Select("*").Omit("created_at").Updates(record)
	if res.Error != nil {
		return r.writeError("update", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s with ID %s: %w", r.kind, PT(record).GetID(), ErrNotFound)
	}
	return nil
}

// Delete removes a record by its ID and returns what was removed.
func (r *GORMRepository[T, PT]) Delete(ctx context.Context, id string) (*T, error) {
	var record T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&record, "id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&record)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s with ID %s: %w", r.kind, id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to delete %s: %w", r.kind, err)
	}
	return &record, nil
}

// Distinct returns the distinct values currently stored in column.
func (r *GORMRepository[T, PT]) Distinct(ctx context.Context, column string) ([]string, error) {
	values := make([]string, 0)
	if err := r.db.WithContext(ctx).Model(new(T)).Distinct(column).Pluck(column, &values).Error; err != nil {
		return nil, fmt.Errorf("failed to get distinct %s of %s: %w", column, r.kind, err)
	}
	return values, nil
}

// Ping checks that the underlying connection is alive.
func (r *GORMRepository[T, PT]) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *GORMRepository[T, PT]) writeError(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("failed to %s %s: %w", op, r.kind, ErrDuplicate)
	}
	return fmt.Errorf("failed to %s %s: %w", op, r.kind, err)
}

// likeEscape is the escape character used for LIKE patterns on every dialect.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

func (f Filter) scope(db *gorm.DB) *gorm.DB {
	if f.Search != "" && len(f.SearchIn) > 0 {
		pattern := "%" + likeReplacer.Replace(f.Search) + "%"
		exprs := make([]clause.Expression, 0, len(f.SearchIn))
		for _, column := range f.SearchIn {
			exprs = append(exprs, clause.Expr{
				SQL:  "? LIKE ? ESCAPE '" + likeEscape + "'",
				Vars: []any{clause.Column{Name: column}, pattern},
			})
		}
		if len(exprs) == 1 {
			db = db.Where(exprs[0])
		} else {
			db = db.Where(clause.Or(exprs...))
		}
	}
	for _, c := range f.Where {
		col := clause.Column{Name: c.Column}
		switch c.Op {
		case OpGte:
			db = db.Where(clause.Gte{Column: col, Value: c.Value})
		case OpLte:
			db = db.Where(clause.Lte{Column: col, Value: c.Value})
		default:
			db = db.Where(clause.Eq{Column: col, Value: c.Value})
		}
	}
	if f.OrderBy != "" {
		db = db.Order(f.OrderBy)
	}
	if f.Limit > 0 {
		db = db.Limit(f.Limit)
	}
	return db
}
