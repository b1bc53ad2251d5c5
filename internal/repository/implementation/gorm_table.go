package implementation

import (
	"context"
	"errors"
	"fmt"

	"chat-memory-be/internal/repository/contract"
	"chat-memory-be/internal/repository/specification"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// gormTable holds the create/save/find plumbing shared by every store. M is the
// gorm row type and E the entity it maps to.
type gormTable[M any, E any] struct {
	db       *gorm.DB
	toModel  func(*E) *M
	toEntity func(*M) *E
}

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (t *gormTable[M, E]) create(ctx context.Context, e *E) error {
	m := t.toModel(e)
	if err := t.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return translateError(err)
	}
	*e = *t.toEntity(m)
	return nil
}

func (t *gormTable[M, E]) save(ctx context.Context, e *E) error {
	m := t.toModel(e)
	if err := t.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error; err != nil {
		return translateError(err)
	}
	*e = *t.toEntity(m)
	return nil
}

func (t *gormTable[M, E]) delete(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var m M
	res := applySpecifications(t.db.WithContext(ctx), specs...).Delete(&m)
	if res.Error != nil {
		return 0, translateError(res.Error)
	}
	return res.RowsAffected, nil
}

func (t *gormTable[M, E]) findOne(ctx context.Context, specs ...specification.Specification) (*E, error) {
	var m M
	query := applySpecifications(t.db.WithContext(ctx).Model(&m), specs...)
	if err := query.Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return t.toEntity(&m), nil
}

// sequence binds filters and ordering without running anything. Rows are
// projected from tableName only, so filters may join parent tables.
func (t *gormTable[M, E]) sequence(tableName string, filters []specification.Specification, order func(*gorm.DB) *gorm.DB) contract.Sequence[E] {
	return &gormSequence[M, E]{table: t, tableName: tableName, filters: filters, order: order}
}

type gormSequence[M any, E any] struct {
	table     *gormTable[M, E]
	tableName string
	filters   []specification.Specification
	order     func(*gorm.DB) *gorm.DB
}

func (s *gormSequence[M, E]) base(ctx context.Context) *gorm.DB {
	var m M
	return applySpecifications(s.table.db.WithContext(ctx).Model(&m), s.filters...)
}

func (s *gormSequence[M, E]) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.base(ctx).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *gormSequence[M, E]) Page(ctx context.Context, offset, limit int) ([]*E, error) {
	return s.find(s.base(ctx).Scopes(s.order), specification.Pagination{Limit: limit, Offset: offset})
}

func (s *gormSequence[M, E]) All(ctx context.Context) ([]*E, error) {
	return s.find(s.base(ctx).Scopes(s.order))
}

func (s *gormSequence[M, E]) find(query *gorm.DB, specs ...specification.Specification) ([]*E, error) {
	var models []*M
	specs = append(specs, specification.SelectTable{Table: s.tableName})
	if err := applySpecifications(query, specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*E, len(models))
	for i, m := range models {
		entities[i] = s.table.toEntity(m)
	}
	return entities, nil
}

// translateError maps Postgres integrity violations onto the contract errors.
// gorm's TranslateError covers the common case; the pgconn check catches
// connections opened without it.
func translateError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", contract.ErrDuplicateKey, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", contract.ErrForeignKey, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", contract.ErrDuplicateKey, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", contract.ErrForeignKey, pgErr.ConstraintName)
		}
	}
	return err
}
