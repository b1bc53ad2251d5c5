package specification

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Column qualifies a column with its table when one is given. Joined queries
// must qualify every column they touch.
func Column(table, column string) string {
	if table == "" {
		return column
	}
	return table + "." + column
}

// ByID filters by ID
type ByID struct {
	Table string
	ID    uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(Column(s.Table, "id")+" = ?", s.ID)
}

// Pagination
type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Limit).Offset(s.Offset)
}

// FilterBy Generic Filter
type FilterBy struct {
	Field string
	Value interface{}
}

func (s FilterBy) Apply(db *gorm.DB) *gorm.DB {
	query := fmt.Sprintf("%s = ?", s.Field)
	return db.Where(query, s.Value)
}

func Filter(field string, value interface{}) Specification {
	return FilterBy{Field: field, Value: value}
}

// SelectTable restricts the projection to one table, needed whenever a join is present.
type SelectTable struct {
	Table string
}

func (s SelectTable) Apply(db *gorm.DB) *gorm.DB {
	return db.Select(s.Table + ".*")
}
