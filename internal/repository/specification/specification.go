package specification

import "gorm.io/gorm"

// Specification narrows or orders a gorm query. Specifications compose by
// applying them in sequence to the same *gorm.DB.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

// Scope lifts a plain gorm scope, such as those in package scope, into a Specification.
type Scope func(*gorm.DB) *gorm.DB

func (s Scope) Apply(db *gorm.DB) *gorm.DB {
	return s(db)
}
