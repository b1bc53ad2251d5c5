package scope

import "gorm.io/gorm"

// OrderByCreatedAscIn orders a possibly joined query by creation time of table,
// with the id as tie-break so equal timestamps keep a stable order.
func OrderByCreatedAscIn(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(table + ".created_at ASC").Order(table + ".id ASC")
	}
}
