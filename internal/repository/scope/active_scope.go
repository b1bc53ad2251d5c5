package scope

import "gorm.io/gorm"

// ActiveSessions keeps sessions that have not been soft-deleted.
func ActiveSessions(db *gorm.DB) *gorm.DB {
	return db.Where("sessions.is_active = ?", true)
}
