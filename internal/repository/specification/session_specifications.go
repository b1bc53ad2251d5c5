package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByAppID struct {
	AppID string
}

func (s ByAppID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sessions.app_id = ?", s.AppID)
}

type ByUserID struct {
	UserID string
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sessions.user_id = ?", s.UserID)
}

type ByLocationID struct {
	LocationID string
}

func (s ByLocationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sessions.location_id = ?", s.LocationID)
}

type ByMessageID struct {
	MessageID uuid.UUID
}

func (s ByMessageID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("metamessages.message_id = ?", s.MessageID)
}

type ByMetamessageType struct {
	MetamessageType string
}

func (s ByMetamessageType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("metamessages.metamessage_type = ?", s.MetamessageType)
}

type ByCollectionName struct {
	Name string
}

func (s ByCollectionName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("collections.name = ?", s.Name)
}
