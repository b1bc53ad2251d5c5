package entity

import "errors"

// ErrInvalidTenant is returned when either half of the tenant pair is empty.
var ErrInvalidTenant = errors.New("invalid tenant identifier")

// Tenant is the (application, user) pair that scopes every entity.
// Identifiers are trusted inputs; only their presence is checked.
type Tenant struct {
	AppId  string
	UserId string
}

func NewTenant(appId, userId string) Tenant {
	return Tenant{AppId: appId, UserId: userId}
}

func (t Tenant) Validate() error {
	if t.AppId == "" || t.UserId == "" {
		return ErrInvalidTenant
	}
	return nil
}
