package models

import (
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/utils"
)

// Property represents a rentable unit (cabin, apartment, room) owned by a tenant.
// The analytics engine treats properties as read-only input.
type Property struct {
	Base     `bson:",inline"`
	TenantID utils.SixID `bson:"tenant_id" json:"tenant_id"`
	Name     string      `bson:"name" json:"name"`
	Capacity int         `bson:"capacity" json:"capacity"`
	Deleted  bool        `bson:"deleted" json:"-"` // Soft delete flag
}
