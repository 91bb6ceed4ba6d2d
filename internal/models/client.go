package models

import (
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/utils"
)

// Client is a guest record referenced by reservations for display only.
// A missing client never fails a report; the display name degrades to empty.
type Client struct {
	Base     `bson:",inline"`
	TenantID utils.SixID `bson:"tenant_id" json:"tenant_id"`
	Name     string      `bson:"name" json:"name"`
	Email    string      `bson:"email,omitempty" json:"email,omitempty"`
	Phone    string      `bson:"phone,omitempty" json:"phone,omitempty"`
	Deleted  bool        `bson:"deleted" json:"-"`
}
