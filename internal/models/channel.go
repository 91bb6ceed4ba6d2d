package models

import (
	"github.com/orillasdelcoilaco/staymanager-sub002/internal/utils"
)

// Channel is a sales/distribution source (direct site, OTA, ...).
// Exactly one channel per tenant is flagged as the default; it is the
// reference list channel used to compute undiscounted value.
type Channel struct {
	Base      `bson:",inline"`
	TenantID  utils.SixID `bson:"tenant_id" json:"tenant_id"`
	Name      string      `bson:"name" json:"name"`
	IsDefault bool        `bson:"is_default" json:"is_default"`
	Deleted   bool        `bson:"deleted" json:"-"`
}
