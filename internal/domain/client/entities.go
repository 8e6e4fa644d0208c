package client

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("client not found")

type Classification string

const (
	ClassificationPunctual           Classification = "PUNCTUAL"
	ClassificationRegular            Classification = "REGULAR"
	ClassificationDefaulting         Classification = "DEFAULTING"
	ClassificationSeverelyDefaulting Classification = "SEVERELY_DEFAULTING"
)

// Client is the slice of the client record the ledger engine consumes: id,
// tenant, active flag, and the classification field it writes back. Personal
// data, documents and geolocation live outside this core.
type Client struct {
	ID        uint64 `gorm:"primaryKey;column:id" json:"-"`
	ClientID  string `gorm:"size:32;uniqueIndex:ux_clients_client_id" json:"client_id"`
	CompanyID string `gorm:"size:32;index:idx_clients_company" json:"company_id"`

	IsActive       bool           `gorm:"column:is_active;default:true" json:"is_active"`
	Classification Classification `gorm:"size:32;default:'REGULAR'" json:"classification"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Client) TableName() string { return "clients" }
