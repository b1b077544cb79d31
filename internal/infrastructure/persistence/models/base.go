package models

import (
	"time"

	"github.com/erp/backoffice/internal/domain/record"
)

// BaseModel provides the identity and audit columns shared by all tables
type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// HeaderModel maps record.Header. OccurredOn keeps the upstream text as
// delivered; it is parsed by the domain, never by the database.
type HeaderModel struct {
	BaseModel
	UnitID       int64  `gorm:"not null;index"`
	OccurredOn   string `gorm:"type:varchar(40);not null;default:''"`
	AssigneeName string `gorm:"type:varchar(200);not null;default:'';index"`
}

// ToDomain converts HeaderModel to a domain Header
func (m *HeaderModel) ToDomain() record.Header {
	return record.Header{
		ID:           record.ID(m.ID),
		UnitID:       record.ID(m.UnitID),
		OccurredOn:   m.OccurredOn,
		AssigneeName: m.AssigneeName,
	}
}

// FromDomain populates HeaderModel from a domain Header
func (m *HeaderModel) FromDomain(h record.Header) {
	m.ID = int64(h.ID)
	m.UnitID = int64(h.UnitID)
	m.OccurredOn = h.OccurredOn
	m.AssigneeName = h.AssigneeName
}
