package models

import (
	"github.com/erp/backoffice/internal/domain/record"
	"github.com/shopspring/decimal"
)

// UnitModel is an organizational unit
type UnitModel struct {
	BaseModel
	Name string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (UnitModel) TableName() string {
	return "units"
}

// ToDomain converts the persistence model to a domain Unit
func (m *UnitModel) ToDomain() record.Unit {
	return record.Unit{ID: record.ID(m.ID), Name: m.Name}
}

// PaymentMethodModel holds the rates of a payment method as fractions
type PaymentMethodModel struct {
	BaseModel
	Name               string          `gorm:"type:varchar(100);not null"`
	TaxPercentage      decimal.Decimal `gorm:"type:decimal(9,6);not null;default:0"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(9,6);not null;default:0"`
}

// TableName returns the table name for GORM
func (PaymentMethodModel) TableName() string {
	return "payment_methods"
}

// ToDomain converts the persistence model to a domain PaymentMethod
func (m *PaymentMethodModel) ToDomain() record.PaymentMethod {
	return record.PaymentMethod{
		ID:                 record.ID(m.ID),
		Name:               m.Name,
		TaxPercentage:      m.TaxPercentage,
		DiscountPercentage: m.DiscountPercentage,
	}
}

// All returns every model, in dependency order, for AutoMigrate in tests
func All() []any {
	return []any{
		&UnitModel{},
		&PaymentMethodModel{},
		&SessionModel{},
		&ContractModel{},
		&PaymentModel{},
		&DailyReportModel{},
		&VisitModel{},
		&ExpenseModel{},
	}
}
