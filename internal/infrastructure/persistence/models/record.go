package models

import (
	"github.com/erp/backoffice/internal/domain/record"
	"github.com/shopspring/decimal"
)

// SessionModel is the persistence model for record.Session
type SessionModel struct {
	HeaderModel
	StudentName    string              `gorm:"type:varchar(200)"`
	Subject        string              `gorm:"type:varchar(200)"`
	DurationHours  decimal.Decimal     `gorm:"type:decimal(10,2);not null"`
	HourlyRate     decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	LocationKind   record.LocationKind `gorm:"type:varchar(20);not null;index"`
	ComputedAmount *decimal.Decimal    `gorm:"type:decimal(18,4)"`
}

// TableName returns the table name for GORM
func (SessionModel) TableName() string {
	return "sessions"
}

// ToDomain converts the persistence model to a domain Session
func (m *SessionModel) ToDomain() record.Session {
	return record.Session{
		Header:         m.HeaderModel.ToDomain(),
		StudentName:    m.StudentName,
		Subject:        m.Subject,
		DurationHours:  m.DurationHours,
		HourlyRate:     m.HourlyRate,
		LocationKind:   m.LocationKind,
		ComputedAmount: m.ComputedAmount,
	}
}

// SessionModelFromDomain creates a persistence model from a domain Session
func SessionModelFromDomain(s record.Session) *SessionModel {
	m := &SessionModel{
		StudentName:    s.StudentName,
		Subject:        s.Subject,
		DurationHours:  s.DurationHours,
		HourlyRate:     s.HourlyRate,
		LocationKind:   s.LocationKind,
		ComputedAmount: s.ComputedAmount,
	}
	m.HeaderModel.FromDomain(s.Header)
	return m
}

// ContractModel is the persistence model for record.Contract
type ContractModel struct {
	HeaderModel
	ContractNumber   string              `gorm:"type:varchar(50);not null;index"`
	CustomerName     string              `gorm:"type:varchar(200)"`
	Phone            string              `gorm:"type:varchar(50)"`
	TotalAmount      decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	PaidAmount       decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	RemainingAmount  decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	NetAmount        decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	ContractKind     record.ContractKind `gorm:"type:varchar(30);not null;index"`
	ParentContractID *int64              `gorm:"index"`
	Payments         []PaymentModel      `gorm:"foreignKey:ContractID"`
}

// TableName returns the table name for GORM
func (ContractModel) TableName() string {
	return "contracts"
}

// ToDomain converts the persistence model to a domain Contract
func (m *ContractModel) ToDomain() record.Contract {
	c := record.Contract{
		Header:          m.HeaderModel.ToDomain(),
		ContractNumber:  m.ContractNumber,
		CustomerName:    m.CustomerName,
		Phone:           m.Phone,
		TotalAmount:     m.TotalAmount,
		PaidAmount:      m.PaidAmount,
		RemainingAmount: m.RemainingAmount,
		NetAmount:       m.NetAmount,
		ContractKind:    m.ContractKind,
	}
	if m.ParentContractID != nil {
		parent := record.ID(*m.ParentContractID)
		c.ParentContractID = &parent
	}
	if len(m.Payments) > 0 {
		c.Payments = make([]record.Payment, len(m.Payments))
		for i, p := range m.Payments {
			c.Payments[i] = p.ToDomain()
		}
	}
	return c
}

// ContractModelFromDomain creates a persistence model from a domain Contract
func ContractModelFromDomain(c record.Contract) *ContractModel {
	m := &ContractModel{
		ContractNumber:  c.ContractNumber,
		CustomerName:    c.CustomerName,
		Phone:           c.Phone,
		TotalAmount:     c.TotalAmount,
		PaidAmount:      c.PaidAmount,
		RemainingAmount: c.RemainingAmount,
		NetAmount:       c.NetAmount,
		ContractKind:    c.ContractKind,
	}
	m.HeaderModel.FromDomain(c.Header)
	if c.ParentContractID != nil {
		parent := int64(*c.ParentContractID)
		m.ParentContractID = &parent
	}
	for _, p := range c.Payments {
		m.Payments = append(m.Payments, PaymentModel{
			Amount:          p.Amount,
			PaymentMethodID: int64(p.PaymentMethodID),
			Reference:       p.Reference,
		})
	}
	return m
}

// PaymentModel is one installment of a contract
type PaymentModel struct {
	ID              int64           `gorm:"primaryKey;autoIncrement"`
	ContractID      int64           `gorm:"not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaymentMethodID int64           `gorm:"not null;default:0"`
	Reference       string          `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "contract_payments"
}

// ToDomain converts the persistence model to a domain Payment
func (m PaymentModel) ToDomain() record.Payment {
	return record.Payment{
		Amount:          m.Amount,
		PaymentMethodID: record.ID(m.PaymentMethodID),
		Reference:       m.Reference,
	}
}

// DailyReportModel is the persistence model for record.DailyReport
type DailyReportModel struct {
	HeaderModel
	Calls       int64        `gorm:"not null;default:0"`
	HotCalls    int64        `gorm:"not null;default:0"`
	WalkIns     int64        `gorm:"not null;default:0"`
	UnitLeads   int64        `gorm:"not null;default:0"`
	OnlineLeads int64        `gorm:"not null;default:0"`
	ExtraLeads  int64        `gorm:"not null;default:0"`
	VisitCount  int64        `gorm:"not null;default:0"`
	Visits      []VisitModel `gorm:"foreignKey:DailyReportID"`
}

// TableName returns the table name for GORM
func (DailyReportModel) TableName() string {
	return "daily_reports"
}

// ToDomain converts the persistence model to a domain DailyReport
func (m *DailyReportModel) ToDomain() record.DailyReport {
	d := record.DailyReport{
		Header:      m.HeaderModel.ToDomain(),
		Calls:       m.Calls,
		HotCalls:    m.HotCalls,
		WalkIns:     m.WalkIns,
		UnitLeads:   m.UnitLeads,
		OnlineLeads: m.OnlineLeads,
		ExtraLeads:  m.ExtraLeads,
		VisitCount:  m.VisitCount,
	}
	if len(m.Visits) > 0 {
		d.Visits = make([]record.Visit, len(m.Visits))
		for i, v := range m.Visits {
			d.Visits[i] = record.Visit{TargetUnitID: record.ID(v.TargetUnitID), Note: v.Note}
		}
	}
	return d
}

// DailyReportModelFromDomain creates a persistence model from a domain DailyReport
func DailyReportModelFromDomain(d record.DailyReport) *DailyReportModel {
	m := &DailyReportModel{
		Calls:       d.Calls,
		HotCalls:    d.HotCalls,
		WalkIns:     d.WalkIns,
		UnitLeads:   d.UnitLeads,
		OnlineLeads: d.OnlineLeads,
		ExtraLeads:  d.ExtraLeads,
		VisitCount:  d.VisitCount,
	}
	m.HeaderModel.FromDomain(d.Header)
	for _, v := range d.Visits {
		m.Visits = append(m.Visits, VisitModel{TargetUnitID: int64(v.TargetUnitID), Note: v.Note})
	}
	return m
}

// VisitModel is one outbound visit logged in a daily report
type VisitModel struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	DailyReportID int64  `gorm:"not null;index"`
	TargetUnitID  int64  `gorm:"not null"`
	Note          string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (VisitModel) TableName() string {
	return "daily_report_visits"
}

// ExpenseModel is the persistence model for record.Expense
type ExpenseModel struct {
	BaseModel
	UnitID       int64           `gorm:"not null;index:idx_expense_period,priority:1"`
	Year         int             `gorm:"not null;index:idx_expense_period,priority:2"`
	Month        int             `gorm:"not null;index:idx_expense_period,priority:3"`
	AssigneeName string          `gorm:"type:varchar(200);not null;default:''"`
	Title        string          `gorm:"type:varchar(200);not null"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense
func (m *ExpenseModel) ToDomain() record.Expense {
	return record.Expense{
		Header: record.Header{
			ID:           record.ID(m.ID),
			UnitID:       record.ID(m.UnitID),
			AssigneeName: m.AssigneeName,
		},
		Title:  m.Title,
		Amount: m.Amount,
		Year:   m.Year,
		Month:  m.Month,
	}
}

// ExpenseModelFromDomain creates a persistence model from a domain Expense
func ExpenseModelFromDomain(e record.Expense) *ExpenseModel {
	return &ExpenseModel{
		BaseModel:    BaseModel{ID: int64(e.ID)},
		UnitID:       int64(e.UnitID),
		Year:         e.Year,
		Month:        e.Month,
		AssigneeName: e.AssigneeName,
		Title:        e.Title,
		Amount:       e.Amount,
	}
}
