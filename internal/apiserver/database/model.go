package database

import (
	"time"

	"github.com/bllokusync/bllokusync/internal/common/cnst"
)

// UserRole represents the role of a user
type UserRole string

const (
	// RoleAdmin is a property manager account
	RoleAdmin UserRole = "admin"
	// RoleTenant is a resident account
	RoleTenant UserRole = "tenant"
)

// User represents an account that can authenticate against the API
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Username  string    `json:"username" gorm:"type:varchar(50);uniqueIndex"`
	Password  string    `json:"-" gorm:"not null"` // Password is not exposed in JSON
	Role      UserRole  `json:"role" gorm:"not null;default:'tenant'"`
	IsActive  bool      `json:"isActive" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Property represents a managed residential building
type Property struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name       string    `json:"name" gorm:"type:varchar(100);not null"`
	Address    string    `json:"address" gorm:"type:varchar(255)"`
	FloorsFrom int       `json:"floorsFrom"`
	FloorsTo   int       `json:"floorsTo"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Tenant represents a resident assigned to a property.
// MonthlyRate is nullable: a tenant without a rate is not eligible
// for payment record creation.
type Tenant struct {
	ID             uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID         *uint     `json:"userId" gorm:"index"`
	PropertyID     uint      `json:"propertyId" gorm:"index;not null"`
	FullName       string    `json:"fullName" gorm:"type:varchar(100);not null"`
	ApartmentLabel string    `json:"apartmentLabel" gorm:"type:varchar(20)"`
	Floor          int       `json:"floor"`
	MonthlyRate    *float64  `json:"monthlyRate"`
	Phone          string    `json:"phone" gorm:"type:varchar(30)"`
	IsActive       bool      `json:"isActive" gorm:"not null;default:true"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// PaymentRecord represents one tenant's rent obligation for one property-month.
// PaymentMonth is stored as a plain YYYY-MM-01 string so month arithmetic never
// passes through a timezone-sensitive conversion.
//
// The composite unique index enforces the at-most-one-record-per
// (tenant, property, month) invariant at the database level.
type PaymentRecord struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	TenantID     uint      `json:"tenantId" gorm:"uniqueIndex:idx_payment_unique,priority:1;not null"`
	PropertyID   uint      `json:"propertyId" gorm:"uniqueIndex:idx_payment_unique,priority:2;not null"`
	PaymentMonth string    `json:"paymentMonth" gorm:"type:varchar(10);uniqueIndex:idx_payment_unique,priority:3;not null"`
	Amount       float64   `json:"amount"`
	Status       string    `json:"status" gorm:"type:varchar(10);not null;default:'pending'"`
	PaymentDate  *string   `json:"paymentDate" gorm:"type:varchar(10)"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Submission represents a tenant-submitted item: complaint, suggestion or
// report. The three families share one shape and one workflow, discriminated
// by Kind. Archived is a one-way flag; archived items are excluded from
// default listings but never deleted by archiving.
type Submission struct {
	ID          uint                `json:"id" gorm:"primaryKey;autoIncrement"`
	Kind        cnst.SubmissionKind `json:"kind" gorm:"type:varchar(12);index;not null"`
	TenantID    uint                `json:"tenantId" gorm:"index;not null"`
	PropertyID  uint                `json:"propertyId" gorm:"index;not null"`
	Title       string              `json:"title" gorm:"type:varchar(150);not null"`
	Description string              `json:"description" gorm:"type:text"`
	Status      string              `json:"status" gorm:"type:varchar(15);not null;default:'pending'"`
	Response    string              `json:"response" gorm:"type:text"`
	Archived    bool                `json:"archived" gorm:"not null;default:false"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// MonthlyReport represents a per-property, per-month budget summary
type MonthlyReport struct {
	ID          uint                 `json:"id" gorm:"primaryKey;autoIncrement"`
	PropertyID  uint                 `json:"propertyId" gorm:"index;not null"`
	Month       string               `json:"month" gorm:"type:varchar(10);not null"`
	TotalBudget float64              `json:"totalBudget"`
	TotalSpent  float64              `json:"totalSpent"`
	Notes       string               `json:"notes" gorm:"type:text"`
	Breakdown   []*SpendingBreakdown `json:"breakdown" gorm:"foreignKey:MonthlyReportID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// SpendingBreakdown represents one category line of a monthly report
type SpendingBreakdown struct {
	ID              uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	MonthlyReportID uint    `json:"monthlyReportId" gorm:"index;not null"`
	Category        string  `json:"category" gorm:"type:varchar(50);not null"`
	AllocatedAmount float64 `json:"allocatedAmount"`
	Percentage      float64 `json:"percentage"`
}
