package database

import (
	"context"

	"github.com/bllokusync/bllokusync/internal/common/cnst"
)

// PaymentFilter narrows a payment record listing. Zero values mean
// "no constraint". Months holds fully formatted YYYY-MM-01 keys.
type PaymentFilter struct {
	PropertyID uint
	TenantID   uint
	Year       int
	Months     []string
	Status     string
}

// SubmissionFilter narrows a submission listing. Kind is mandatory.
// ArchivedOnly selects archived items; the default listing excludes them.
type SubmissionFilter struct {
	Kind         cnst.SubmissionKind
	PropertyID   uint
	TenantID     uint
	Status       string
	ArchivedOnly bool
}

// Database defines the methods for database operations.
type Database interface {
	// Close closes the database connection.
	Close() error

	// Transaction runs fn inside a database transaction. The transaction is
	// carried in the context passed to fn and picked up by every operation.
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error

	// CreateUser creates a new user.
	CreateUser(ctx context.Context, user *User) error
	// GetUserByUsername gets a user by username.
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	// ListUsers lists all users.
	ListUsers(ctx context.Context) ([]*User, error)
	// UpdateUser updates an existing user.
	UpdateUser(ctx context.Context, user *User) error
	// DeleteUser deletes a user by ID.
	DeleteUser(ctx context.Context, id uint) error

	// CreateProperty creates a new property.
	CreateProperty(ctx context.Context, property *Property) error
	// GetProperty gets a property by ID.
	GetProperty(ctx context.Context, id uint) (*Property, error)
	// ListProperties lists all properties.
	ListProperties(ctx context.Context) ([]*Property, error)
	// UpdateProperty updates an existing property.
	UpdateProperty(ctx context.Context, property *Property) error
	// DeleteProperty deletes a property by ID.
	DeleteProperty(ctx context.Context, id uint) error

	// CreateTenant creates a new tenant.
	CreateTenant(ctx context.Context, tenant *Tenant) error
	// GetTenant gets a tenant by ID.
	GetTenant(ctx context.Context, id uint) (*Tenant, error)
	// GetTenantByUserID gets the tenant record linked to a user account.
	GetTenantByUserID(ctx context.Context, userID uint) (*Tenant, error)
	// ListTenants lists tenants, optionally scoped to a property (0 = all).
	ListTenants(ctx context.Context, propertyID uint) ([]*Tenant, error)
	// UpdateTenant updates an existing tenant.
	UpdateTenant(ctx context.Context, tenant *Tenant) error
	// DeleteTenant deletes a tenant by ID.
	DeleteTenant(ctx context.Context, id uint) error

	// CreatePayment creates a new payment record. The composite unique index
	// on (tenant, property, month) makes concurrent duplicate creation fail.
	CreatePayment(ctx context.Context, payment *PaymentRecord) error
	// GetPayment gets a payment record by ID.
	GetPayment(ctx context.Context, id uint) (*PaymentRecord, error)
	// GetPaymentByKey gets the payment record for a (tenant, property, month) tuple.
	GetPaymentByKey(ctx context.Context, tenantID, propertyID uint, month string) (*PaymentRecord, error)
	// ListPayments lists payment records matching the filter.
	ListPayments(ctx context.Context, filter PaymentFilter) ([]*PaymentRecord, error)
	// UpdatePayment updates an existing payment record.
	UpdatePayment(ctx context.Context, payment *PaymentRecord) error
	// DeletePayment deletes a payment record by ID.
	DeletePayment(ctx context.Context, id uint) error

	// CreateSubmission creates a new submission.
	CreateSubmission(ctx context.Context, submission *Submission) error
	// GetSubmission gets a submission of the given kind by ID. Archived
	// submissions are still returned by direct fetch.
	GetSubmission(ctx context.Context, kind cnst.SubmissionKind, id uint) (*Submission, error)
	// ListSubmissions lists submissions matching the filter.
	ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]*Submission, error)
	// UpdateSubmission updates an existing submission.
	UpdateSubmission(ctx context.Context, submission *Submission) error
	// ArchiveSubmissions sets the archived flag on the given IDs of one kind
	// and returns the number of rows affected. Archiving is one-way.
	ArchiveSubmissions(ctx context.Context, kind cnst.SubmissionKind, ids []uint) (int64, error)

	// CreateMonthlyReport creates a monthly report with its breakdown lines.
	CreateMonthlyReport(ctx context.Context, report *MonthlyReport) error
	// GetMonthlyReport gets a monthly report by ID including its breakdown.
	GetMonthlyReport(ctx context.Context, id uint) (*MonthlyReport, error)
	// ListMonthlyReports lists monthly reports, optionally scoped to a property (0 = all).
	ListMonthlyReports(ctx context.Context, propertyID uint) ([]*MonthlyReport, error)
	// DeleteMonthlyReport deletes a monthly report and its breakdown.
	DeleteMonthlyReport(ctx context.Context, id uint) error
}
