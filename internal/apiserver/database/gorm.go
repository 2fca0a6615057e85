package database

import (
	"context"
	"fmt"

	"github.com/bllokusync/bllokusync/internal/common/cnst"
	"gorm.io/gorm"
)

// ormDB implements Database on top of a gorm connection. All three drivers
// share this implementation; only the dialector differs.
type ormDB struct {
	db *gorm.DB
}

func newORMDB(dialector gorm.Dialector) (Database, error) {
	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := gormDB.AutoMigrate(
		&User{},
		&Property{},
		&Tenant{},
		&PaymentRecord{},
		&Submission{},
		&MonthlyReport{},
		&SpendingBreakdown{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &ormDB{db: gormDB}, nil
}

// Close closes the database connection
func (d *ormDB) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction runs fn inside a transaction carried in the context
func (d *ormDB) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ContextWithTransaction(ctx, tx))
	})
}

// conn returns the transaction from the context if present, otherwise the
// context-bound base connection.
func (d *ormDB) conn(ctx context.Context) *gorm.DB {
	if tx := TransactionFromContext(ctx); tx != nil {
		return tx
	}
	return d.db.WithContext(ctx)
}

func (d *ormDB) CreateUser(ctx context.Context, user *User) error {
	return d.conn(ctx).Create(user).Error
}

func (d *ormDB) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := d.conn(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *ormDB) ListUsers(ctx context.Context) ([]*User, error) {
	var users []*User
	err := d.conn(ctx).Order("id asc").Find(&users).Error
	return users, err
}

func (d *ormDB) UpdateUser(ctx context.Context, user *User) error {
	return d.conn(ctx).Save(user).Error
}

func (d *ormDB) DeleteUser(ctx context.Context, id uint) error {
	return d.conn(ctx).Delete(&User{}, id).Error
}

func (d *ormDB) CreateProperty(ctx context.Context, property *Property) error {
	return d.conn(ctx).Create(property).Error
}

func (d *ormDB) GetProperty(ctx context.Context, id uint) (*Property, error) {
	var property Property
	if err := d.conn(ctx).First(&property, id).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

func (d *ormDB) ListProperties(ctx context.Context) ([]*Property, error) {
	var properties []*Property
	err := d.conn(ctx).Order("id asc").Find(&properties).Error
	return properties, err
}

func (d *ormDB) UpdateProperty(ctx context.Context, property *Property) error {
	return d.conn(ctx).Save(property).Error
}

func (d *ormDB) DeleteProperty(ctx context.Context, id uint) error {
	return d.conn(ctx).Delete(&Property{}, id).Error
}

func (d *ormDB) CreateTenant(ctx context.Context, tenant *Tenant) error {
	return d.conn(ctx).Create(tenant).Error
}

func (d *ormDB) GetTenant(ctx context.Context, id uint) (*Tenant, error) {
	var tenant Tenant
	if err := d.conn(ctx).First(&tenant, id).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (d *ormDB) GetTenantByUserID(ctx context.Context, userID uint) (*Tenant, error) {
	var tenant Tenant
	if err := d.conn(ctx).Where("user_id = ?", userID).First(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (d *ormDB) ListTenants(ctx context.Context, propertyID uint) ([]*Tenant, error) {
	query := d.conn(ctx).Order("id asc")
	if propertyID != 0 {
		query = query.Where("property_id = ?", propertyID)
	}
	var tenants []*Tenant
	err := query.Find(&tenants).Error
	return tenants, err
}

func (d *ormDB) UpdateTenant(ctx context.Context, tenant *Tenant) error {
	return d.conn(ctx).Save(tenant).Error
}

func (d *ormDB) DeleteTenant(ctx context.Context, id uint) error {
	return d.conn(ctx).Delete(&Tenant{}, id).Error
}

func (d *ormDB) CreatePayment(ctx context.Context, payment *PaymentRecord) error {
	return d.conn(ctx).Create(payment).Error
}

func (d *ormDB) GetPayment(ctx context.Context, id uint) (*PaymentRecord, error) {
	var payment PaymentRecord
	if err := d.conn(ctx).First(&payment, id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (d *ormDB) GetPaymentByKey(ctx context.Context, tenantID, propertyID uint, month string) (*PaymentRecord, error) {
	var payment PaymentRecord
	err := d.conn(ctx).
		Where("tenant_id = ? AND property_id = ? AND payment_month = ?", tenantID, propertyID, month).
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (d *ormDB) ListPayments(ctx context.Context, filter PaymentFilter) ([]*PaymentRecord, error) {
	query := d.conn(ctx).Order("payment_month asc, tenant_id asc")
	if filter.PropertyID != 0 {
		query = query.Where("property_id = ?", filter.PropertyID)
	}
	if filter.TenantID != 0 {
		query = query.Where("tenant_id = ?", filter.TenantID)
	}
	if filter.Year != 0 {
		query = query.Where("payment_month LIKE ?", fmt.Sprintf("%04d-%%", filter.Year))
	}
	if len(filter.Months) > 0 {
		query = query.Where("payment_month IN ?", filter.Months)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	var payments []*PaymentRecord
	err := query.Find(&payments).Error
	return payments, err
}

func (d *ormDB) UpdatePayment(ctx context.Context, payment *PaymentRecord) error {
	return d.conn(ctx).Save(payment).Error
}

func (d *ormDB) DeletePayment(ctx context.Context, id uint) error {
	return d.conn(ctx).Delete(&PaymentRecord{}, id).Error
}

func (d *ormDB) CreateSubmission(ctx context.Context, submission *Submission) error {
	return d.conn(ctx).Create(submission).Error
}

func (d *ormDB) GetSubmission(ctx context.Context, kind cnst.SubmissionKind, id uint) (*Submission, error) {
	var submission Submission
	err := d.conn(ctx).
		Where("kind = ? AND id = ?", kind, id).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (d *ormDB) ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]*Submission, error) {
	query := d.conn(ctx).
		Where("kind = ?", filter.Kind).
		Where("archived = ?", filter.ArchivedOnly).
		Order("created_at desc")
	if filter.PropertyID != 0 {
		query = query.Where("property_id = ?", filter.PropertyID)
	}
	if filter.TenantID != 0 {
		query = query.Where("tenant_id = ?", filter.TenantID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	var submissions []*Submission
	err := query.Find(&submissions).Error
	return submissions, err
}

func (d *ormDB) UpdateSubmission(ctx context.Context, submission *Submission) error {
	return d.conn(ctx).Save(submission).Error
}

func (d *ormDB) ArchiveSubmissions(ctx context.Context, kind cnst.SubmissionKind, ids []uint) (int64, error) {
	result := d.conn(ctx).
		Model(&Submission{}).
		Where("kind = ? AND id IN ?", kind, ids).
		Update("archived", true)
	return result.RowsAffected, result.Error
}

func (d *ormDB) CreateMonthlyReport(ctx context.Context, report *MonthlyReport) error {
	return d.conn(ctx).Create(report).Error
}

func (d *ormDB) GetMonthlyReport(ctx context.Context, id uint) (*MonthlyReport, error) {
	var report MonthlyReport
	if err := d.conn(ctx).Preload("Breakdown").First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (d *ormDB) ListMonthlyReports(ctx context.Context, propertyID uint) ([]*MonthlyReport, error) {
	query := d.conn(ctx).Preload("Breakdown").Order("month desc")
	if propertyID != 0 {
		query = query.Where("property_id = ?", propertyID)
	}
	var reports []*MonthlyReport
	err := query.Find(&reports).Error
	return reports, err
}

func (d *ormDB) DeleteMonthlyReport(ctx context.Context, id uint) error {
	return d.Transaction(ctx, func(ctx context.Context) error {
		tx := TransactionFromContext(ctx)
		if err := tx.Where("monthly_report_id = ?", id).Delete(&SpendingBreakdown{}).Error; err != nil {
			return err
		}
		return tx.Delete(&MonthlyReport{}, id).Error
	})
}
