package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/bllokusync/bllokusync/internal/apiserver/database"
	"github.com/bllokusync/bllokusync/internal/common/cnst"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EnsureInput names the combinations the reconciler must cover:
// every (tenant, month) pair for one property and year.
type EnsureInput struct {
	TenantIDs  []uint `json:"tenantIds"`
	PropertyID uint   `json:"propertyId"`
	Year       int    `json:"year"`
	Months     []int  `json:"months"`
}

// TenantError is a per-tenant failure collected during an ensure batch.
// Failures never abort the batch.
type TenantError struct {
	TenantID uint   `json:"tenantId"`
	Error    string `json:"error"`
}

// EnsureResult reports the outcome of an ensure batch. Payments holds
// existing and newly created records together; NewRecords counts only
// the created ones.
type EnsureResult struct {
	Payments   []*database.PaymentRecord `json:"payments"`
	NewRecords int                       `json:"newRecords"`
	Errors     []TenantError             `json:"errors"`
}

// BulkResult reports a bulk status transition. Updated holds the IDs
// that were transitioned, Missing the IDs that matched no record.
type BulkResult struct {
	Updated []uint `json:"updated"`
	Missing []uint `json:"missing"`
}

// Reconciler implements the get-or-create contract for payment records.
// At most one record exists per (tenant, property, month); the database
// unique index backs that guarantee under concurrent batches.
type Reconciler struct {
	db     database.Database
	logger *zap.Logger
}

// NewReconciler creates a reconciler on top of the given database
func NewReconciler(db database.Database, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		db:     db,
		logger: logger.Named("payment.reconciler"),
	}
}

// EnsureRecords guarantees a payment record exists for every
// (tenant, month) combination in the input. Newly created records start
// as pending with the tenant's monthly rate at call time. Tenants without
// a monthly rate are reported in Errors and contribute no payments.
// Repeated calls with the same input create no duplicates.
func (r *Reconciler) EnsureRecords(ctx context.Context, input EnsureInput) (*EnsureResult, error) {
	months := make([]string, 0, len(input.Months))
	for _, idx := range input.Months {
		key, err := MonthKey(input.Year, idx)
		if err != nil {
			return nil, err
		}
		months = append(months, key)
	}

	roster, err := r.db.ListTenants(ctx, input.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant roster: %w", err)
	}
	byID := make(map[uint]*database.Tenant, len(roster))
	for _, t := range roster {
		byID[t.ID] = t
	}

	batchID := uuid.New().String()
	result := &EnsureResult{
		Payments: make([]*database.PaymentRecord, 0, len(input.TenantIDs)*len(months)),
		Errors:   []TenantError{},
	}

	for _, tenantID := range input.TenantIDs {
		tenant, ok := byID[tenantID]
		if !ok {
			result.Errors = append(result.Errors, TenantError{TenantID: tenantID, Error: "tenant not found"})
			continue
		}
		if tenant.MonthlyRate == nil {
			result.Errors = append(result.Errors, TenantError{TenantID: tenantID, Error: "no monthly rate"})
			continue
		}

		for _, month := range months {
			record, created, err := r.ensureOne(ctx, tenant, input.PropertyID, month)
			if err != nil {
				r.logger.Warn("ensure failed for tenant month",
					zap.String("batch_id", batchID),
					zap.Uint("tenant_id", tenantID),
					zap.String("month", month),
					zap.Error(err))
				result.Errors = append(result.Errors, TenantError{TenantID: tenantID, Error: err.Error()})
				continue
			}
			if created {
				result.NewRecords++
			}
			result.Payments = append(result.Payments, record)
		}
	}

	r.logger.Info("ensure batch completed",
		zap.String("batch_id", batchID),
		zap.Uint("property_id", input.PropertyID),
		zap.Int("tenants", len(input.TenantIDs)),
		zap.Int("months", len(months)),
		zap.Int("new_records", result.NewRecords),
		zap.Int("errors", len(result.Errors)))
	return result, nil
}

// ensureOne is get-or-create for a single (tenant, month). A concurrent
// batch may win the insert race; the unique index turns that into a
// duplicate key error and the record is re-fetched.
func (r *Reconciler) ensureOne(ctx context.Context, tenant *database.Tenant, propertyID uint, month string) (*database.PaymentRecord, bool, error) {
	existing, err := r.db.GetPaymentByKey(ctx, tenant.ID, propertyID, month)
	if err == nil {
		return existing, false, nil
	}
	if !database.IsNotFound(err) {
		return nil, false, err
	}

	record := &database.PaymentRecord{
		TenantID:     tenant.ID,
		PropertyID:   propertyID,
		PaymentMonth: month,
		Amount:       *tenant.MonthlyRate,
		Status:       string(cnst.PaymentPending),
	}
	if err := r.db.CreatePayment(ctx, record); err != nil {
		if database.IsDuplicateKey(err) {
			won, ferr := r.db.GetPaymentByKey(ctx, tenant.ID, propertyID, month)
			if ferr != nil {
				return nil, false, ferr
			}
			return won, false, nil
		}
		return nil, false, err
	}
	return record, true, nil
}

// BulkUpdateStatus transitions every given record to the target status
// inside one transaction. IDs matching no record are reported in Missing
// instead of failing the batch. Transitioning to paid stamps the payment
// date when unset; leaving paid clears it.
func (r *Reconciler) BulkUpdateStatus(ctx context.Context, ids []uint, status string) (*BulkResult, error) {
	if !cnst.ValidPaymentStatus(status) {
		return nil, fmt.Errorf("invalid payment status: %q", status)
	}

	result := &BulkResult{Updated: []uint{}, Missing: []uint{}}
	err := r.db.Transaction(ctx, func(ctx context.Context) error {
		for _, id := range ids {
			record, err := r.db.GetPayment(ctx, id)
			if err != nil {
				if database.IsNotFound(err) {
					result.Missing = append(result.Missing, id)
					continue
				}
				return err
			}
			record.Status = status
			if status == string(cnst.PaymentPaid) {
				if record.PaymentDate == nil {
					today := time.Now().Format("2006-01-02")
					record.PaymentDate = &today
				}
			} else {
				record.PaymentDate = nil
			}
			if err := r.db.UpdatePayment(ctx, record); err != nil {
				return err
			}
			result.Updated = append(result.Updated, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("bulk status update completed",
		zap.String("status", status),
		zap.Int("updated", len(result.Updated)),
		zap.Int("missing", len(result.Missing)))
	return result, nil
}
