package dto

// EnsurePaymentsRequest represents a reconciliation request: guarantee a
// payment record exists for every selected tenant and month of one
// property-year
type EnsurePaymentsRequest struct {
	TenantIDs  []uint `json:"tenantIds" binding:"required,min=1"`
	PropertyID uint   `json:"propertyId" binding:"required"`
	Year       int    `json:"year" binding:"required"`
	Months     []int  `json:"months" binding:"required,min=1,dive,gte=0,lte=11"`
}

// BulkUpdatePaymentsRequest represents a bulk status transition
type BulkUpdatePaymentsRequest struct {
	IDs    []uint `json:"ids" binding:"required,min=1"`
	Status string `json:"status" binding:"required,oneof=pending paid overdue"`
}

// UpdatePaymentStatusRequest represents a single record status transition
type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending paid overdue"`
}

// UpdatePaymentDateRequest represents a payment date correction.
// Date uses the YYYY-MM-DD form; an empty date clears the field.
type UpdatePaymentDateRequest struct {
	Date string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}
