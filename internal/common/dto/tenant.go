package dto

// CreateTenantRequest represents a request to register a tenant on a property
type CreateTenantRequest struct {
	PropertyID     uint     `json:"propertyId" binding:"required"`
	FullName       string   `json:"fullName" binding:"required"`
	ApartmentLabel string   `json:"apartmentLabel"`
	Floor          int      `json:"floor"`
	MonthlyRate    *float64 `json:"monthlyRate" binding:"omitempty,gte=0"`
	Phone          string   `json:"phone"`
	UserID         *uint    `json:"userId"`
}

// UpdateTenantRequest represents a request to update a tenant.
// MonthlyRate is a pointer so the rate can be cleared explicitly.
type UpdateTenantRequest struct {
	FullName       string   `json:"fullName" binding:"required"`
	ApartmentLabel string   `json:"apartmentLabel"`
	Floor          int      `json:"floor"`
	MonthlyRate    *float64 `json:"monthlyRate" binding:"omitempty,gte=0"`
	Phone          string   `json:"phone"`
	IsActive       *bool    `json:"isActive"`
}
