package dto

// BreakdownLine represents one spending category of a monthly report
type BreakdownLine struct {
	Category        string  `json:"category" binding:"required"`
	AllocatedAmount float64 `json:"allocatedAmount" binding:"gte=0"`
	Percentage      float64 `json:"percentage" binding:"gte=0,lte=100"`
}

// CreateMonthlyReportRequest represents a per-property budget summary for
// one month. Month uses the canonical YYYY-MM-01 form.
type CreateMonthlyReportRequest struct {
	PropertyID  uint            `json:"propertyId" binding:"required"`
	Month       string          `json:"month" binding:"required,datetime=2006-01-02"`
	TotalBudget float64         `json:"totalBudget" binding:"gte=0"`
	TotalSpent  float64         `json:"totalSpent" binding:"gte=0"`
	Notes       string          `json:"notes"`
	Breakdown   []BreakdownLine `json:"breakdown" binding:"dive"`
}
