package dto

// CreateSubmissionRequest represents a tenant filing a complaint,
// suggestion or report
type CreateSubmissionRequest struct {
	PropertyID  uint   `json:"propertyId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// UpdateSubmissionStatusRequest represents a manager status change with an
// optional response message
type UpdateSubmissionStatusRequest struct {
	Status   string `json:"status" binding:"required,oneof=pending in_progress resolved rejected"`
	Response string `json:"response"`
}

// ArchiveSubmissionsRequest represents a bulk archive by ID list
type ArchiveSubmissionsRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

// ArchiveSubmissionsResponse reports how many submissions were archived
type ArchiveSubmissionsResponse struct {
	Archived int64 `json:"archived"`
}
