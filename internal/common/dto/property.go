package dto

// CreatePropertyRequest represents a request to create a property
type CreatePropertyRequest struct {
	Name       string `json:"name" binding:"required"`
	Address    string `json:"address"`
	FloorsFrom int    `json:"floorsFrom"`
	FloorsTo   int    `json:"floorsTo"`
}

// UpdatePropertyRequest represents a request to update a property
type UpdatePropertyRequest struct {
	Name       string `json:"name" binding:"required"`
	Address    string `json:"address"`
	FloorsFrom int    `json:"floorsFrom"`
	FloorsTo   int    `json:"floorsTo"`
}
