package dto

import "time"

type UserSummary struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName,omitempty"`
	Role     string `json:"role,omitempty"`
	IsActive bool   `json:"isActive"`
}

type ToggleStatusRequest struct {
	// Pointer so a missing field is distinguishable from false.
	IsActive *bool `json:"isActive"`
}

type OfficerSummary struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type ServiceCategorySummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
