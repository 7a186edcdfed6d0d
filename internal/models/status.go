package models

// StatusResponse is the generic acknowledgement returned by mutating
// operations that have no richer payload.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
