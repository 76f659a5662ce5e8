package request

// UpdateSettingsRequest represents a staff settings update. All fields are
// optional; absent ones are left unchanged.
type UpdateSettingsRequest struct {
	Name         *string `json:"name"`
	ManualClosed *bool   `json:"manual_closed"`
	OpensAt      *string `json:"opens_at"`  // HH:MM
	ClosesAt     *string `json:"closes_at"` // HH:MM
	Timezone     *string `json:"timezone"`
}
