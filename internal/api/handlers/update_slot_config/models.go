package update_slot_config

// UpdateSlotConfigRequest HTTP request model
type UpdateSlotConfigRequest struct {
	StepMinutes int `json:"stepMinutes"`
}
