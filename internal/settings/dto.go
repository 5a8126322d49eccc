package settings

import "sellerhub/internal/domain"

// UpdateSettingsRequest replaces all three thresholds. Every field is required.
type UpdateSettingsRequest struct {
	LowStockThreshold *int `json:"lowStockThreshold"`
	InactiveThreshold *int `json:"inactiveThreshold"`
	VIPOrderThreshold *int `json:"vipOrderThreshold"`
}

type SettingsDTO struct {
	LowStockThreshold int `json:"lowStockThreshold"`
	InactiveThreshold int `json:"inactiveThreshold"`
	VIPOrderThreshold int `json:"vipOrderThreshold"`
}

type SettingsResponse struct {
	TraceID  string      `json:"traceId"`
	Settings SettingsDTO `json:"settings"`
}

func toDTO(s domain.TenantSettings) SettingsDTO {
	return SettingsDTO{
		LowStockThreshold: s.LowStockThreshold,
		InactiveThreshold: s.InactiveThreshold,
		VIPOrderThreshold: s.VIPOrderThreshold,
	}
}
