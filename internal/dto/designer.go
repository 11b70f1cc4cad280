package dto

import (
	"time"

	"github.com/esantostaype/task-automation-sub001/internal/models"
	"github.com/esantostaype/task-automation-sub001/internal/scheduling"
)

// VacationDTO represents a vacation in API responses
type VacationDTO struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// RoleDTO represents a designer role in API responses
type RoleDTO struct {
	ID      uint64  `json:"id"`
	TypeID  uint64  `json:"type_id"`
	Type    string  `json:"type,omitempty"`
	BrandID *uint64 `json:"brand_id,omitempty"`
	Brand   string  `json:"brand,omitempty"`
}

// DesignerDTO represents a designer with roles and vacations
type DesignerDTO struct {
	ID        uint64        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Active    bool          `json:"active"`
	Roles     []RoleDTO     `json:"roles,omitempty"`
	Vacations []VacationDTO `json:"vacations,omitempty"`
}

// SlotDTO represents a computed availability slot in API responses
type SlotDTO struct {
	UserID           uint64    `json:"user_id"`
	UserName         string    `json:"user_name"`
	Specialist       bool      `json:"specialist"`
	AvailableDate    time.Time `json:"available_date"`
	PotentialEnd     time.Time `json:"potential_end"`
	TotalDuration    float64   `json:"total_duration_days"`
	VacationsSkipped int       `json:"vacations_skipped"`
	OnVacationNow    bool      `json:"on_vacation_now"`
	BrandID          uint64    `json:"brand_id"`
}

// SuggestionResponse is the best-designer preview for a prospective task.
type SuggestionResponse struct {
	Slot        *SlotDTO               `json:"slot"`
	Diagnostics scheduling.Diagnostics `json:"diagnostics"`
}

// Conversion functions

// ToVacationDTO converts a Vacation model to VacationDTO
func ToVacationDTO(v models.Vacation) VacationDTO {
	return VacationDTO{
		ID:        v.ID,
		UserID:    v.UserID,
		StartDate: v.StartDate,
		EndDate:   v.EndDate,
	}
}

// ToRoleDTO converts a Role model to RoleDTO
func ToRoleDTO(r models.Role) RoleDTO {
	dto := RoleDTO{
		ID:      r.ID,
		TypeID:  r.TypeID,
		BrandID: r.BrandID,
	}
	if r.Type.ID != 0 {
		dto.Type = r.Type.Name
	}
	if r.Brand != nil {
		dto.Brand = r.Brand.Name
	}
	return dto
}

// ToDesignerDTO converts a User model to DesignerDTO
func ToDesignerDTO(user models.User) DesignerDTO {
	dto := DesignerDTO{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Active: user.Active,
	}
	if len(user.Roles) > 0 {
		dto.Roles = make([]RoleDTO, len(user.Roles))
		for i, r := range user.Roles {
			dto.Roles[i] = ToRoleDTO(r)
		}
	}
	if len(user.Vacations) > 0 {
		dto.Vacations = make([]VacationDTO, len(user.Vacations))
		for i, v := range user.Vacations {
			dto.Vacations[i] = ToVacationDTO(v)
		}
	}
	return dto
}

// ToSlotDTO converts a computed slot to SlotDTO
func ToSlotDTO(slot scheduling.UserSlot, brandID uint64) SlotDTO {
	return SlotDTO{
		UserID:           slot.UserID,
		UserName:         slot.UserName,
		Specialist:       slot.Specialist,
		AvailableDate:    slot.AvailableDate,
		PotentialEnd:     slot.PotentialEnd,
		TotalDuration:    slot.TotalDurationDays,
		VacationsSkipped: slot.VacationsSkipped,
		OnVacationNow:    slot.OnVacationNow,
		BrandID:          brandID,
	}
}
