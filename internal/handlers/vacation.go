package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/esantostaype/task-automation-sub001/internal/dto"
	apierrors "github.com/esantostaype/task-automation-sub001/internal/errors"
	"github.com/esantostaype/task-automation-sub001/internal/services"
)

// VacationHandler coordinates vacation HTTP handlers.
type VacationHandler struct {
	vacationService *services.VacationService
}

// NewVacationHandler creates a new VacationHandler.
func NewVacationHandler(vacationService *services.VacationService) *VacationHandler {
	return &VacationHandler{
		vacationService: vacationService,
	}
}

// CreateVacation registers a vacation for a designer
func (h *VacationHandler) CreateVacation(c *gin.Context) {
	type CreateVacationRequest struct {
		UserID    uint64    `json:"user_id" binding:"required"`
		StartDate time.Time `json:"start_date" binding:"required"`
		EndDate   time.Time `json:"end_date" binding:"required"`
	}

	var req CreateVacationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	vacation, err := h.vacationService.Create(req.UserID, req.StartDate, req.EndDate)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidVacationRange):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrVacationOverlap):
			apierrors.Conflict(c, err.Error())
		case errors.Is(err, services.ErrDesignerNotFound):
			apierrors.NotFound(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to create vacation")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToVacationDTO(*vacation))
}

// DeleteVacation removes a vacation
func (h *VacationHandler) DeleteVacation(c *gin.Context) {
	vacationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid vacation ID")
		return
	}

	if err := h.vacationService.Delete(vacationID); err != nil {
		if errors.Is(err, services.ErrVacationNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to delete vacation")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vacation deleted successfully",
	})
}

// ListUserVacations returns a designer's vacations
func (h *VacationHandler) ListUserVacations(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	vacations, err := h.vacationService.ListByUser(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list vacations")
		return
	}

	items := make([]dto.VacationDTO, len(vacations))
	for i, v := range vacations {
		items[i] = dto.ToVacationDTO(v)
	}
	c.JSON(http.StatusOK, gin.H{"vacations": items})
}
