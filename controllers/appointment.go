// controllers/appointment.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vetdesk-backend/models"
	"vetdesk-backend/services"
	"vetdesk-backend/utils"
)

type AppointmentController struct {
	appointments *services.AppointmentService
	sweepToken   string
}

func NewAppointmentController(appointments *services.AppointmentService, sweepToken string) *AppointmentController {
	return &AppointmentController{appointments: appointments, sweepToken: sweepToken}
}

type CreateAppointmentInput struct {
	PetID          uuid.UUID `json:"petId" binding:"required"`
	VeterinarianID uuid.UUID `json:"veterinarianId" binding:"required"`
	ScheduledStart time.Time `json:"scheduledStart" binding:"required"`
	ScheduledEnd   time.Time `json:"scheduledEnd" binding:"required"`
	Reason         string    `json:"reason"`
	IsEmergency    bool      `json:"isEmergency"`
}

func (ac *AppointmentController) Create(c *gin.Context) {
	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	appt, err := ac.appointments.Book(c.Request.Context(), services.BookAppointmentInput{
		PetID:          input.PetID,
		VeterinarianID: input.VeterinarianID,
		ScheduledStart: input.ScheduledStart,
		ScheduledEnd:   input.ScheduledEnd,
		Reason:         input.Reason,
		IsEmergency:    input.IsEmergency,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appt)
}

func (ac *AppointmentController) List(c *gin.Context) {
	filter := services.AppointmentFilter{
		Status:        models.AppointmentStatus(c.Query("status")),
		PetNameSearch: c.Query("search"),
	}
	if vet := c.Query("veterinarianId"); vet != "" {
		vetID, err := uuid.Parse(vet)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid veterinarian ID format")
			return
		}
		filter.VeterinarianID = &vetID
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid 'from' timestamp")
			return
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid 'to' timestamp")
			return
		}
		filter.To = &t
	}

	appts, err := ac.appointments.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

func (ac *AppointmentController) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}
	appt, err := ac.appointments.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

type TransitionInput struct {
	Status             models.AppointmentStatus `json:"status" binding:"required,oneof=confirmed in_progress completed cancelled no_show"`
	CancellationReason string                   `json:"cancellationReason"`
	ActualEnd          *time.Time               `json:"actualEnd"`
}

func (ac *AppointmentController) Transition(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input TransitionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	appt, err := ac.appointments.Transition(c.Request.Context(), id, input.Status, services.TransitionContext{
		CancellationReason: input.CancellationReason,
		ActualEnd:          input.ActualEnd,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

type TriageInputBody struct {
	PetID        uuid.UUID `json:"petId" binding:"required"`
	WeightKg     *float64  `json:"weightKg"`
	TemperatureC *float64  `json:"temperatureC"`
	HeartRateBPM *int      `json:"heartRateBpm"`
	Notes        string    `json:"notes"`
}

func (ac *AppointmentController) RecordTriage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input TriageInputBody
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	appt, err := ac.appointments.RecordTriage(c.Request.Context(), id, input.PetID, services.TriageInput{
		WeightKg:     input.WeightKg,
		TemperatureC: input.TemperatureC,
		HeartRateBPM: input.HeartRateBPM,
		Notes:        input.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// Sweep is the on-demand no-show sweep. It shares one implementation with
// the cron job registered at startup.
func (ac *AppointmentController) Sweep(c *gin.Context) {
	result, err := ac.appointments.SweepNoShows(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SweepScheduled is the unauthenticated entry point for an external
// scheduler, guarded by the shared sweep token.
func (ac *AppointmentController) SweepScheduled(c *gin.Context) {
	if ac.sweepToken == "" || c.GetHeader("X-Sweep-Token") != ac.sweepToken {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid sweep token")
		return
	}
	ac.Sweep(c)
}
