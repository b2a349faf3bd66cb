package staff

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/profitpulse/profitpulse/internal/platform/httpx"
	"github.com/profitpulse/profitpulse/internal/shared"
)

// Handler exposes the staff endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes attaches staff routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/costs", h.handleCosts)
	r.Post("/shifts", h.handleLogShift)
}

func (h *Handler) handleCosts(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}
	days, err := httpx.DaysParam(r, 7)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	report, err := h.service.Costs(r.Context(), identity.CafeID, days)
	if err != nil {
		h.logger.Error("build staff costs", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

type logShiftRequest struct {
	StaffMemberID string  `json:"staffMemberId" validate:"required,uuid"`
	Date          string  `json:"date" validate:"required,datetime=2006-01-02"`
	HoursWorked   float64 `json:"hoursWorked" validate:"required,gt=0,lte=24"`
	OvertimeHours float64 `json:"overtimeHours" validate:"gte=0,lte=24"`
}

type logShiftResponse struct {
	ID            string  `json:"id"`
	StaffMemberID string  `json:"staffMemberId"`
	Date          string  `json:"date"`
	HoursWorked   float64 `json:"hoursWorked"`
	OvertimeHours float64 `json:"overtimeHours"`
	TotalCost     float64 `json:"totalCost"`
}

func (h *Handler) handleLogShift(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}
	var req logShiftRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	staffID, err := uuid.Parse(req.StaffMemberID)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "staffMemberId must be a UUID")
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "date must be YYYY-MM-DD")
		return
	}

	shift, err := h.service.LogShift(r.Context(), identity.CafeID, staffID, date,
		req.HoursWorked, req.OvertimeHours)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, logShiftResponse{
		ID:            shift.ID.String(),
		StaffMemberID: shift.StaffMemberID.String(),
		Date:          shift.Date.Format("2006-01-02"),
		HoursWorked:   shift.HoursWorked,
		OvertimeHours: shift.OvertimeHours,
		TotalCost:     shift.TotalCost,
	})
}
