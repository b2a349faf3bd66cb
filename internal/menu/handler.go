package menu

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

// Handler exposes the menu endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes attaches menu routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/performance", h.handlePerformance)
	r.Post("/sales", h.handleRecordSale)
}

func (h *Handler) handlePerformance(w http.ResponseWriter, r *http.Request) {
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
	report, err := h.service.Performance(r.Context(), identity.CafeID, days)
	if err != nil {
		h.logger.Error("build menu performance", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

type recordSaleRequest struct {
	MenuItemID   string `json:"menuItemId" validate:"required,uuid"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	QuantitySold int    `json:"quantitySold" validate:"required,min=1"`
}

type recordSaleResponse struct {
	ID           string `json:"id"`
	MenuItemID   string `json:"menuItemId"`
	Date         string `json:"date"`
	QuantitySold int    `json:"quantitySold"`
}

func (h *Handler) handleRecordSale(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}
	var req recordSaleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	itemID, err := uuid.Parse(req.MenuItemID)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "menuItemId must be a UUID")
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "date must be YYYY-MM-DD")
		return
	}

	sale, err := h.service.RecordSale(r.Context(), identity.CafeID, itemID, date, req.QuantitySold)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, recordSaleResponse{
		ID:           sale.ID.String(),
		MenuItemID:   sale.MenuItemID.String(),
		Date:         sale.Date.Format("2006-01-02"),
		QuantitySold: sale.QuantitySold,
	})
}
