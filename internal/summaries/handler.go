package summaries

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/profitpulse/profitpulse/internal/platform/httpx"
	"github.com/profitpulse/profitpulse/internal/shared"
)

// Handler exposes the daily summary endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes attaches summary routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/", h.handleCreate)
}

type createSummaryRequest struct {
	Date             string  `json:"date" validate:"required,datetime=2006-01-02"`
	TotalRevenue     float64 `json:"totalRevenue" validate:"gte=0"`
	FoodCost         float64 `json:"foodCost" validate:"gte=0"`
	LabourCost       float64 `json:"labourCost" validate:"gte=0"`
	OtherCosts       float64 `json:"otherCosts" validate:"gte=0"`
	CustomerCount    int     `json:"customerCount" validate:"gte=0"`
	TransactionCount int     `json:"transactionCount" validate:"gte=0"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}
	var req createSummaryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "date must be YYYY-MM-DD")
		return
	}

	summary, err := h.service.Create(r.Context(), identity.CafeID, DailySummary{
		Date:             date,
		TotalRevenue:     req.TotalRevenue,
		FoodCost:         req.FoodCost,
		LabourCost:       req.LabourCost,
		OtherCosts:       req.OtherCosts,
		CustomerCount:    req.CustomerCount,
		TransactionCount: req.TransactionCount,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, summary)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
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
	list, err := h.service.List(r.Context(), identity.CafeID, days)
	if err != nil {
		h.logger.Error("list summaries", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []DailySummary{}
	}
	httpx.JSON(w, http.StatusOK, list)
}
