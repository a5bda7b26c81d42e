package settlement

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dvidal/divvy/pkg/middleware"
	"github.com/dvidal/divvy/pkg/response"
)

// Handler handles HTTP requests for settlement operations
type Handler struct {
	service *Service
}

// NewHandler creates a new settlement handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for settlement endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/balances", h.GetNetBalances)
	r.Get("/balances/{userId}", h.GetNetBalanceWithUser)
	r.Get("/{id}", h.GetByID)
	r.Post("/{id}/pay", h.MarkAsPaid)
	r.Post("/{id}/confirm", h.Confirm)
	r.Post("/{id}/reject", h.Reject)

	return r
}

// Create handles POST /settlements
// @Summary      Create a settlement
// @Description  Settle up with another user; payer and amount come from the net balance
// @Tags         settlements
// @Accept       json
// @Produce      json
// @Param        request body CreateSettlementRequest true "Settlement request"
// @Success      201 {object} response.APIResponse{data=SettlementResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /settlements [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	initiatorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if req.OtherUserID == "" {
		response.BadRequest(w, "Other user ID is required")
		return
	}

	settlement, err := h.service.CreateSettlement(r.Context(), initiatorID, &req)
	if err != nil {
		if errors.Is(err, ErrAlreadySettled) || errors.Is(err, ErrCannotSettleSelf) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create settlement")
		return
	}

	response.JSON(w, http.StatusCreated, settlement.ToResponse())
}

// GetByID handles GET /settlements/{id}
// @Summary      Get settlement by ID
// @Tags         settlements
// @Produce      json
// @Param        id path string true "Settlement ID"
// @Success      200 {object} response.APIResponse{data=SettlementResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /settlements/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	settlement, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrSettlementNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get settlement")
		return
	}

	response.JSON(w, http.StatusOK, settlement.ToResponse())
}

// List handles GET /settlements
// @Summary      List my settlements
// @Tags         settlements
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]SettlementResponse}
// @Router       /settlements [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	settlements, total, err := h.service.ListByUserID(r.Context(), userID, page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list settlements")
		return
	}

	settlementResponses := make([]*SettlementResponse, len(settlements))
	for i, s := range settlements {
		settlementResponses[i] = s.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, settlementResponses, meta)
}

// MarkAsPaid handles POST /settlements/{id}/pay
// @Summary      Mark settlement as paid
// @Tags         settlements
// @Produce      json
// @Param        id path string true "Settlement ID"
// @Success      200 {object} response.APIResponse{data=SettlementResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /settlements/{id}/pay [post]
func (h *Handler) MarkAsPaid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	settlement, err := h.service.MarkAsPaid(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, ErrSettlementNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrNotPayer) || errors.Is(err, ErrInvalidStatusChange) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to mark settlement as paid")
		return
	}

	response.JSON(w, http.StatusOK, settlement.ToResponse())
}

// Confirm handles POST /settlements/{id}/confirm
// @Summary      Confirm settlement receipt
// @Tags         settlements
// @Produce      json
// @Param        id path string true "Settlement ID"
// @Success      200 {object} response.APIResponse{data=SettlementResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /settlements/{id}/confirm [post]
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	settlement, err := h.service.Confirm(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, ErrSettlementNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrNotReceiver) || errors.Is(err, ErrInvalidStatusChange) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to confirm settlement")
		return
	}

	response.JSON(w, http.StatusOK, settlement.ToResponse())
}

// Reject handles POST /settlements/{id}/reject
// @Summary      Reject a settlement
// @Tags         settlements
// @Produce      json
// @Param        id path string true "Settlement ID"
// @Success      200 {object} response.APIResponse{data=SettlementResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /settlements/{id}/reject [post]
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	settlement, err := h.service.Reject(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, ErrSettlementNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrNotReceiver) || errors.Is(err, ErrInvalidStatusChange) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to reject settlement")
		return
	}

	response.JSON(w, http.StatusOK, settlement.ToResponse())
}

// GetNetBalances handles GET /settlements/balances
// @Summary      Get my net balances
// @Description  Net amount owed between me and every other user with open debts
// @Tags         settlements
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]NetBalanceResponse}
// @Router       /settlements/balances [get]
func (h *Handler) GetNetBalances(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	balances, err := h.service.GetNetBalances(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to get net balances")
		return
	}

	response.JSON(w, http.StatusOK, balances)
}

// GetNetBalanceWithUser handles GET /settlements/balances/{userId}
// @Summary      Get net balance with a user
// @Tags         settlements
// @Produce      json
// @Param        userId path string true "Other user ID"
// @Success      200 {object} response.APIResponse{data=NetBalanceResponse}
// @Router       /settlements/balances/{userId} [get]
func (h *Handler) GetNetBalanceWithUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	otherUserID := chi.URLParam(r, "userId")

	balance, err := h.service.GetNetBalanceWithUser(r.Context(), userID, otherUserID)
	if err != nil {
		response.InternalError(w, "Failed to get net balance")
		return
	}

	response.JSON(w, http.StatusOK, balance)
}
