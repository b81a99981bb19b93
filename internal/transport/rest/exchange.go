package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/boxswap/boxswap-backend/internal/domain"
	"github.com/boxswap/boxswap-backend/internal/service/exchange"
)

type exchangeService interface {
	Propose(ctx context.Context, input exchange.ProposeInput) (*domain.Exchange, error)
	Accept(ctx context.Context, exchangeID uuid.UUID) (*domain.Exchange, error)
	AssignBox(ctx context.Context, exchangeID uuid.UUID) (*exchange.AssignResult, error)
	RequestBoxOpen(ctx context.Context, exchangeID uuid.UUID) (*exchange.CodeGrant, error)
	ConsumeBoxOpen(ctx context.Context, input exchange.ConsumeOpenInput) (*domain.Exchange, error)
	Cancel(ctx context.Context, exchangeID uuid.UUID) (*domain.Exchange, error)
	GetStatus(ctx context.Context, exchangeID uuid.UUID) (*exchange.StatusView, error)
	List(ctx context.Context, input exchange.ListInput) ([]*domain.Exchange, error)
	ListIDs(ctx context.Context, input exchange.ListInput) ([]uuid.UUID, error)
}

// ExchangeHandler serves the exchange lifecycle endpoints.
type ExchangeHandler struct {
	svc exchangeService
	log *slog.Logger
}

// NewExchangeHandler creates an ExchangeHandler.
func NewExchangeHandler(log *slog.Logger, svc exchangeService) *ExchangeHandler {
	return &ExchangeHandler{svc: svc, log: log.With("handler", "exchange")}
}

// Register mounts the exchange routes on mux.
func (h *ExchangeHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/exchanges", h.Propose)
	mux.HandleFunc("GET /v1/exchanges", h.List)
	mux.HandleFunc("GET /v1/exchanges/{id}", h.GetStatus)
	mux.HandleFunc("POST /v1/exchanges/{id}/accept", h.Accept)
	mux.HandleFunc("POST /v1/exchanges/{id}/box", h.AssignBox)
	mux.HandleFunc("POST /v1/exchanges/{id}/open-codes", h.RequestBoxOpen)
	mux.HandleFunc("POST /v1/exchanges/{id}/open", h.ConsumeBoxOpen)
	mux.HandleFunc("POST /v1/exchanges/{id}/cancel", h.Cancel)
}

type proposeRequest struct {
	CounterpartID uuid.UUID   `json:"counterpart_id"`
	ItemIDs       []uuid.UUID `json:"item_ids"`
}

type consumeOpenRequest struct {
	Code string `json:"code"`
}

type exchangeResponse struct {
	ID              uuid.UUID  `json:"id"`
	CreatorID       uuid.UUID  `json:"creator_id"`
	CounterpartID   uuid.UUID  `json:"counterpart_id"`
	Status          string     `json:"status"`
	BoxID           *uuid.UUID `json:"box_id,omitempty"`
	DeadlineAt      *time.Time `json:"deadline_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	StatusChangedAt time.Time  `json:"status_changed_at"`
}

type codeGrantResponse struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

type assignBoxResponse struct {
	Exchange    exchangeResponse  `json:"exchange"`
	BoxLabel    string            `json:"box_label"`
	DepositCode codeGrantResponse `json:"deposit_code"`
}

type statusResponse struct {
	ID              uuid.UUID  `json:"id"`
	Status          string     `json:"status"`
	Role            string     `json:"role"`
	BoxID           *uuid.UUID `json:"box_id,omitempty"`
	DeadlineAt      *time.Time `json:"deadline_at,omitempty"`
	CodeExpiresAt   *time.Time `json:"code_expires_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	StatusChangedAt time.Time  `json:"status_changed_at"`
}

func toExchangeResponse(ex *domain.Exchange) exchangeResponse {
	return exchangeResponse{
		ID:              ex.ID,
		CreatorID:       ex.CreatorID,
		CounterpartID:   ex.CounterpartID,
		Status:          ex.Status.String(),
		BoxID:           ex.BoxID,
		DeadlineAt:      ex.DeadlineAt,
		CreatedAt:       ex.CreatedAt,
		StatusChangedAt: ex.StatusChangedAt,
	}
}

// Propose handles POST /v1/exchanges.
func (h *ExchangeHandler) Propose(w http.ResponseWriter, r *http.Request) {
	var req proposeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	ex, err := h.svc.Propose(r.Context(), exchange.ProposeInput{
		CounterpartID: req.CounterpartID,
		ItemIDs:       req.ItemIDs,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExchangeResponse(ex))
}

// Accept handles POST /v1/exchanges/{id}/accept.
func (h *ExchangeHandler) Accept(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	ex, err := h.svc.Accept(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toExchangeResponse(ex))
}

// AssignBox handles POST /v1/exchanges/{id}/box.
func (h *ExchangeHandler) AssignBox(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	res, err := h.svc.AssignBox(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, assignBoxResponse{
		Exchange: toExchangeResponse(res.Exchange),
		BoxLabel: res.Box.Label,
		DepositCode: codeGrantResponse{
			Code:      res.DepositCode.Code,
			ExpiresAt: res.DepositCode.ExpiresAt,
		},
	})
}

// RequestBoxOpen handles POST /v1/exchanges/{id}/open-codes.
func (h *ExchangeHandler) RequestBoxOpen(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	grant, err := h.svc.RequestBoxOpen(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, codeGrantResponse{
		Code:      grant.Code,
		ExpiresAt: grant.ExpiresAt,
	})
}

// ConsumeBoxOpen handles POST /v1/exchanges/{id}/open.
func (h *ExchangeHandler) ConsumeBoxOpen(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var req consumeOpenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	ex, err := h.svc.ConsumeBoxOpen(r.Context(), exchange.ConsumeOpenInput{
		ExchangeID: id,
		Code:       req.Code,
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toExchangeResponse(ex))
}

// Cancel handles POST /v1/exchanges/{id}/cancel.
func (h *ExchangeHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	ex, err := h.svc.Cancel(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toExchangeResponse(ex))
}

// GetStatus handles GET /v1/exchanges/{id}.
func (h *ExchangeHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	view, err := h.svc.GetStatus(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{
		ID:              view.ID,
		Status:          view.Status.String(),
		Role:            view.Role.String(),
		BoxID:           view.BoxID,
		DeadlineAt:      view.DeadlineAt,
		CodeExpiresAt:   view.CodeExpiresAt,
		CreatedAt:       view.CreatedAt,
		StatusChangedAt: view.StatusChangedAt,
	})
}

// List handles GET /v1/exchanges. With ids_only=true only the IDs are
// returned, for clients polling for changes.
func (h *ExchangeHandler) List(w http.ResponseWriter, r *http.Request) {
	input, err := listInputFromQuery(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if r.URL.Query().Get("ids_only") == "true" {
		ids, err := h.svc.ListIDs(r.Context(), input)
		if err != nil {
			writeError(w, r, h.log, err)
			return
		}
		if ids == nil {
			ids = []uuid.UUID{}
		}
		writeJSON(w, http.StatusOK, map[string][]uuid.UUID{"ids": ids})
		return
	}

	exchanges, err := h.svc.List(r.Context(), input)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	out := make([]exchangeResponse, len(exchanges))
	for i, ex := range exchanges {
		out[i] = toExchangeResponse(ex)
	}
	writeJSON(w, http.StatusOK, map[string][]exchangeResponse{"exchanges": out})
}

func listInputFromQuery(r *http.Request) (exchange.ListInput, error) {
	var input exchange.ListInput
	q := r.URL.Query()

	if s := q.Get("status"); s != "" {
		status := domain.ExchangeStatus(s)
		input.Status = &status
	}
	if l := q.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil {
			return input, domain.NewValidationError("limit", "must be an integer")
		}
		input.Limit = n
	}
	if o := q.Get("offset"); o != "" {
		n, err := strconv.Atoi(o)
		if err != nil {
			return input, domain.NewValidationError("offset", "must be an integer")
		}
		input.Offset = n
	}
	return input, nil
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, domain.NewValidationError("id", "must be a UUID")
	}
	return id, nil
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return domain.NewValidationError("body", "invalid JSON")
	}
	return nil
}
