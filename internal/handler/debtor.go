package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/segyhp/debt-ledger/internal/domain"
	"github.com/segyhp/debt-ledger/internal/ledger"
	"github.com/segyhp/debt-ledger/internal/service"
	"github.com/segyhp/debt-ledger/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// LedgerService is what the HTTP layer needs from the ledger
type LedgerService interface {
	View(ctx context.Context, f ledger.Filter) (*domain.LedgerView, error)
	Originate(ctx context.Context, req domain.OriginateRequest) (*domain.Debtor, error)
	Get(ctx context.Context, id string) (*domain.Debtor, error)
	Update(ctx context.Context, id string, patch domain.DebtorPatch) error
	Delete(ctx context.Context, id string) error
	MarkPaid(ctx context.Context, id string) error
	Metrics(ctx context.Context) (*domain.Metrics, error)
	Quote(req domain.QuoteRequest) (*domain.Quote, error)
}

type Exporter interface {
	ExportXLSX(ctx context.Context, f ledger.Filter) ([]byte, string, error)
}

type DebtorHandler struct {
	service   LedgerService
	exporter  Exporter
	validator *validator.Validate
}

func NewDebtorHandler(service LedgerService, exporter Exporter) *DebtorHandler {
	return &DebtorHandler{
		service:   service,
		exporter:  exporter,
		validator: NewValidator(),
	}
}

type mutationResult struct {
	ID     string `json:"id"`
	Action string `json:"action"`
}

// Register mounts the ledger routes on r
func (h *DebtorHandler) Register(r *mux.Router) {
	// the export route has to win over /debtors/{id}
	r.HandleFunc("/debtors/export.xlsx", h.Export).Methods(http.MethodGet)
	r.HandleFunc("/debtors", h.List).Methods(http.MethodGet)
	r.HandleFunc("/debtors", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/debtors/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/debtors/{id}", h.Update).Methods(http.MethodPatch)
	r.HandleFunc("/debtors/{id}", h.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/debtors/{id}/pay", h.MarkPaid).Methods(http.MethodPost)
	r.HandleFunc("/metrics", h.Metrics).Methods(http.MethodGet)
	r.HandleFunc("/quotes", h.Quote).Methods(http.MethodPost)
}

// List returns the filtered, sorted ledger view with the portfolio metrics
func (h *DebtorHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	view, err := h.service.View(r.Context(), filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, view)
}

func (h *DebtorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.OriginateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON payload", err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Validation failed", errors.New(describeValidation(err)))
		return
	}

	debtor, err := h.service.Originate(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Created(w, service.ToRow(*debtor))
}

func (h *DebtorHandler) Get(w http.ResponseWriter, r *http.Request) {
	debtor, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, service.ToRow(*debtor))
}

// Update applies a partial edit; an unknown id is accepted and changes nothing
func (h *DebtorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req domain.UpdateDebtorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON payload", err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Validation failed", errors.New(describeValidation(err)))
		return
	}

	if err := h.service.Update(r.Context(), id, req.ToPatch()); err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, mutationResult{ID: id, Action: "updated"})
}

func (h *DebtorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, mutationResult{ID: id, Action: "deleted"})
}

func (h *DebtorHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.service.MarkPaid(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, mutationResult{ID: id, Action: "paid"})
}

func (h *DebtorHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.service.Metrics(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, metrics)
}

// Quote runs the interest calculator without storing anything
func (h *DebtorHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req domain.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON payload", err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Validation failed", errors.New(describeValidation(err)))
		return
	}

	quote, err := h.service.Quote(req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response.Success(w, quote)
}

func (h *DebtorHandler) Export(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	data, fileName, err := h.exporter.ExportXLSX(r.Context(), filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(fileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *DebtorHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if response.StatusFor(err) >= http.StatusInternalServerError {
		LoggerFromContext(r.Context()).Error("Ledger operation failed", "error", err)
	}
	response.FromError(w, err)
}

func filterFromQuery(r *http.Request) (ledger.Filter, error) {
	q := r.URL.Query()
	return ledger.ParseFilter(q.Get("name"), q.Get("status"), q.Get("due_date"))
}
