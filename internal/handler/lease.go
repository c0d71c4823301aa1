package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/segyhp/rent-engine/internal/domain"
	"github.com/segyhp/rent-engine/internal/report"
	customError "github.com/segyhp/rent-engine/pkg/errors"
	"github.com/segyhp/rent-engine/pkg/response"
)

// LeaseService is the part of service.LeaseService the HTTP layer uses.
type LeaseService interface {
	CreateContract(ctx context.Context, request *domain.CreateContractRequest) (*domain.Contract, error)
	GetContract(ctx context.Context, id uuid.UUID) (*domain.Contract, error)
	ListContracts(ctx context.Context, status *domain.ContractStatus) ([]*domain.Contract, error)
	ActivateContract(ctx context.Context, id uuid.UUID) (*domain.ActivateContractResponse, error)
	TerminateContract(ctx context.Context, id uuid.UUID) (*domain.Contract, error)
	SuspendContract(ctx context.Context, id uuid.UUID) (*domain.Contract, error)
	ResumeContract(ctx context.Context, id uuid.UUID) (*domain.Contract, error)
	RenewContract(ctx context.Context, id uuid.UUID, request *domain.RenewContractRequest) (*domain.RenewContractResponse, error)
	GetContractStatus(ctx context.Context, id uuid.UUID, locale string) (domain.ContractView, error)
	ExpireContracts(ctx context.Context, asOf time.Time) (int, error)
	ListCollections(ctx context.Context, filter domain.CollectionFilter, locale string) ([]domain.CollectionPaymentView, error)
	ListContractCollections(ctx context.Context, contractID uuid.UUID, locale string) ([]domain.CollectionPaymentView, error)
	CollectionsDigest(ctx context.Context) (*domain.CollectionDigest, error)
	RecordCollection(ctx context.Context, id uuid.UUID, request *domain.RecordCollectionRequest) (*domain.CollectionPaymentView, error)
	PostponePayment(ctx context.Context, id uuid.UUID, request *domain.PostponePaymentRequest) (*domain.CollectionPaymentView, error)
	DeletePayment(ctx context.Context, id uuid.UUID) error
	ListSupplyPayments(ctx context.Context, contractID uuid.UUID, locale string) ([]domain.SupplyPaymentView, error)
	ListWorthCollectingSupplies(ctx context.Context, locale string) ([]domain.SupplyPaymentView, error)
	DeleteSupplyPayment(ctx context.Context, id uuid.UUID) error
	RecordSupplyPayment(ctx context.Context, id uuid.UUID, request *domain.RecordSupplyPaymentRequest) (*domain.SupplyPaymentView, error)
	GraceDays(ctx context.Context) (int, error)
	SetGraceDays(ctx context.Context, days int) error
}

type LeaseHandler struct {
	service   LeaseService
	validator *validator.Validate
	reports   *report.Generator
	now       func() time.Time
	log       zerolog.Logger
}

// NewLeaseHandler builds the handler; loc is the business timezone that decides "today".
func NewLeaseHandler(service LeaseService, loc *time.Location, log zerolog.Logger) *LeaseHandler {
	return &LeaseHandler{
		service:   service,
		validator: validator.New(),
		reports:   report.NewGenerator(),
		now:       func() time.Time { return time.Now().In(loc) },
		log:       log,
	}
}

// CreateContract handles POST /contracts
func (h *LeaseHandler) CreateContract(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateContractRequest
	if !h.decode(w, r, &request) {
		return
	}

	contract, err := h.service.CreateContract(r.Context(), &request)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Created(w, contract)
}

// ListContracts handles GET /contracts?status=
func (h *LeaseHandler) ListContracts(w http.ResponseWriter, r *http.Request) {
	var filter *domain.ContractStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		st := domain.ContractStatus(raw)
		if !domain.ContractKindRental.Allows(st) && !domain.ContractKindSupply.Allows(st) {
			h.writeError(w, customError.WrapUnrecognizedEnumValue("contract_status", raw))
			return
		}
		filter = &st
	}

	contracts, err := h.service.ListContracts(r.Context(), filter)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Success(w, contracts)
}

// GetContract handles GET /contracts/{id}
func (h *LeaseHandler) GetContract(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	contract, err := h.service.GetContract(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Success(w, contract)
}

// GetContractStatus handles GET /contracts/{id}/status
func (h *LeaseHandler) GetContractStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	view, err := h.service.GetContractStatus(r.Context(), id, locale(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Success(w, view)
}

// ActivateContract handles POST /contracts/{id}/activate
func (h *LeaseHandler) ActivateContract(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	result, err := h.service.ActivateContract(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *LeaseHandler) TerminateContract(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, h.service.TerminateContract)
}

func (h *LeaseHandler) SuspendContract(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, h.service.SuspendContract)
}

func (h *LeaseHandler) ResumeContract(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, h.service.ResumeContract)
}

func (h *LeaseHandler) changeStatus(w http.ResponseWriter, r *http.Request, action func(context.Context, uuid.UUID) (*domain.Contract, error)) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	contract, err := action(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Success(w, contract)
}

// RenewContract handles POST /contracts/{id}/renew
func (h *LeaseHandler) RenewContract(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var request domain.RenewContractRequest
	if !h.decode(w, r, &request) {
		return
	}

	result, err := h.service.RenewContract(r.Context(), id, &request)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Created(w, result)
}

// ExpireContracts handles POST /contracts/expire, the on-demand form of the nightly job
func (h *LeaseHandler) ExpireContracts(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.ExpireContracts(r.Context(), h.now())
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Success(w, map[string]int{"expired": count})
}

// ListContractCollections handles GET /contracts/{id}/collections
func (h *LeaseHandler) ListContractCollections(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	views, err := h.service.ListContractCollections(r.Context(), id, locale(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Success(w, views)
}

// ListSupplyPayments handles GET /contracts/{id}/supply-payments
func (h *LeaseHandler) ListSupplyPayments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	views, err := h.service.ListSupplyPayments(r.Context(), id, locale(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Success(w, views)
}

// ListCollections handles GET /collections?filter=
func (h *LeaseHandler) ListCollections(w http.ResponseWriter, r *http.Request) {
	filter, ok := collectionFilter(w, r)
	if !ok {
		return
	}
	views, err := h.service.ListCollections(r.Context(), filter, locale(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Success(w, views)
}

// CollectionsDigest handles GET /collections/digest
func (h *LeaseHandler) CollectionsDigest(w http.ResponseWriter, r *http.Request) {
	digest, err := h.service.CollectionsDigest(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Success(w, digest)
}

// ExportCollections handles GET /reports/collections.xlsx?filter=
func (h *LeaseHandler) ExportCollections(w http.ResponseWriter, r *http.Request) {
	filter, ok := collectionFilter(w, r)
	if !ok {
		return
	}
	loc := locale(r)
	views, err := h.service.ListCollections(r.Context(), filter, loc)
	if err != nil {
		h.writeError(w, err)
		return
	}

	now := h.now()
	data, err := h.reports.Collections(views, filter, now, loc)
	if err != nil {
		h.log.Error().Err(err).Msg("rendering collections report")
		response.InternalServerError(w, "Failed to render report", nil)
		return
	}

	fileName := fmt.Sprintf("collections_%s_%s.xlsx", filter, now.Format("20060102_150405"))
	w.Header().Set("Content-Type", report.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// RecordCollection handles POST /collections/{id}/collect
func (h *LeaseHandler) RecordCollection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var request domain.RecordCollectionRequest
	if r.ContentLength != 0 && !h.decode(w, r, &request) {
		return
	}

	view, err := h.service.RecordCollection(r.Context(), id, &request)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Success(w, view)
}

// PostponePayment handles POST /collections/{id}/postpone
func (h *LeaseHandler) PostponePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var request domain.PostponePaymentRequest
	if !h.decode(w, r, &request) {
		return
	}

	view, err := h.service.PostponePayment(r.Context(), id, &request)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Success(w, view)
}

// DeletePayment handles DELETE /collections/{id}; it always refuses.
func (h *LeaseHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeletePayment(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSupplyPaymentsByFilter handles GET /supply-payments?filter=worth_collecting
func (h *LeaseHandler) ListSupplyPaymentsByFilter(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("filter")
	if raw != "" && raw != string(domain.SupplyStatusWorthCollecting) {
		response.CodedError(w, http.StatusBadRequest, customError.ErrCodeUnrecognizedEnumValue,
			"Unrecognized filter "+strconv.Quote(raw), nil)
		return
	}
	views, err := h.service.ListWorthCollectingSupplies(r.Context(), locale(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Success(w, views)
}

// DeleteSupplyPayment handles DELETE /supply-payments/{id}; it always refuses.
func (h *LeaseHandler) DeleteSupplyPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteSupplyPayment(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecordSupplyPayment handles POST /supply-payments/{id}/pay
func (h *LeaseHandler) RecordSupplyPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var request domain.RecordSupplyPaymentRequest
	if r.ContentLength != 0 && !h.decode(w, r, &request) {
		return
	}

	view, err := h.service.RecordSupplyPayment(r.Context(), id, &request)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Success(w, view)
}

// GetGraceDays handles GET /settings/grace-days
func (h *LeaseHandler) GetGraceDays(w http.ResponseWriter, r *http.Request) {
	days, err := h.service.GraceDays(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Success(w, domain.GraceDaysRequest{GraceDays: days})
}

// SetGraceDays handles PUT /settings/grace-days
func (h *LeaseHandler) SetGraceDays(w http.ResponseWriter, r *http.Request) {
	var request domain.GraceDaysRequest
	if !h.decode(w, r, &request) {
		return
	}
	if err := h.service.SetGraceDays(r.Context(), request.GraceDays); err != nil {
		h.writeError(w, err)
		return
	}
	response.Success(w, request)
}

// decode reads and validates a JSON body, writing a 400 on failure.
func (h *LeaseHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return false
	}
	if err := h.validator.Struct(dst); err != nil {
		response.CodedError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", err)
		return false
	}
	return true
}

func (h *LeaseHandler) writeError(w http.ResponseWriter, err error) {
	code := customError.Code(err)
	statusCode := statusFor(code)
	if statusCode >= http.StatusInternalServerError {
		h.log.Error().Err(err).Str("code", code).Msg("request failed")
		response.CodedError(w, statusCode, code, "Internal error", nil)
		return
	}
	response.CodedError(w, statusCode, code, err.Error(), nil)
}

func statusFor(code string) int {
	switch code {
	case customError.ErrCodeContractNotFound, customError.ErrCodePaymentNotFound:
		return http.StatusNotFound
	case customError.ErrCodeInvalidScheduleConfiguration, customError.ErrCodeUnrecognizedEnumValue,
		customError.ErrCodeInvalidDelayDuration, customError.ErrCodeInvalidAmount,
		customError.ErrCodeInvalidGraceDays:
		return http.StatusBadRequest
	case customError.ErrCodeIncompleteRecord:
		return http.StatusUnprocessableEntity
	case customError.ErrCodePaymentAlreadyCollected, customError.ErrCodeInvalidContractTransition:
		return http.StatusConflict
	case customError.ErrCodePaymentDeletionForbidden:
		return http.StatusForbidden
	case customError.ErrCodeCacheError:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := mux.Vars(r)["id"]
	id, err := uuid.Parse(raw)
	if err != nil {
		response.BadRequest(w, "Invalid id "+strconv.Quote(raw), err)
		return uuid.Nil, false
	}
	return id, true
}

func collectionFilter(w http.ResponseWriter, r *http.Request) (domain.CollectionFilter, bool) {
	raw := r.URL.Query().Get("filter")
	filter, ok := domain.ParseCollectionFilter(raw)
	if !ok {
		response.CodedError(w, http.StatusBadRequest, customError.ErrCodeUnrecognizedEnumValue,
			"Unrecognized filter "+strconv.Quote(raw), nil)
		return "", false
	}
	return filter, true
}

// locale picks ?locale= first, then the primary Accept-Language tag.
func locale(r *http.Request) string {
	if l := r.URL.Query().Get("locale"); l != "" {
		return l
	}
	header := r.Header.Get("Accept-Language")
	if header == "" {
		return ""
	}
	tag := strings.TrimSpace(strings.SplitN(header, ",", 2)[0])
	tag = strings.SplitN(tag, ";", 2)[0]
	return strings.ToLower(strings.SplitN(tag, "-", 2)[0])
}
