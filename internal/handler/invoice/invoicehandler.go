package invoicehandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/koyif/invoicedash/internal/domain"
	"github.com/koyif/invoicedash/internal/service"
	"github.com/koyif/invoicedash/pkg/dto"
	"github.com/koyif/invoicedash/pkg/logger"
	"github.com/samber/lo"
)

type InvoiceService interface {
	Create(ctx context.Context, fields dto.InvoiceFields) error
	Update(ctx context.Context, id string, fields dto.InvoiceFields) error
	Delete(ctx context.Context, id string) domain.Message
	List(ctx context.Context, query string, page int) ([]domain.InvoiceRow, int, error)
}

type Views interface {
	Get(key string) ([]byte, bool)
	Put(key string, payload []byte)
}

type InvoiceHandler struct {
	srv   InvoiceService
	views Views
}

func New(srv InvoiceService, views Views) *InvoiceHandler {
	return &InvoiceHandler{
		srv:   srv,
		views: views,
	}
}

func (h InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	key := service.InvoiceListPath + "?" + url.Values{
		"page":  {strconv.Itoa(page)},
		"query": {query},
	}.Encode()
	if payload, ok := h.views.Get(key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(payload); err != nil {
			logger.Log.Error("error writing cached invoice list", logger.Error(err))
		}
		return
	}

	invoices, totalPages, err := h.srv.List(r.Context(), query, page)
	if err != nil {
		logger.Log.Error("error while fetching invoices", logger.String("query", query), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	resp := dto.InvoicePage{
		Invoices: lo.Map(invoices, func(row domain.InvoiceRow, _ int) dto.Invoice {
			return dto.Invoice{
				ID:       row.ID,
				Customer: row.CustomerName,
				Email:    row.CustomerEmail,
				Amount:   row.AmountCents,
				Status:   string(row.Status),
				Date:     row.Date,
			}
		}),
		Page:       page,
		TotalPages: totalPages,
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		logger.Log.Error("error while encoding invoices to JSON", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.views.Put(key, payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		logger.Log.Error("error writing invoice list", logger.Error(err))
	}
}

func (h InvoiceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	form, ok := invoiceForm(w, r)
	if !ok {
		return
	}

	fields, vErr := form.Validate(dto.ModeCreate)
	if vErr != nil {
		logger.Log.Warn("invalid invoice form", logger.String("message", vErr.Message))
		writeJSON(w, http.StatusUnprocessableEntity, vErr)
		return
	}

	if err := h.srv.Create(r.Context(), fields); err != nil {
		writeStoreError(w, err)
		return
	}

	http.Redirect(w, r, service.InvoiceListPath, http.StatusSeeOther)
}

func (h InvoiceHandler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	form, ok := invoiceForm(w, r)
	if !ok {
		return
	}

	fields, vErr := form.Validate(dto.ModeUpdate)
	if vErr != nil {
		logger.Log.Warn("invalid invoice form", logger.String("invoice_id", id), logger.String("message", vErr.Message))
		writeJSON(w, http.StatusUnprocessableEntity, vErr)
		return
	}

	if err := h.srv.Update(r.Context(), id, fields); err != nil {
		writeStoreError(w, err)
		return
	}

	http.Redirect(w, r, service.InvoiceListPath, http.StatusSeeOther)
}

func (h InvoiceHandler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	msg := h.srv.Delete(r.Context(), id)

	writeJSON(w, http.StatusOK, map[string]string{"message": msg.Text})
}

func invoiceForm(w http.ResponseWriter, r *http.Request) (dto.InvoiceForm, bool) {
	if err := r.ParseForm(); err != nil {
		logger.Log.Warn("error while parsing invoice form", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return dto.InvoiceForm{}, false
	}

	return dto.InvoiceForm{
		CustomerID: r.PostFormValue("customerId"),
		Amount:     r.PostFormValue("amount"),
		Status:     r.PostFormValue("status"),
	}, true
}

func writeStoreError(w http.ResponseWriter, err error) {
	var storeErr *domain.StoreError
	if errors.As(err, &storeErr) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": storeErr.Message().Text})
		return
	}

	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Error("error encoding response", logger.Error(err))
	}
}
