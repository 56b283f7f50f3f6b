package customerhandler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/koyif/invoicedash/internal/domain"
	"github.com/koyif/invoicedash/pkg/dto"
	"github.com/koyif/invoicedash/pkg/logger"
	"github.com/samber/lo"
)

type CustomerService interface {
	Customers(ctx context.Context) ([]domain.Customer, error)
}

type CustomerHandler struct {
	srv CustomerService
}

func New(srv CustomerService) *CustomerHandler {
	return &CustomerHandler{
		srv: srv,
	}
}

func (h CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.srv.Customers(r.Context())
	if err != nil {
		logger.Log.Error("error while fetching customers", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	dtos := lo.Map(customers, func(customer domain.Customer, _ int) dto.Customer {
		return dto.Customer{
			ID:    customer.ID,
			Name:  customer.Name,
			Email: customer.Email,
		}
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dtos)
	if err != nil {
		logger.Log.Error("error while encoding customers to JSON", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}
