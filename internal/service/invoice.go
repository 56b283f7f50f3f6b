package service

import (
	"context"
	"time"

	"github.com/koyif/invoicedash/internal/domain"
	"github.com/koyif/invoicedash/pkg/dto"
	"github.com/koyif/invoicedash/pkg/logger"
)

// InvoiceListPath is the view every write invalidates and the target of
// post-write redirects.
const InvoiceListPath = "/dashboard/invoices"

const pageSize = 6

type InvoiceRepository interface {
	CreateInvoice(ctx context.Context, customerID string, amountCents int64, status domain.InvoiceStatus, date string) (string, error)
	UpdateInvoice(ctx context.Context, id, customerID string, amountCents int64, status domain.InvoiceStatus) error
	DeleteInvoice(ctx context.Context, id string) error
	Invoices(ctx context.Context, query string, limit, offset int) ([]domain.InvoiceRow, error)
	InvoiceCount(ctx context.Context, query string) (int, error)
}

type ViewCache interface {
	Invalidate(pathPrefix string)
}

type InvoiceService struct {
	repo  InvoiceRepository
	views ViewCache
}

func NewInvoiceService(repo InvoiceRepository, views ViewCache) *InvoiceService {
	return &InvoiceService{
		repo:  repo,
		views: views,
	}
}

// Create converts the amount to cents, stamps today's date and issues a single
// INSERT. Either the write lands and the list view is invalidated, or a
// StoreError comes back; never both.
func (s *InvoiceService) Create(ctx context.Context, fields dto.InvoiceFields) error {
	date := time.Now().Format(time.DateOnly)

	_, err := s.repo.CreateInvoice(ctx, fields.CustomerID, fields.AmountCents(), fields.Status, date)
	if err != nil {
		logger.Log.Error("error creating invoice", logger.String("customer_id", fields.CustomerID), logger.Error(err))
		return domain.NewStoreError("Create Invoice", err)
	}

	s.views.Invalidate(InvoiceListPath)

	return nil
}

// Update rewrites customer, amount and status; the date column is immutable
// after creation and is left alone.
func (s *InvoiceService) Update(ctx context.Context, id string, fields dto.InvoiceFields) error {
	err := s.repo.UpdateInvoice(ctx, id, fields.CustomerID, fields.AmountCents(), fields.Status)
	if err != nil {
		logger.Log.Error("error updating invoice", logger.String("invoice_id", id), logger.Error(err))
		return domain.NewStoreError("Update Invoice", err)
	}

	s.views.Invalidate(InvoiceListPath)

	return nil
}

// Delete always yields a message: "Deleted Invoice." on success, a store
// message on failure. Deleting an id that is already gone succeeds.
func (s *InvoiceService) Delete(ctx context.Context, id string) domain.Message {
	if err := s.repo.DeleteInvoice(ctx, id); err != nil {
		logger.Log.Error("error deleting invoice", logger.String("invoice_id", id), logger.Error(err))
		return domain.NewStoreError("Delete Invoice", err).Message()
	}

	s.views.Invalidate(InvoiceListPath)

	return domain.Message{Text: "Deleted Invoice."}
}

func (s *InvoiceService) List(ctx context.Context, query string, page int) ([]domain.InvoiceRow, int, error) {
	if page < 1 {
		page = 1
	}

	invoices, err := s.repo.Invoices(ctx, query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.repo.InvoiceCount(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	totalPages := (count + pageSize - 1) / pageSize

	return invoices, totalPages, nil
}
