package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/koyif/invoicedash/internal/domain"
	"github.com/koyif/invoicedash/pkg/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvoiceRepo struct {
	err error

	createCalls    int
	createCustomer string
	createCents    int64
	createStatus   domain.InvoiceStatus
	createDate     string

	updateID       string
	updateCustomer string
	updateCents    int64
	updateStatus   domain.InvoiceStatus

	deletedIDs []string

	invoices []domain.InvoiceRow
	count    int
	limit    int
	offset   int
}

func (f *fakeInvoiceRepo) CreateInvoice(_ context.Context, customerID string, amountCents int64, status domain.InvoiceStatus, date string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.createCalls++
	f.createCustomer = customerID
	f.createCents = amountCents
	f.createStatus = status
	f.createDate = date
	return "inv-1", nil
}

func (f *fakeInvoiceRepo) UpdateInvoice(_ context.Context, id, customerID string, amountCents int64, status domain.InvoiceStatus) error {
	if f.err != nil {
		return f.err
	}
	f.updateID = id
	f.updateCustomer = customerID
	f.updateCents = amountCents
	f.updateStatus = status
	return nil
}

func (f *fakeInvoiceRepo) DeleteInvoice(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func (f *fakeInvoiceRepo) Invoices(_ context.Context, _ string, limit, offset int) ([]domain.InvoiceRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.limit = limit
	f.offset = offset
	return f.invoices, nil
}

func (f *fakeInvoiceRepo) InvoiceCount(_ context.Context, _ string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.count, nil
}

type fakeViews struct {
	invalidated []string
}

func (f *fakeViews) Invalidate(pathPrefix string) {
	f.invalidated = append(f.invalidated, pathPrefix)
}

func validFields(t *testing.T, amount string) dto.InvoiceFields {
	t.Helper()

	fields, vErr := dto.InvoiceForm{CustomerID: "c1", Amount: amount, Status: "paid"}.Validate(dto.ModeCreate)
	require.Nil(t, vErr)

	return fields
}

func TestCreateConvertsToCentsAndInvalidates(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	views := &fakeViews{}
	svc := NewInvoiceService(repo, views)

	err := svc.Create(context.Background(), validFields(t, "50"))

	require.NoError(t, err)
	assert.Equal(t, 1, repo.createCalls)
	assert.Equal(t, "c1", repo.createCustomer)
	assert.Equal(t, int64(5000), repo.createCents)
	assert.Equal(t, domain.InvoiceStatusPaid, repo.createStatus)
	assert.Equal(t, time.Now().Format(time.DateOnly), repo.createDate)
	assert.Equal(t, []string{InvoiceListPath}, views.invalidated)
}

func TestCreateStoreFailure(t *testing.T) {
	repo := &fakeInvoiceRepo{err: errors.New("connection refused")}
	views := &fakeViews{}
	svc := NewInvoiceService(repo, views)

	err := svc.Create(context.Background(), validFields(t, "12.34"))

	require.Error(t, err)

	var storeErr *domain.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "Database Error: the invoice store rejected the operation. Failed to Create Invoice.", storeErr.Message().Text)
	assert.Empty(t, views.invalidated)
}

func TestCreateCustomerNotFoundIsSummarized(t *testing.T) {
	repo := &fakeInvoiceRepo{err: domain.ErrCustomerNotFound}
	svc := NewInvoiceService(repo, &fakeViews{})

	err := svc.Create(context.Background(), validFields(t, "12.34"))

	var storeErr *domain.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "Database Error: referenced customer does not exist. Failed to Create Invoice.", storeErr.Message().Text)
}

func TestUpdateDoesNotTouchDate(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	views := &fakeViews{}
	svc := NewInvoiceService(repo, views)

	err := svc.Update(context.Background(), "inv-1", validFields(t, "12.34"))

	require.NoError(t, err)
	assert.Equal(t, "inv-1", repo.updateID)
	assert.Equal(t, int64(1234), repo.updateCents)
	// the repository interface carries no date on update
	assert.Empty(t, repo.createDate)
	assert.Equal(t, []string{InvoiceListPath}, views.invalidated)
}

func TestUpdateStoreFailure(t *testing.T) {
	repo := &fakeInvoiceRepo{err: errors.New("timeout")}
	svc := NewInvoiceService(repo, &fakeViews{})

	err := svc.Update(context.Background(), "inv-1", validFields(t, "12.34"))

	var storeErr *domain.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "Database Error: the invoice store rejected the operation. Failed to Update Invoice.", storeErr.Message().Text)
}

func TestDeleteReturnsMessageAndInvalidates(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	views := &fakeViews{}
	svc := NewInvoiceService(repo, views)

	msg := svc.Delete(context.Background(), "inv-1")

	assert.Equal(t, "Deleted Invoice.", msg.Text)
	assert.Equal(t, []string{"inv-1"}, repo.deletedIDs)
	assert.Equal(t, []string{InvoiceListPath}, views.invalidated)
}

func TestDeleteAlreadyGoneStillSucceeds(t *testing.T) {
	repo := &fakeInvoiceRepo{}
	svc := NewInvoiceService(repo, &fakeViews{})

	first := svc.Delete(context.Background(), "inv-1")
	second := svc.Delete(context.Background(), "inv-1")

	assert.Equal(t, "Deleted Invoice.", first.Text)
	assert.Equal(t, "Deleted Invoice.", second.Text)
}

func TestDeleteStoreFailureMessage(t *testing.T) {
	repo := &fakeInvoiceRepo{err: errors.New("boom")}
	views := &fakeViews{}
	svc := NewInvoiceService(repo, views)

	msg := svc.Delete(context.Background(), "inv-1")

	assert.Equal(t, "Database Error: the invoice store rejected the operation. Failed to Delete Invoice.", msg.Text)
	assert.Empty(t, views.invalidated)
}

func TestListPaginates(t *testing.T) {
	repo := &fakeInvoiceRepo{count: 13}
	svc := NewInvoiceService(repo, &fakeViews{})

	_, totalPages, err := svc.List(context.Background(), "", 2)

	require.NoError(t, err)
	assert.Equal(t, 3, totalPages)
	assert.Equal(t, pageSize, repo.limit)
	assert.Equal(t, pageSize, repo.offset)
}

func TestListCoercesPage(t *testing.T) {
	repo := &fakeInvoiceRepo{count: 1}
	svc := NewInvoiceService(repo, &fakeViews{})

	_, _, err := svc.List(context.Background(), "", 0)

	require.NoError(t, err)
	assert.Equal(t, 0, repo.offset)
}
