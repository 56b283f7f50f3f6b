package service

import (
	"context"

	"github.com/koyif/invoicedash/internal/domain"
)

type CustomerRepository interface {
	Customers(ctx context.Context) ([]domain.Customer, error)
}

type CustomerService struct {
	repo CustomerRepository
}

func NewCustomerService(repo CustomerRepository) *CustomerService {
	return &CustomerService{
		repo: repo,
	}
}

func (s *CustomerService) Customers(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.Customers(ctx)
}
