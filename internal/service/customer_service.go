package service

import (
	"context"
	"time"

	"github.com/yacine178/sales/internal/dto"
	"github.com/yacine178/sales/internal/model"
	"github.com/yacine178/sales/internal/repository"

	"github.com/google/uuid"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error)
	ListCustomers(ctx context.Context) ([]dto.CustomerResponse, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	customers repository.CustomerRepository
}

func NewCustomerService(customers repository.CustomerRepository) CustomerService {
	return &customerService{customers: customers}
}

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if len(req.Phones) == 0 {
		return nil, ErrPhonesRequired
	}
	c := &model.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		Company: req.Company,
		NIF:     req.NIF,
		NIS:     req.NIS,
		RC:      req.RC,
		Notes:   req.Notes,
		Phones:  phonesFromRequest(req.Phones),
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := customerToResponse(c)
	return &resp, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, ErrUnknownCustomer
	}
	resp := customerToResponse(c)
	return &resp, nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]dto.CustomerResponse, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		data = append(data, customerToResponse(&customers[i]))
	}
	return data, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, ErrUnknownCustomer
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.Company != nil {
		c.Company = req.Company
	}
	if req.NIF != nil {
		c.NIF = req.NIF
	}
	if req.NIS != nil {
		c.NIS = req.NIS
	}
	if req.RC != nil {
		c.RC = req.RC
	}
	if req.Notes != nil {
		c.Notes = req.Notes
	}
	if err := s.customers.Update(ctx, c); err != nil {
		return nil, err
	}
	if req.Phones != nil {
		if len(*req.Phones) == 0 {
			return nil, ErrPhonesRequired
		}
		if err := s.customers.ReplacePhones(ctx, id, phonesFromRequest(*req.Phones)); err != nil {
			return nil, err
		}
	}
	return s.GetCustomer(ctx, id)
}

// DeleteCustomer removes the customer and their phone numbers. Existing
// sales keep their customer id — the sale ledger is never touched.
func (s *customerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.customers.FindByID(ctx, id); err != nil {
		return ErrUnknownCustomer
	}
	return s.customers.Delete(ctx, id)
}

func phonesFromRequest(lines []dto.PhoneNumberRequest) []model.PhoneNumber {
	phones := make([]model.PhoneNumber, 0, len(lines))
	for _, p := range lines {
		phones = append(phones, model.PhoneNumber{Number: p.Number, Label: p.Label})
	}
	return phones
}

func customerToResponse(c *model.Customer) dto.CustomerResponse {
	phones := make([]dto.PhoneNumberResponse, 0, len(c.Phones))
	for _, p := range c.Phones {
		phones = append(phones, dto.PhoneNumberResponse{ID: p.ID.String(), Number: p.Number, Label: p.Label})
	}
	return dto.CustomerResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Address:   c.Address,
		Phones:    phones,
		Company:   c.Company,
		NIF:       c.NIF,
		NIS:       c.NIS,
		RC:        c.RC,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
