package service

import (
	"context"
	"testing"

	"github.com/yacine178/sales/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCustomer(t *testing.T, svc CustomerService) *dto.CustomerResponse {
	t.Helper()
	resp, err := svc.CreateCustomer(context.Background(), dto.CreateCustomerRequest{
		Name:    "Acme Retail",
		Email:   "purchasing@acme.test",
		Address: "1 Trade St",
		Phones:  []dto.PhoneNumberRequest{{Number: "021334455", Label: "office"}},
	})
	require.NoError(t, err)
	return resp
}

func TestCreateCustomerRequiresPhone(t *testing.T) {
	svc := NewCustomerService(newStubCustomerRepo())

	_, err := svc.CreateCustomer(context.Background(), dto.CreateCustomerRequest{
		Name:    "Acme Retail",
		Email:   "purchasing@acme.test",
		Address: "1 Trade St",
	})
	assert.ErrorIs(t, err, ErrPhonesRequired)
}

func TestUpdateCustomerRejectsEmptyPhoneList(t *testing.T) {
	svc := NewCustomerService(newStubCustomerRepo())
	created := createCustomer(t, svc)

	id, err := uuid.Parse(created.ID)
	require.NoError(t, err)

	empty := []dto.PhoneNumberRequest{}
	_, err = svc.UpdateCustomer(context.Background(), id, dto.UpdateCustomerRequest{Phones: &empty})
	assert.ErrorIs(t, err, ErrPhonesRequired)
}

func TestUpdateCustomerReplacesPhones(t *testing.T) {
	svc := NewCustomerService(newStubCustomerRepo())
	created := createCustomer(t, svc)

	id, err := uuid.Parse(created.ID)
	require.NoError(t, err)

	phones := []dto.PhoneNumberRequest{
		{Number: "055112233", Label: "mobile"},
		{Number: "021998877", Label: "warehouse"},
	}
	resp, err := svc.UpdateCustomer(context.Background(), id, dto.UpdateCustomerRequest{Phones: &phones})
	require.NoError(t, err)

	require.Len(t, resp.Phones, 2)
	assert.Equal(t, "055112233", resp.Phones[0].Number)
	assert.Equal(t, "warehouse", resp.Phones[1].Label)
}

func TestDeleteCustomerLeavesSalesUntouched(t *testing.T) {
	f := newSaleFixture(t)
	sale := f.createSale(t, 1)

	custSvc := NewCustomerService(f.customers)
	require.NoError(t, custSvc.DeleteCustomer(context.Background(), f.customerID))

	id, err := uuid.Parse(sale.ID)
	require.NoError(t, err)
	kept, err := f.svc.GetSale(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, f.customerID.String(), kept.CustomerID)
}

func TestGetCustomerUnknown(t *testing.T) {
	svc := NewCustomerService(newStubCustomerRepo())

	_, err := svc.GetCustomer(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUnknownCustomer)
}
