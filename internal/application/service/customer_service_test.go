package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	infraRepo "github.com/kiplagat/billify-api/internal/infrastructure/repository"
	"github.com/kiplagat/billify-api/pkg/apperror"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreateCustomer(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo)

	companyID := uuid.New()
	ctx := infraRepo.WithCompany(context.Background(), companyID)

	customer, err := svc.CreateCustomer(ctx, &CreateCustomerInput{
		Name:  "Acme Ltd",
		Email: strPtr("billing@acme.test"),
	})
	require.NoError(t, err)
	require.Equal(t, companyID, customer.CompanyID)
	require.NotEqual(t, uuid.Nil, customer.ID)
}

func TestCreateCustomerWithoutCompanyContext(t *testing.T) {
	svc := NewCustomerService(newFakeCustomerRepo())

	_, err := svc.CreateCustomer(context.Background(), &CreateCustomerInput{Name: "Acme Ltd"})
	require.True(t, apperror.IsKind(err, apperror.KindBadRequest))
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo)
	ctx := infraRepo.WithCompany(context.Background(), uuid.New())

	_, err := svc.CreateCustomer(ctx, &CreateCustomerInput{Name: "Acme", Email: strPtr("billing@acme.test")})
	require.NoError(t, err)

	_, err = svc.CreateCustomer(ctx, &CreateCustomerInput{Name: "Acme Clone", Email: strPtr("billing@acme.test")})
	require.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestCreateCustomerSameEmailDifferentCompany(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo)

	ctxA := infraRepo.WithCompany(context.Background(), uuid.New())
	ctxB := infraRepo.WithCompany(context.Background(), uuid.New())

	_, err := svc.CreateCustomer(ctxA, &CreateCustomerInput{Name: "Acme", Email: strPtr("billing@acme.test")})
	require.NoError(t, err)

	// Uniqueness is per company, not global
	_, err = svc.CreateCustomer(ctxB, &CreateCustomerInput{Name: "Acme", Email: strPtr("billing@acme.test")})
	require.NoError(t, err)
}

func TestGetCustomerOtherCompanyNotFound(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo)
	ctx := infraRepo.WithCompany(context.Background(), uuid.New())

	customer, err := svc.CreateCustomer(ctx, &CreateCustomerInput{Name: "Acme"})
	require.NoError(t, err)

	otherCtx := infraRepo.WithCompany(context.Background(), uuid.New())
	_, err = svc.GetCustomer(otherCtx, customer.ID)
	require.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestUpdateCustomerPartial(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo)
	ctx := infraRepo.WithCompany(context.Background(), uuid.New())

	customer, err := svc.CreateCustomer(ctx, &CreateCustomerInput{
		Name:  "Acme",
		Phone: strPtr("+254700000000"),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateCustomer(ctx, customer.ID, &UpdateCustomerInput{
		Name: strPtr("Acme International"),
	})
	require.NoError(t, err)
	require.Equal(t, "Acme International", updated.Name)
	require.NotNil(t, updated.Phone)
	require.Equal(t, "+254700000000", *updated.Phone)
}

func TestDeleteCustomerWithInvoicesBlocked(t *testing.T) {
	repo := newFakeCustomerRepo()
	repo.hasInvoices = true
	svc := NewCustomerService(repo)
	ctx := infraRepo.WithCompany(context.Background(), uuid.New())

	customer, err := svc.CreateCustomer(ctx, &CreateCustomerInput{Name: "Acme"})
	require.NoError(t, err)

	err = svc.DeleteCustomer(ctx, customer.ID)
	require.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestDeleteCustomerWithoutInvoices(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo)
	ctx := infraRepo.WithCompany(context.Background(), uuid.New())

	customer, err := svc.CreateCustomer(ctx, &CreateCustomerInput{Name: "Acme"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCustomer(ctx, customer.ID))

	_, err = svc.GetCustomer(ctx, customer.ID)
	require.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
