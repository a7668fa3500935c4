package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	infraRepo "github.com/kiplagat/billify-api/internal/infrastructure/repository"
	"github.com/kiplagat/billify-api/pkg/apperror"
	"github.com/stretchr/testify/require"
)

func TestCreateItemDefaultsToActive(t *testing.T) {
	svc := NewItemService(newFakeItemRepo())
	ctx := infraRepo.WithCompany(context.Background(), uuid.New())

	item, err := svc.CreateItem(ctx, &CreateItemInput{
		Name:      "Consulting hour",
		UnitPrice: dec("120.00"),
	})
	require.NoError(t, err)
	require.True(t, item.Active)
}

func TestCreateItemRejectsNegativePrice(t *testing.T) {
	svc := NewItemService(newFakeItemRepo())
	ctx := infraRepo.WithCompany(context.Background(), uuid.New())

	_, err := svc.CreateItem(ctx, &CreateItemInput{Name: "Bad", UnitPrice: dec("-1.00")})
	require.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = svc.CreateItem(ctx, &CreateItemInput{Name: "Bad", UnitPrice: dec("1.00"), TaxRate: dec("-0.05")})
	require.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestDeactivateItem(t *testing.T) {
	repo := newFakeItemRepo()
	svc := NewItemService(repo)
	ctx := infraRepo.WithCompany(context.Background(), uuid.New())

	item, err := svc.CreateItem(ctx, &CreateItemInput{Name: "Hosting", UnitPrice: dec("30.00")})
	require.NoError(t, err)

	deactivated, err := svc.DeactivateItem(ctx, item.ID)
	require.NoError(t, err)
	require.False(t, deactivated.Active)
}

func TestUpdateItemOtherCompanyNotFound(t *testing.T) {
	repo := newFakeItemRepo()
	svc := NewItemService(repo)
	ctx := infraRepo.WithCompany(context.Background(), uuid.New())

	item, err := svc.CreateItem(ctx, &CreateItemInput{Name: "Hosting", UnitPrice: dec("30.00")})
	require.NoError(t, err)

	otherCtx := infraRepo.WithCompany(context.Background(), uuid.New())
	_, err = svc.UpdateItem(otherCtx, item.ID, &UpdateItemInput{})
	require.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
