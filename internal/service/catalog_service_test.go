package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/api/internal/repository"
)

func newTestCatalogService(
	prods *memProductStore,
	contacts *memContactStore,
	mailer *recordingSender,
) *CatalogService {
	return NewCatalogService(prods, contacts, &memFileStore{}, nil, mailer, testConfig(), zerolog.Nop())
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()
	prods := newMemProductStore()
	svc := newTestCatalogService(prods, newMemContactStore(), &recordingSender{})

	product, err := svc.CreateProduct(ctx, "ana@x.com", ProductInput{
		Title:       "Vaso de cerâmica",
		Description: "Feito à mão",
		Images:      [][]byte{[]byte("fake-image")},
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", product.CreatorEmail)
	require.Len(t, product.Images, 1)

	listed, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestCreateProductValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestCatalogService(newMemProductStore(), newMemContactStore(), &recordingSender{})

	_, err := svc.CreateProduct(ctx, "ana@x.com", ProductInput{Title: "Vaso"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestProductOwnership(t *testing.T) {
	ctx := context.Background()
	prods := newMemProductStore()
	svc := newTestCatalogService(prods, newMemContactStore(), &recordingSender{})

	product, err := svc.CreateProduct(ctx, "ana@x.com", ProductInput{Title: "Vaso", Description: "Cerâmica"})
	require.NoError(t, err)

	input := ProductInput{Title: "Vaso novo", Description: "Cerâmica"}

	// Another creator cannot touch it.
	_, err = svc.UpdateProduct(ctx, product.ID, "other@x.com", "creator", input)
	require.ErrorIs(t, err, ErrNotOwner)
	err = svc.DeleteProduct(ctx, product.ID, "other@x.com", "creator")
	require.ErrorIs(t, err, ErrNotOwner)

	// The owner can, and so can an admin.
	updated, err := svc.UpdateProduct(ctx, product.ID, "ana@x.com", "creator", input)
	require.NoError(t, err)
	assert.Equal(t, "Vaso novo", updated.Title)

	require.NoError(t, svc.DeleteProduct(ctx, product.ID, "admin@x.com", "admin"))
	_, err = svc.GetProduct(ctx, product.ID)
	require.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestSubmitContactRelaysToTeam(t *testing.T) {
	ctx := context.Background()
	prods := newMemProductStore()
	contacts := newMemContactStore()
	mailer := &recordingSender{}
	svc := newTestCatalogService(prods, contacts, mailer)

	product, err := svc.CreateProduct(ctx, "ana@x.com", ProductInput{Title: "Vaso", Description: "Cerâmica"})
	require.NoError(t, err)
	mailer.Reset()

	contact, err := svc.SubmitContact(ctx, ContactInput{
		Name:      "Bia",
		Email:     "bia@x.com",
		Message:   "Gostei do vaso!",
		ProductID: product.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Vaso", contact.ProductName)

	require.Len(t, mailer.Sent(), 1)
	assert.Equal(t, "equipe@atelier.test", mailer.Sent()[0].To)
	assert.Contains(t, mailer.Sent()[0].Text, "Gostei do vaso!")

	stored, err := svc.ListContacts(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestSubmitContactValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestCatalogService(newMemProductStore(), newMemContactStore(), &recordingSender{})

	_, err := svc.SubmitContact(ctx, ContactInput{Name: "Bia", Email: "bad", Message: "oi"})
	require.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.SubmitContact(ctx, ContactInput{Email: "bia@x.com", Message: "oi"})
	require.ErrorIs(t, err, ErrInvalidInput)
}
