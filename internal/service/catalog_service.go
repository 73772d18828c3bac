package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"atelier/api/internal/cache"
	"atelier/api/internal/config"
	"atelier/api/internal/ids"
	"atelier/api/internal/mail"
	"atelier/api/internal/models"
)

// ErrNotOwner rejects a creator touching a listing that is not theirs.
var ErrNotOwner = errors.New("not the product owner")

// CatalogService covers the storefront: product listings and the
// contact-form relay. Both are plain I/O around the stores; the public
// product listing goes through a best-effort redis cache.
type CatalogService struct {
	prods    ProductStore
	contacts ContactStore
	files    FileStore
	catalog  *cache.Catalog
	mailer   mail.Sender
	cfg      *config.AppConfig
	log      zerolog.Logger
}

func NewCatalogService(
	prods ProductStore,
	contacts ContactStore,
	files FileStore,
	catalog *cache.Catalog,
	mailer mail.Sender,
	cfg *config.AppConfig,
	log zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		prods:    prods,
		contacts: contacts,
		files:    files,
		catalog:  catalog,
		mailer:   mailer,
		cfg:      cfg,
		log:      log,
	}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	if payload, ok := s.catalog.Get(ctx); ok {
		var products []models.Product
		if err := json.Unmarshal(payload, &products); err == nil {
			return products, nil
		}
	}

	products, err := s.prods.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(products); err == nil {
		s.catalog.Set(ctx, payload)
	}

	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (models.Product, error) {
	return s.prods.GetByID(ctx, id)
}

type ProductInput struct {
	Title       string
	Description string
	// Images are raw uploads; stored references replace them on the
	// persisted product.
	Images [][]byte
	// ImageURLs keeps already-stored references (edit flows).
	ImageURLs []string
}

func (s *CatalogService) storeImages(ctx context.Context, input ProductInput) ([]string, error) {
	urls := append([]string{}, input.ImageURLs...)
	for _, img := range input.Images {
		url, err := s.files.SaveImage(ctx, img)
		if err != nil {
			return nil, fmt.Errorf("store product image: %w", err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, creatorEmail string, input ProductInput) (models.Product, error) {
	if input.Title == "" || input.Description == "" {
		return models.Product{}, fmt.Errorf("%w: title and description are required", ErrInvalidInput)
	}

	images, err := s.storeImages(ctx, input)
	if err != nil {
		return models.Product{}, err
	}

	product := models.Product{
		ID:           ids.New(),
		Title:        input.Title,
		Description:  input.Description,
		CreatorEmail: normalizeEmail(creatorEmail),
		Images:       images,
	}
	if err := s.prods.Create(ctx, product); err != nil {
		return models.Product{}, err
	}

	s.catalog.Invalidate(ctx)
	return product, nil
}

// canManage allows the listing's own creator and any admin.
func canManage(product models.Product, callerEmail, callerRole string) bool {
	if callerRole == string(models.UserRoleAdmin) {
		return true
	}
	return product.CreatorEmail == normalizeEmail(callerEmail)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id, callerEmail, callerRole string, input ProductInput) (models.Product, error) {
	product, err := s.prods.GetByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	if !canManage(product, callerEmail, callerRole) {
		return models.Product{}, ErrNotOwner
	}

	if input.Title != "" {
		product.Title = input.Title
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if len(input.Images) > 0 || len(input.ImageURLs) > 0 {
		images, err := s.storeImages(ctx, input)
		if err != nil {
			return models.Product{}, err
		}
		product.Images = images
	}

	if err := s.prods.Update(ctx, product); err != nil {
		return models.Product{}, err
	}

	s.catalog.Invalidate(ctx)
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id, callerEmail, callerRole string) error {
	product, err := s.prods.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canManage(product, callerEmail, callerRole) {
		return ErrNotOwner
	}

	if err := s.prods.Delete(ctx, id); err != nil {
		return err
	}

	s.catalog.Invalidate(ctx)
	return nil
}

type ContactInput struct {
	Name      string
	Email     string
	Phone     string
	Message   string
	ProductID string
}

// SubmitContact persists the message and relays it to the team mailbox.
func (s *CatalogService) SubmitContact(ctx context.Context, input ContactInput) (models.Contact, error) {
	email := normalizeEmail(input.Email)
	if !emailPattern.MatchString(email) {
		return models.Contact{}, ErrInvalidEmail
	}
	if input.Name == "" || input.Message == "" {
		return models.Contact{}, fmt.Errorf("%w: name and message are required", ErrInvalidInput)
	}

	productName := ""
	if input.ProductID != "" {
		if product, err := s.prods.GetByID(ctx, input.ProductID); err == nil {
			productName = product.Title
		}
	}

	contact := models.Contact{
		ID:          ids.New(),
		Name:        input.Name,
		Email:       email,
		Phone:       input.Phone,
		Message:     input.Message,
		ProductID:   input.ProductID,
		ProductName: productName,
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		return models.Contact{}, err
	}

	msg := mail.ContactRelay(contact.Name, contact.Email, contact.Phone, contact.Message, contact.ProductName)
	if !s.mailer.Send(s.cfg.Lifecycle.TeamEmail, msg.Subject, msg.Text, msg.HTML) {
		s.log.Warn().Str("contact_id", contact.ID).Msg("contact relay not delivered")
	}

	return contact, nil
}

func (s *CatalogService) ListContacts(ctx context.Context) ([]models.Contact, error) {
	return s.contacts.List(ctx)
}
