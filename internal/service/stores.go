package service

import (
	"context"
	"time"

	"atelier/api/internal/models"
)

// Persistence contracts consumed by the services. The pgx repositories in
// internal/repository satisfy them; tests use in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdatePassword(ctx context.Context, id string, hash []byte, firstLogin bool) error
	Approve(ctx context.Context, id string, hash []byte) error
	Reject(ctx context.Context, id string) error
	SetResetToken(ctx context.Context, id string, hash []byte, expires time.Time) error
	FindByResetHash(ctx context.Context, hash []byte, now time.Time) (models.User, error)
	Delete(ctx context.Context, id string) error
}

type ApplicationStore interface {
	Create(ctx context.Context, app models.CreatorApplication) error
	List(ctx context.Context) ([]models.CreatorApplication, error)
	FindLatestByEmail(ctx context.Context, email string) (models.CreatorApplication, error)
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error
	DeleteByEmail(ctx context.Context, email string) (int64, error)
}

type ProductStore interface {
	Create(ctx context.Context, product models.Product) error
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (models.Product, error)
	Update(ctx context.Context, product models.Product) error
	Delete(ctx context.Context, id string) error
	DeleteByCreatorEmail(ctx context.Context, email string) (int64, error)
}

type ContactStore interface {
	Create(ctx context.Context, contact models.Contact) error
	List(ctx context.Context) ([]models.Contact, error)
}

// FileStore accepts a binary upload and returns the stable reference the
// system stores in its place.
type FileStore interface {
	SaveImage(ctx context.Context, data []byte) (string, error)
}
