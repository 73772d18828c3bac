package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"atelier/api/internal/config"
	"atelier/api/internal/models"
	"atelier/api/internal/repository"
)

// In-memory store fakes. They mirror the sentinel behavior of the pgx
// repositories so the services are exercised against the same contract.

type memUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[string]models.User{}}
}

func (m *memUserStore) Create(_ context.Context, user models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.RegisteredAt = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *memUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (m *memUserStore) GetByID(_ context.Context, id string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (m *memUserStore) List(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RegisteredAt.Before(out[j].RegisteredAt) })
	return out, nil
}

func (m *memUserStore) UpdatePassword(_ context.Context, id string, hash []byte, firstLogin bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = hash
	u.FirstLogin = firstLogin
	u.ResetHash = nil
	u.ResetExpires = nil
	m.users[id] = u
	return nil
}

func (m *memUserStore) Approve(_ context.Context, id string, hash []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Approved = true
	u.FirstLogin = true
	u.PasswordHash = hash
	u.ResetHash = nil
	u.ResetExpires = nil
	m.users[id] = u
	return nil
}

func (m *memUserStore) Reject(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Approved = false
	u.FirstLogin = false
	m.users[id] = u
	return nil
}

func (m *memUserStore) SetResetToken(_ context.Context, id string, hash []byte, expires time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.ResetHash = hash
	u.ResetExpires = &expires
	m.users[id] = u
	return nil
}

func (m *memUserStore) FindByResetHash(_ context.Context, hash []byte, now time.Time) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if bytes.Equal(u.ResetHash, hash) && u.ResetExpires != nil && u.ResetExpires.After(now) {
			return u, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (m *memUserStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

type memApplicationStore struct {
	mu   sync.Mutex
	apps []models.CreatorApplication
}

func newMemApplicationStore() *memApplicationStore {
	return &memApplicationStore{}
}

func (m *memApplicationStore) Create(_ context.Context, app models.CreatorApplication) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	app.SubmittedAt = time.Now()
	m.apps = append(m.apps, app)
	return nil
}

func (m *memApplicationStore) List(_ context.Context) ([]models.CreatorApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.CreatorApplication{}, m.apps...), nil
}

func (m *memApplicationStore) FindLatestByEmail(_ context.Context, email string) (models.CreatorApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.apps) - 1; i >= 0; i-- {
		if m.apps[i].Email == email {
			return m.apps[i], nil
		}
	}
	return models.CreatorApplication{}, repository.ErrApplicationNotFound
}

func (m *memApplicationStore) UpdateStatus(_ context.Context, id string, status models.ApplicationStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.apps {
		if m.apps[i].ID == id {
			m.apps[i].Status = status
			return nil
		}
	}
	return repository.ErrApplicationNotFound
}

func (m *memApplicationStore) DeleteByEmail(_ context.Context, email string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.apps[:0]
	var removed int64
	for _, a := range m.apps {
		if a.Email == email {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	m.apps = kept
	return removed, nil
}

type memProductStore struct {
	mu       sync.Mutex
	products map[string]models.Product
}

func newMemProductStore() *memProductStore {
	return &memProductStore{products: map[string]models.Product{}}
}

func (m *memProductStore) Create(_ context.Context, product models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	m.products[product.ID] = product
	return nil
}

func (m *memProductStore) List(_ context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *memProductStore) GetByID(_ context.Context, id string) (models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return models.Product{}, repository.ErrProductNotFound
	}
	return p, nil
}

func (m *memProductStore) Update(_ context.Context, product models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	product.UpdatedAt = time.Now()
	m.products[product.ID] = product
	return nil
}

func (m *memProductStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *memProductStore) DeleteByCreatorEmail(_ context.Context, email string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed int64
	for id, p := range m.products {
		if p.CreatorEmail == email {
			delete(m.products, id)
			removed++
		}
	}
	return removed, nil
}

type memContactStore struct {
	mu       sync.Mutex
	contacts []models.Contact
}

func newMemContactStore() *memContactStore {
	return &memContactStore{}
}

func (m *memContactStore) Create(_ context.Context, contact models.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	contact.SubmittedAt = time.Now()
	m.contacts = append(m.contacts, contact)
	return nil
}

func (m *memContactStore) List(_ context.Context) ([]models.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Contact{}, m.contacts...), nil
}

type memFileStore struct {
	mu    sync.Mutex
	saved int
}

func (m *memFileStore) SaveImage(_ context.Context, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved++
	return fmt.Sprintf("https://cdn.test/img-%d", m.saved), nil
}

// sentMail is one captured outbound notification.
type sentMail struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// recordingSender captures every Send call; Fail makes it report
// delivery failure without erroring.
type recordingSender struct {
	mu   sync.Mutex
	Fail bool
	sent []sentMail
}

func (r *recordingSender) Send(to, subject, textBody, htmlBody string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentMail{To: to, Subject: subject, Text: textBody, HTML: htmlBody})
	return !r.Fail
}

func (r *recordingSender) Sent() []sentMail {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]sentMail{}, r.sent...)
}

func (r *recordingSender) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
}

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Environment: "test",
		Security: config.SecurityConfig{
			JWTSecret:      "test-secret",
			SessionTTL:     time.Hour,
			ResetTokenTTL:  time.Hour,
			BcryptCost:     4, // fastest bcrypt allows
			MinPasswordLen: 6,
		},
		Lifecycle: config.LifecycleConfig{
			TeamEmail:     "equipe@atelier.test",
			PublicBaseURL: "https://atelier.test",
		},
	}
}

func newTestAccountService(
	users *memUserStore,
	apps *memApplicationStore,
	prods *memProductStore,
	mailer *recordingSender,
	cfg *config.AppConfig,
) *AccountService {
	return NewAccountService(users, apps, prods, mailer, cfg, zerolog.Nop())
}
