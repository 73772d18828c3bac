package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"atelier/api/internal/cache"
	"atelier/api/internal/config"
	"atelier/api/internal/mail"
	"atelier/api/internal/middleware"
	"atelier/api/internal/models"
	"atelier/api/internal/repository"
	"atelier/api/internal/service"
	"atelier/api/internal/storage"
)

type HandlerSet struct {
	log      zerolog.Logger
	cfg      *config.AppConfig
	accounts *service.AccountService
	apps     *service.ApplicationService
	catalog  *service.CatalogService
	db       *pgxpool.Pool
	cache    *redis.Client
}

func NewHandlerSet(
	log zerolog.Logger,
	db *pgxpool.Pool,
	redisClient *redis.Client,
	store *storage.ObjectStore,
	mailer mail.Sender,
	cfg *config.AppConfig,
) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	productRepo := repository.NewProductRepository(db)
	contactRepo := repository.NewContactRepository(db)

	accounts := service.NewAccountService(userRepo, appRepo, productRepo, mailer, cfg, log)
	apps := service.NewApplicationService(appRepo, store, mailer, cfg, log)
	catalog := service.NewCatalogService(productRepo, contactRepo, store, cache.NewCatalog(redisClient), mailer, cfg, log)

	return HandlerSet{
		log:      log,
		cfg:      cfg,
		accounts: accounts,
		apps:     apps,
		catalog:  catalog,
		db:       db,
		cache:    redisClient,
	}
}

// Mount registers the full route surface on the given group.
func (h HandlerSet) Mount(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	authn := middleware.Auth(h.cfg)
	adminOnly := middleware.RequireRoles(models.UserRoleAdmin)
	creatorSpace := middleware.RequireRoles(models.UserRoleCreator)

	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password/:token", h.ResetPassword)

		auth.GET("/me", authn, h.Me)
		auth.POST("/change-password", authn, h.ChangePassword)
	}

	admin := router.Group("/admin", authn, adminOnly)
	{
		admin.POST("/approve-creator", h.ApproveCreator)
		admin.POST("/reject-creator", h.RejectCreator)
		admin.GET("/applications", h.ListApplications)
		admin.GET("/users", h.ListUsers)
		admin.DELETE("/users/:id", h.DeleteUser)
		admin.GET("/contacts", h.ListContacts)
	}

	products := router.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)

		products.POST("", authn, creatorSpace, h.CreateProduct)
		products.PUT("/:id", authn, creatorSpace, h.UpdateProduct)
		products.DELETE("/:id", authn, creatorSpace, h.DeleteProduct)
	}

	contacts := router.Group("/contacts")
	{
		contacts.POST("", h.SubmitContact)
		contacts.GET("", authn, adminOnly, h.ListContacts)
	}

	applications := router.Group("/creator-applications")
	{
		applications.POST("", h.SubmitApplication)
		applications.GET("", authn, adminOnly, h.ListApplications)
	}
}

// respondError maps service and repository sentinels onto the wire
// contract. Anything unrecognized is an opaque 500; the cause goes to
// the log, never to the client.
func (h HandlerSet) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credentials"})
	case errors.Is(err, service.ErrNotApproved):
		c.JSON(http.StatusForbidden, gin.H{"error": "account pending team approval"})
	case errors.Is(err, service.ErrInvalidOrExpiredToken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired token"})
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrWrongPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSelfDeletion):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot delete own account"})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, repository.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, repository.ErrApplicationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
	case errors.Is(err, repository.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	default:
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
