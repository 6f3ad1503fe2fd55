package handler

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/zestotech/cost-estimator/backend/internal/config"
	"github.com/zestotech/cost-estimator/backend/internal/domain"
	"github.com/zestotech/cost-estimator/backend/internal/repository"
)

// userDirectory is the slice of the repository the session and credential
// paths go through. The repository implements it; tests swap in a fake.
type userDirectory interface {
	GetUserByID(id int64) (*domain.User, error)
	GetUserByUsername(username string) (*domain.User, error)
	UpdateUser(user *domain.User) error
	UpdateUserLastLogin(id int64, at time.Time) error
}

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	users       userDirectory
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		users:       repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// Authentication
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// Everything below requires an authenticated session. The current user is
	// re-read from the store on each request, so role and active-flag changes
	// take effect without re-login.
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.currentUser)

		r.Get("/my-info", h.GetMyInfo)

		r.Route("/users", func(r chi.Router) {
			r.Use(h.requirePermission(domain.PermissionUserManagement))
			r.Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).Delete("/", h.DeleteUser)
				r.Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/customers", func(r chi.Router) {
			r.With(h.requirePermission(domain.PermissionViewCustomers)).Get("/", h.GetAllCustomers)
			r.With(h.requirePermission(domain.PermissionEditCustomers)).Post("/", h.CreateCustomer)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.customerInfo)
				r.With(h.requirePermission(domain.PermissionViewCustomers)).Get("/", h.GetCustomer)
				r.With(h.requirePermission(domain.PermissionEditCustomers)).Patch("/", h.UpdateCustomer)
				r.With(h.requirePermission(domain.PermissionEditCustomers)).Delete("/", h.DeleteCustomer)
			})
		})

		r.Route("/projects", func(r chi.Router) {
			r.With(h.requirePermission(domain.PermissionViewProjects)).Get("/", h.GetAllProjects)
			r.With(h.requirePermission(domain.PermissionEditProjects)).Post("/", h.CreateProject)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.projectInfo)
				r.With(h.requirePermission(domain.PermissionViewProjects)).Get("/", h.GetProject)
				r.With(h.requirePermission(domain.PermissionEditProjects)).Patch("/", h.UpdateProject)
				r.With(h.requirePermission(domain.PermissionEditProjects)).Delete("/", h.DeleteProject)
			})
		})

		r.Route("/quotations", func(r chi.Router) {
			r.With(h.requirePermission(domain.PermissionViewQuotations)).Get("/", h.GetAllQuotations)
			r.With(h.requirePermission(domain.PermissionEditQuotations)).Post("/", h.CreateQuotation)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.quotationInfo)
				r.With(h.requirePermission(domain.PermissionViewQuotations)).Get("/", h.GetQuotation)
				r.With(h.requirePermission(domain.PermissionEditQuotations)).Patch("/", h.UpdateQuotation)
				r.With(h.requirePermission(domain.PermissionEditQuotations)).Delete("/", h.DeleteQuotation)
			})
		})

		r.Route("/materials", func(r chi.Router) {
			r.With(h.requirePermission(domain.PermissionViewMaterials)).Get("/", h.GetAllMaterials)
			r.With(h.requirePermission(domain.PermissionEditMaterials)).Post("/", h.CreateMaterial)
			r.With(h.requirePermission(domain.PermissionBulkUpload)).Get("/csv-template", h.GetCSVTemplate)
			r.With(h.requirePermission(domain.PermissionBulkUpload)).Post("/bulk-upload", h.BulkUploadMaterials)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.materialInfo)
				r.With(h.requirePermission(domain.PermissionViewMaterials)).Get("/", h.GetMaterial)
				r.With(h.requirePermission(domain.PermissionEditMaterials)).Patch("/", h.UpdateMaterial)
				r.With(h.requirePermission(domain.PermissionEditMaterials)).Delete("/", h.DeleteMaterial)
			})
		})
	})
}
