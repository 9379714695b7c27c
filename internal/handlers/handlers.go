package handlers

import (
	"GophMart/internal/config"
	"GophMart/internal/metrics"
	"GophMart/internal/middleware"
	"GophMart/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// Services - сервисы, которые обслуживает HTTP-слой.
type Services struct {
	Users       *service.UserService
	Identity    *service.IdentityResolver
	Items       *service.ItemService
	Blobs       *service.BlobService
	Attachments *service.AttachmentService
}

// NewHandler разводящий для хендлеров. gatherer == nil - без /metrics.
func NewHandler(
	svc Services,
	rec metrics.Recorder,
	gatherer prometheus.Gatherer,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	if rec == nil {
		rec = metrics.Nop{}
	}
	r := chi.NewRouter()

	r.Use(middleware.WithRecovery)
	r.Use(middleware.WithCORS(config.CORSOrigin))
	r.Use(middleware.WithMetrics(rec))
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(svc.Identity))

	// Handlers
	userHandler := NewUserHandler(svc.Users, logger, config)
	itemHandler := NewItemHandler(svc.Items, svc.Blobs, logger, config)
	blobHandler := NewBlobHandler(svc.Blobs, svc.Attachments, logger, config)
	attachmentHandler := NewAttachmentHandler(svc.Attachments, logger, config)

	// User routes
	r.Post("/signup", userHandler.Signup)
	r.Post("/login", userHandler.Login)

	// Item routes
	r.Post("/items", itemHandler.Create)
	r.Get("/items", itemHandler.ListAll)
	r.Get("/user/items", itemHandler.ListMine)
	r.Get("/items/{id}", itemHandler.Get)
	r.Put("/items/{id}", itemHandler.Update)
	r.Patch("/items/{id}", itemHandler.Update)
	r.Delete("/items/{id}", itemHandler.Delete)

	// File routes
	r.Post("/uploadfile", blobHandler.Upload)
	r.Get("/file/{id}", blobHandler.Download)
	r.Delete("/file/{id}", blobHandler.Delete)
	r.Get("/user/files", blobHandler.ListMine)
	r.Post("/user/files/sweep", blobHandler.Sweep)

	// Association routes
	r.Post("/items/{id}/associate-image/{image_id}", attachmentHandler.Associate)
	r.Delete("/items/{id}/disassociate-image/{image_id}", attachmentHandler.Disassociate)

	if gatherer != nil {
		r.Handle("/metrics", metrics.Handler(gatherer))
	}

	return &Handler{Router: r}
}
