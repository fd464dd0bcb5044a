package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dealdash/dealdash/internal/auth"
	"github.com/dealdash/dealdash/internal/storage"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	store    storage.Storage
	auth     *auth.Service // nil disables authentication
	validate *validator.Validate
	logger   *zap.Logger
}

// NewHandler creates a new API handler. Pass a nil auth service to leave all
// routes open.
func NewHandler(store storage.Storage, authSvc *auth.Service, logger *zap.Logger) *Handler {
	return &Handler{
		store:    store,
		auth:     authSvc,
		validate: validator.New(),
		logger:   logger,
	}
}

// Router builds the chi router with all routes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.healthCheck)

		if h.auth != nil {
			r.Route("/auth", func(r chi.Router) {
				r.Post("/register", h.register)
				r.Post("/login", h.login)
				r.Post("/password-reset-request", h.passwordResetRequest)
				r.Post("/password-reset-confirm", h.passwordResetConfirm)
				r.With(h.auth.Middleware).Get("/me", h.currentUser)
			})
		}

		r.Group(func(r chi.Router) {
			if h.auth != nil {
				r.Use(h.auth.Middleware)
			}

			r.Route("/deals", func(r chi.Router) {
				r.Get("/", h.listDeals)
				r.Post("/", h.createDeal)
				r.Get("/{id}", h.getDeal)
				r.Patch("/{id}", h.updateDeal)
				r.Delete("/{id}", h.deleteDeal)
				r.Patch("/{id}/notes", h.updateDealNotes)
				r.Get("/{id}/buyers", h.dealBuyers)
				r.Get("/{id}/buyers-with-nda", h.dealBuyersWithNDA)
			})

			r.Route("/contacts", func(r chi.Router) {
				r.Get("/", h.listContacts)
				r.Post("/", h.createContact)
				r.Delete("/{id}", h.deleteContact)
			})

			r.Route("/buying-parties", func(r chi.Router) {
				r.Get("/", h.listBuyingParties)
				r.Post("/", h.createBuyingParty)
				r.Get("/{id}", h.getBuyingParty)
				r.Patch("/{id}", h.updateBuyingParty)
				r.Delete("/{id}", h.deleteBuyingParty)
				r.Patch("/{id}/notes", h.updateBuyingPartyNotes)
				r.Get("/{id}/matches", h.buyingPartyMatches)
			})

			r.Route("/matches", func(r chi.Router) {
				r.Post("/", h.createMatch)
				r.Delete("/{id}", h.deleteMatch)
			})

			r.Route("/activities", func(r chi.Router) {
				r.Get("/", h.listActivities)
				r.Post("/", h.createActivity)
				r.Get("/tree", h.activityTree)
				r.Patch("/{id}", h.updateActivity)
				r.Delete("/{id}", h.deleteActivity)
				r.Get("/{id}/descendants", h.activityDescendants)
				r.Get("/{id}/ancestors", h.activityAncestors)
				r.Get("/{id}/depth", h.activityDepth)
				r.Get("/{id}/is-ancestor-of/{otherID}", h.activityIsAncestorOf)
			})

			r.Route("/documents", func(r chi.Router) {
				r.Get("/", h.listDocuments)
				r.Post("/", h.createDocument)
				r.Delete("/{id}", h.deleteDocument)
			})

			r.Get("/meetings/latest-summary", h.latestMeetingSummary)
		})
	})

	return r
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "dealdash"})
}

// latestMeetingSummary has no transcription pipeline behind it yet; it always
// answers null, which the frontend treats as "no summary available".
func (h *Handler) latestMeetingSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nil)
}

// decodeValid decodes the body into v and runs struct validation.
func (h *Handler) decodeValid(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return h.validate.Struct(v)
}

// storeError maps storage.ErrNotFound to 404 and everything else to 500.
func (h *Handler) storeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	h.logger.Error("storage error", zap.String("path", r.URL.Path), zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func badRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
