// Package v1 provides the version 1 API routes.
package v1

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/helixml/criteria/infrastructure/api/middleware"
	"github.com/helixml/criteria/infrastructure/codec"
	"github.com/helixml/criteria/internal/database"
)

// maxDocumentBytes caps the size of a posted criteria document.
const maxDocumentBytes = 1 << 20

// ExplainResponse is the body returned by the explain endpoint.
type ExplainResponse struct {
	Criteria codec.View `json:"criteria"`
	SQL      string     `json:"sql"`
}

// CriteriaRouter handles criteria document endpoints.
type CriteriaRouter struct {
	decoder codec.Decoder
	db      database.Database
	logger  *slog.Logger
}

// NewCriteriaRouter creates a CriteriaRouter.
func NewCriteriaRouter(decoder codec.Decoder, db database.Database, logger *slog.Logger) *CriteriaRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CriteriaRouter{decoder: decoder, db: db, logger: logger}
}

// Routes returns the router for criteria endpoints.
func (r *CriteriaRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/view", r.View)
	router.Post("/explain", r.Explain)
	return router
}

// View decodes a criteria document and returns its normalized view.
func (r *CriteriaRouter) View(w http.ResponseWriter, req *http.Request) {
	c, err := r.decoder.Read(http.MaxBytesReader(w, req.Body, maxDocumentBytes))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, codec.NewView(c))
}

// Explain decodes a criteria document and renders the SQL it describes
// without running it.
func (r *CriteriaRouter) Explain(w http.ResponseWriter, req *http.Request) {
	c, err := r.decoder.Read(http.MaxBytesReader(w, req.Body, maxDocumentBytes))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	sql, err := database.Explain(req.Context(), r.db, c)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, ExplainResponse{Criteria: codec.NewView(c), SQL: sql})
}
