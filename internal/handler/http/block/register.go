package block

import (
	"log/slog"
	"net/http"

	"tk-labels/internal/handler/http/auth"
	"tk-labels/internal/usecase/labels"
)

// Register registers the block routes with the given mux.
// Rendering is public; reading and submitting the block configuration require an admin token.
func Register(mux *http.ServeMux, svc *labels.Service, secret []byte, logger *slog.Logger) {
	requireAdmin := auth.RequireAdmin(secret)

	mux.Handle("GET /nodes/{id}/tk-labels", RenderHandler{Svc: svc})
	mux.Handle("GET /blocks/tk-labels/config", requireAdmin(ConfigFormHandler{Svc: svc}))
	mux.Handle("PUT /blocks/tk-labels/config", requireAdmin(ConfigSubmitHandler{Svc: svc, Logger: logger}))
}
