package block

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"tk-labels/internal/handler/http/auth"
	"tk-labels/internal/handler/http/respond"
	"tk-labels/internal/usecase/labels"
)

// ConfigFormHandler returns the admin form prefilled with the stored configuration.
type ConfigFormHandler struct{ Svc *labels.Service }

func (h ConfigFormHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(jsonPolicy.HeaderName(), jsonPolicy.Build())
	respond.JSON(w, http.StatusOK, h.Svc.Form())
}

// ConfigSubmitHandler stores submitted form values. Values are taken verbatim; keys that are
// not submitted keep their stored value.
type ConfigSubmitHandler struct {
	Svc    *labels.Service
	Logger *slog.Logger
}

func (h ConfigSubmitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(jsonPolicy.HeaderName(), jsonPolicy.Build())

	var values labels.FormValues
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.SafeError(w, http.StatusRequestEntityTooLarge, errors.New("request body must be smaller than the limit"))
			return
		}
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid form body"))
		return
	}

	cfg, err := h.Svc.Submit(r.Context(), values)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	if h.Logger != nil {
		actor, _ := auth.UserFromContext(r.Context())
		h.Logger.Info("block config updated",
			slog.String("actor", actor),
			slog.String("block_id", h.Svc.BlockID),
			slog.String("api_base_url", cfg.APIBaseURL))
	}
	respond.JSON(w, http.StatusOK, toConfigDTO(cfg))
}
