package block

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"tk-labels/internal/domain/entity"
	"tk-labels/internal/handler/http/pathutil"
	"tk-labels/internal/handler/http/respond"
	"tk-labels/internal/observability/logging"
	"tk-labels/internal/usecase/labels"
	"tk-labels/pkg/security/csp"
)

var (
	fragmentPolicy = csp.FragmentPolicy()
	jsonPolicy     = csp.StrictPolicy()
)

// RenderHandler renders the block for one node.
type RenderHandler struct{ Svc *labels.Service }

// ServeHTTP answers with the concatenated label markup, one fragment per line, or with a JSON
// list when format=json is requested. Hub failures still answer 200 with no labels.
func (h RenderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := h.Svc.RenderNode(r.Context(), id)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, entity.ErrInvalidNodeID) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}

	if !res.OK() {
		logging.FromContext(r.Context()).Warn("tk labels unavailable",
			slog.Int64("node_id", id),
			slog.String("error", res.Err.Error()))
	}

	w.Header().Set("Cache-Control", "no-cache")
	if r.URL.Query().Get("format") == "json" {
		w.Header().Set(jsonPolicy.HeaderName(), jsonPolicy.Build())
		respond.JSON(w, http.StatusOK, toRenderDTO(res.Descriptors))
		return
	}

	w.Header().Set(fragmentPolicy.HeaderName(), fragmentPolicy.Build())
	markup := make([]string, 0, len(res.Descriptors))
	for _, d := range res.Descriptors {
		markup = append(markup, d.Markup)
	}
	respond.HTML(w, http.StatusOK, strings.Join(markup, "\n"))
}
