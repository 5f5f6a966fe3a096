package media

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/skillia/media-gateway/internal/catalog"
)

// listVideo is one catalog entry as the listing endpoint presents it.
type listVideo struct {
	Key         string `json:"key"`
	ID          string `json:"id"`
	Title       string `json:"title"`
	Filename    string `json:"filename"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	Exists      *bool  `json:"exists,omitempty"`
}

type listFilter struct {
	Category string `json:"category"`
}

type listResponse struct {
	Videos     []listVideo `json:"videos"`
	Total      int         `json:"total"`
	Categories []string    `json:"categories"`
	Filter     *listFilter `json:"filter,omitempty"`
}

// List handles GET|OPTIONS /media/list: enumerate the catalog with metadata,
// optionally filtered by category and annotated with live existence checks
// against the bucket.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodGet:
		// Handled below.
	default:
		w.Header().Set("Allow", "GET, OPTIONS")
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{
			Error: "method not allowed",
		})
		return
	}

	if h.store == nil {
		h.log.Error("media bucket binding not configured")
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: "media bucket not configured",
		})
		return
	}

	query := r.URL.Query()
	category := query.Get("category")
	checkExists := query.Get("checkExists") == "true"

	var entries []catalog.Entry
	for _, e := range h.catalog.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		entries = append(entries, e)
	}

	videos := make([]listVideo, len(entries))
	for i, e := range entries {
		videos[i] = listVideo{
			Key:         e.Key,
			ID:          e.ID,
			Title:       e.Title,
			Filename:    e.ObjectName,
			Category:    e.Category,
			Description: e.Description,
			URL:         "/media/" + e.Key,
		}
	}

	if checkExists {
		h.checkExistence(r, entries, videos)
	}

	categories := make([]string, 0, len(videos))
	seen := make(map[string]bool, len(videos))
	for _, v := range videos {
		if !seen[v.Category] {
			seen[v.Category] = true
			categories = append(categories, v.Category)
		}
	}

	resp := listResponse{
		Videos:     videos,
		Total:      len(videos),
		Categories: categories,
	}
	if category != "" {
		resp.Filter = &listFilter{Category: category}
	}

	// The catalog only changes at deploy time, but checkExists reflects
	// live bucket state; cache for minutes, not a year.
	w.Header().Set("Cache-Control", "public, max-age=300")
	writeJSON(w, http.StatusOK, resp)
}

// checkExistence probes the bucket for every entry concurrently. Each result
// lands at its entry's index, so completion order cannot mix entries up, and
// a failed probe reads as "does not exist" rather than failing the listing.
func (h *Handler) checkExistence(r *http.Request, entries []catalog.Entry, videos []listVideo) {
	g, ctx := errgroup.WithContext(r.Context())
	for i, e := range entries {
		i, name := i, e.ObjectName
		g.Go(func() error {
			ok, err := h.store.Head(ctx, name)
			if err != nil {
				h.log.Warn("existence probe failed", "filename", name, "error", err)
				ok = false
			}
			videos[i].Exists = &ok
			return nil
		})
	}
	_ = g.Wait()
}
