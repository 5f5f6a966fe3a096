// Package media implements the HTTP surface of the gateway: the /media/{key}
// object endpoint and the /media/list catalog endpoint.
package media

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/skillia/media-gateway/internal/catalog"
	"github.com/skillia/media-gateway/internal/store"
)

// Handler serves the media routes. It is stateless per request and safe for
// concurrent use.
type Handler struct {
	catalog *catalog.Catalog
	store   store.Store
	log     *slog.Logger
}

// NewHandler creates a handler over the given catalog and backing store. The
// store may be nil when the bucket binding is absent; requests then fail with
// a 500 configuration error.
func NewHandler(cat *catalog.Catalog, st store.Store, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		catalog: cat,
		store:   st,
		log:     log,
	}
}

// Register mounts the media routes on the router. Method dispatch happens
// inside the handlers so 405 responses can carry an Allow header.
func (h *Handler) Register(r chi.Router) {
	r.Handle("/media/list", instrument("list", http.HandlerFunc(h.List)))
	r.Handle("/media/{key}", instrument("serve", http.HandlerFunc(h.ServeVideo)))
}

// ServeVideo handles GET|HEAD|OPTIONS /media/{key}: resolve the key, fetch
// the object, and stream it back, honoring single-range Range headers with
// 206 partial responses.
func (h *Handler) ServeVideo(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	entry, ok := h.catalog.Resolve(key)
	if !ok {
		// Unknown keys are cached briefly: the catalog changes rarely,
		// but a bad link should not be cached for a year.
		w.Header().Set("Cache-Control", "public, max-age=60")
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error:         "video not found",
			VideoKey:      key,
			AvailableKeys: h.catalog.Keys(),
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

	ctx := r.Context()

	obj, err := h.store.Get(ctx, entry.ObjectName, nil)
	if err != nil {
		if errors.Is(err, store.ErrObjectNotFound) {
			// The key resolved but the object is gone: the catalog
			// and the bucket have drifted apart.
			writeJSON(w, http.StatusNotFound, errorResponse{
				Error:    "video file not found in media bucket",
				Filename: entry.ObjectName,
				VideoKey: key,
			})
			return
		}
		h.internalError(w, r, err)
		return
	}
	defer obj.Body.Close()

	size := obj.Size
	hdr := w.Header()
	hdr.Set("Content-Type", catalog.MimeType(entry.ObjectName))
	hdr.Set("Accept-Ranges", "bytes")
	// Published objects are immutable; a renamed key is a new URL.
	hdr.Set("Cache-Control", "public, max-age=31536000, immutable")

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return

	case http.MethodHead:
		hdr.Set("Content-Length", strconv.FormatInt(size, 10))
		w.WriteHeader(http.StatusOK)
		return

	case http.MethodGet:
		// Handled below.

	default:
		hdr.Del("Accept-Ranges")
		hdr.Del("Cache-Control")
		hdr.Set("Allow", "GET, HEAD, OPTIONS")
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{
			Error: "method not allowed",
		})
		return
	}

	if rng := parseRange(r.Header.Get("Range"), size); rng != nil {
		h.servePartial(w, r, entry, rng, size)
		return
	}

	hdr.Set("Content-Length", strconv.FormatInt(size, 10))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, obj.Body); err != nil {
		// Headers are gone; all we can do is log the broken stream.
		h.log.Warn("stream aborted", "key", key, "error", err)
	}
}

// servePartial fetches exactly the requested slice from the bucket and
// responds 206. The full object is never buffered.
func (h *Handler) servePartial(w http.ResponseWriter, r *http.Request, entry catalog.Entry, rng *store.ByteRange, size int64) {
	part, err := h.store.Get(r.Context(), entry.ObjectName, rng)
	if err != nil {
		if errors.Is(err, store.ErrRangeNotSatisfiable) || errors.Is(err, store.ErrObjectNotFound) {
			writeJSON(w, http.StatusRequestedRangeNotSatisfiable, errorResponse{
				Error: "range not satisfiable",
			})
			return
		}
		h.internalError(w, r, err)
		return
	}
	defer part.Body.Close()

	contentLength := rng.End - rng.Start + 1
	hdr := w.Header()
	hdr.Set("Content-Length", strconv.FormatInt(contentLength, 10))
	hdr.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", rng.Start, rng.End, size))
	w.WriteHeader(http.StatusPartialContent)
	if _, err := io.Copy(w, part.Body); err != nil {
		h.log.Warn("stream aborted", "key", entry.Key, "error", err)
	}
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error:   "internal server error",
		Message: err.Error(),
	})
}
