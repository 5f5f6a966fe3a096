// mediagw is the standalone media gateway server. It serves the video catalog
// over /media/{key} and /media/list, backed by an S3 bucket (or an in-memory
// store for local development).
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skillia/media-gateway/internal/catalog"
	"github.com/skillia/media-gateway/internal/media"
	"github.com/skillia/media-gateway/internal/store"
)

func main() {
	var (
		httpAddr  = flag.String("http.addr", ":8080", "HTTP listen address")
		storeKind = flag.String("store", "s3", "backing store: s3 or memory")
		mediaDir  = flag.String("media.dir", "", "directory of files to seed the memory store with")
	)
	flag.Parse()

	// Local .env files are a convenience; absence is not an error.
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	st, err := buildStore(*storeKind, *mediaDir, log)
	if err != nil {
		log.Error("store setup failed", "error", err)
		os.Exit(1)
	}

	router := newRouter(st, log)

	log.Info("media gateway listening", "addr", *httpAddr, "store", *storeKind)
	if err := http.ListenAndServe(*httpAddr, router); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func buildStore(kind, mediaDir string, log *slog.Logger) (store.Store, error) {
	switch kind {
	case "memory":
		m := store.NewMemoryStore()
		if mediaDir != "" {
			if err := m.LoadDir(mediaDir); err != nil {
				return nil, err
			}
			log.Info("seeded memory store", "dir", mediaDir)
		}
		return m, nil

	case "s3":
		// The bucket binding is the single configuration-validity
		// precondition; requests fail with 500 without it.
		bucket := os.Getenv("MEDIA_BUCKET")
		if bucket == "" {
			log.Error("MEDIA_BUCKET environment variable not set")
			return nil, nil
		}
		cfg, err := config.LoadDefaultConfig(context.Background())
		if err != nil {
			return nil, err
		}
		return store.NewS3Store(s3.NewFromConfig(cfg), bucket), nil

	default:
		log.Error("unknown store kind", "store", kind)
		os.Exit(2)
		return nil, nil
	}
}

func newRouter(st store.Store, log *slog.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(media.RequestID)
	r.Use(media.RequestLogger(log))
	r.Use(media.CORS)

	h := media.NewHandler(catalog.Default(), st, log)
	h.Register(r)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
