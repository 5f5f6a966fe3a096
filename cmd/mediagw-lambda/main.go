// mediagw-lambda runs the media gateway behind API Gateway. It adapts proxy
// events to the same chi router the standalone server uses, base64-encoding
// binary bodies the way API Gateway requires.
package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/skillia/media-gateway/internal/catalog"
	"github.com/skillia/media-gateway/internal/media"
	"github.com/skillia/media-gateway/internal/store"
)

var router http.Handler

func init() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// A missing bucket binding is surfaced per request as a 500 rather
	// than crashing the function at cold start.
	var st store.Store
	if bucket := os.Getenv("MEDIA_BUCKET"); bucket == "" {
		log.Error("MEDIA_BUCKET environment variable not set")
	} else {
		cfg, err := config.LoadDefaultConfig(context.Background())
		if err != nil {
			log.Error("failed to load AWS config", "error", err)
			os.Exit(1)
		}
		st = store.NewS3Store(s3.NewFromConfig(cfg), bucket)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(media.RequestID)
	r.Use(media.RequestLogger(log))
	r.Use(media.CORS)

	h := media.NewHandler(catalog.Default(), st, log)
	h.Register(r)

	router = r
}

func main() {
	lambda.Start(handleEvent)
}

func handleEvent(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	req, err := newHTTPRequest(ctx, event)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"error":"internal server error"}`,
		}, nil
	}

	rec := newResponseRecorder()
	router.ServeHTTP(rec, req)
	return rec.proxyResponse(), nil
}

// newHTTPRequest converts an API Gateway proxy event into an http.Request the
// router can serve.
func newHTTPRequest(ctx context.Context, event events.APIGatewayProxyRequest) (*http.Request, error) {
	var body io.Reader
	if event.Body != "" {
		if event.IsBase64Encoded {
			decoded, err := base64.StdEncoding.DecodeString(event.Body)
			if err != nil {
				return nil, err
			}
			body = bytes.NewReader(decoded)
		} else {
			body = strings.NewReader(event.Body)
		}
	}

	req, err := http.NewRequestWithContext(ctx, event.HTTPMethod, event.Path, body)
	if err != nil {
		return nil, err
	}

	query := req.URL.Query()
	for param, value := range event.QueryStringParameters {
		query.Add(param, value)
	}
	for param, values := range event.MultiValueQueryStringParameters {
		for _, value := range values {
			query.Add(param, value)
		}
	}
	req.URL.RawQuery = query.Encode()

	for key, value := range event.Headers {
		req.Header.Add(key, value)
	}
	return req, nil
}

// responseRecorder captures the router's response for conversion back into a
// proxy response.
type responseRecorder struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func newResponseRecorder() *responseRecorder {
	return &responseRecorder{
		header: make(http.Header),
		status: http.StatusOK,
	}
}

func (r *responseRecorder) Header() http.Header {
	return r.header
}

func (r *responseRecorder) Write(p []byte) (int, error) {
	return r.body.Write(p)
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
}

func (r *responseRecorder) proxyResponse() events.APIGatewayProxyResponse {
	headers := make(map[string]string, len(r.header))
	for key, values := range r.header {
		headers[key] = strings.Join(values, ", ")
	}

	resp := events.APIGatewayProxyResponse{
		StatusCode: r.status,
		Headers:    headers,
	}
	if r.body.Len() == 0 {
		return resp
	}
	if isTextual(r.header.Get("Content-Type")) {
		resp.Body = r.body.String()
	} else {
		// Video bytes must cross API Gateway base64-encoded.
		resp.Body = base64.StdEncoding.EncodeToString(r.body.Bytes())
		resp.IsBase64Encoded = true
	}
	return resp
}

func isTextual(contentType string) bool {
	switch {
	case strings.HasPrefix(contentType, "text/"),
		strings.HasPrefix(contentType, "application/json"):
		return true
	}
	return false
}
