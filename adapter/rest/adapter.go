package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/graceware/prayerserver"
)

type PrayerServer interface {
	RunIngestion(ctx context.Context) (prayerserver.IngestResult, error)
	SetupEmbeddings(ctx context.Context, force bool) (prayerserver.SetupResult, error)
	SearchVerses(ctx context.Context, query string) (string, error)
	GeneratePrayer(ctx context.Context, theme string) (string, error)
	GenerateChatResponse(ctx context.Context, message string) (string, error)
}

type Adapter struct {
	prayerServer PrayerServer
	logger       *zap.Logger
}

type Option func(*Adapter)

func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

func New(prayerServer PrayerServer, options ...Option) *Adapter {
	a := &Adapter{
		prayerServer: prayerServer,
		logger:       zap.NewNop(),
	}

	for _, o := range options {
		o(a)
	}

	return a
}

const (
	defaultTimeout = 10 * time.Second
	// Ingestion reads and parses the whole bulk dataset, generation calls out
	// to a remote model. Both need more headroom than a plain lookup.
	ingestTimeout   = 300 * time.Second
	generateTimeout = 60 * time.Second
)

func (a *Adapter) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /data/ingestion", a.Ingest)
	mux.HandleFunc("GET /rag/run", a.SearchVerses)
	mux.HandleFunc("POST /prayer/generate_prayer", a.GeneratePrayer)
	mux.HandleFunc("POST /chat/generate_response", a.GenerateChatResponse)

	return a.withRequestLogging(mux)
}

func (a *Adapter) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.Must(uuid.NewV4())

		a.logger.Sugar().With(
			"request_id", requestID.String(),
			"method", r.Method,
			"path", r.URL.Path,
		).Info("handling request")

		next.ServeHTTP(w, r)
	})
}
