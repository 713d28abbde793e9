package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/knights-analytics/hugot"
	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/graceware/prayerserver"
	"github.com/graceware/prayerserver/adapter/filestorage"
	googlegenai "github.com/graceware/prayerserver/adapter/google-genai"
	hugotAdapter "github.com/graceware/prayerserver/adapter/hugot"
	"github.com/graceware/prayerserver/adapter/pdf"
	redisAdapter "github.com/graceware/prayerserver/adapter/redis"
	"github.com/graceware/prayerserver/adapter/rest"
	"github.com/graceware/prayerserver/adapter/store"
	weaviateAdapter "github.com/graceware/prayerserver/adapter/weaviate"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		log.Fatal("fatal error config file: ", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("logger: ", err)
	}
	defer logger.Sync()

	// Connect to the database
	dbConnOpts := url.Values{}
	dbConnOpts.Set("_fk", "true")
	dbConnOpts.Set("_journal", "WAL")
	dbConnOpts.Set("_timeout", "5000")

	logger.Sugar().With("db", viper.GetString("db.name"), "opts", dbConnOpts.Encode()).Info("connecting to db")

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?%s", viper.GetString("db.name"), dbConnOpts.Encode()))
	if err != nil {
		log.Fatal("db open: ", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatal("db ping: ", err)
	}

	// Run db migrations
	if err := prayerserver.Migrate(db, viper.GetString("db.migrations")); err != nil {
		log.Fatal("db migrate: ", err)
	}

	// Embedder and sentiment classifier share a single hugot session
	session, err := hugot.NewGoSession()
	if err != nil {
		log.Fatal("hugot session: ", err)
	}
	defer func() {
		if err := session.Destroy(); err != nil {
			log.Fatal("hugot session destroy: ", err)
		}
	}()

	modelAdapter, err := hugotAdapter.New(
		ctx,
		session,
		hugotAdapter.WithLogger(logger),
		hugotAdapter.WithEmbeddingModelName(viper.GetString("adapter.embed.model")),
		hugotAdapter.WithSentimentModelName(viper.GetString("adapter.sentiment.model")),
		hugotAdapter.WithModelsDir(viper.GetString("adapter.models_dir")),
	)
	if err != nil {
		log.Fatal("hugot adapter: ", err)
	}

	// Retriever
	var retriever prayerserver.Retriever
	switch name := viper.GetString("adapter.retrieve.name"); name {
	case "weaviate":
		logger.Sugar().Info("retrieve adapter: weaviate")
		wvClient, err := weaviate.NewClient(weaviate.Config{
			Host:   viper.GetString("weaviate.addr"),
			Scheme: viper.GetString("weaviate.scheme"),
		})
		if err != nil {
			log.Fatal("weaviate client: ", err)
		}
		retriever, err = weaviateAdapter.New(ctx, wvClient, weaviateAdapter.WithLogger(logger))
		if err != nil {
			log.Fatal("weaviate adapter: ", err)
		}
	case "redis":
		logger.Sugar().Info("retrieve adapter: redis")
		rdb := redis.NewClient(&redis.Options{
			Addr:     viper.GetString("redis.addr"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
			Protocol: viper.GetInt("redis.protocol"),
		})
		retriever, err = redisAdapter.New(
			ctx,
			rdb,
			redisAdapter.WithLogger(logger),
			redisAdapter.WithDialectVersion(viper.GetInt("redis.dialect_version")),
			redisAdapter.WithVectorDim(prayerserver.VectorDim),
			redisAdapter.WithVectorDistanceMetric(viper.GetString("redis.vector_distance_metric")),
		)
		if err != nil {
			log.Fatal("redis adapter: ", err)
		}
	default:
		log.Fatalf("unknown retrieve adapter: %s", name)
	}

	// The client gets the API key from the environment variable `GEMINI_API_KEY`.
	genaiClient, err := genai.NewClient(ctx, nil)
	if err != nil {
		log.Fatal("genai client: ", err)
	}
	lm := googlegenai.New(
		genaiClient,
		googlegenai.WithLogger(logger),
		googlegenai.WithGenerativeModel(viper.GetString("adapter.generative.model")),
	)

	// Embedding cache
	cache, err := filestorage.New(
		filestorage.WithLogger(logger),
		filestorage.WithDir(viper.GetString("cache.dir")),
	)
	if err != nil {
		log.Fatal("filestorage adapter: ", err)
	}

	var (
		extractor    = pdf.New(pdf.WithLogger(logger))
		storeAdapter = store.New(db, store.WithLogger(logger))
		ps           = prayerserver.New(
			modelAdapter,
			modelAdapter,
			retriever,
			lm,
			extractor,
			storeAdapter,
			prayerserver.WithLogger(logger),
			prayerserver.WithEmbeddingCache(cache),
			prayerserver.WithBibleDataPath(viper.GetString("data.bible")),
			prayerserver.WithTherapyManualPath(viper.GetString("data.therapy_manual")),
		)
		restAdapter = rest.New(ps, rest.WithLogger(logger))
		address     = ":" + viper.GetString("http.port")
	)

	httpServer := &http.Server{
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       10 * time.Second,
		Addr:              address,
		Handler:           restAdapter.Handler(),
	}

	logger.Sugar().With("address", address).Info("listening")

	go func() {
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
		logger.Sugar().Info("stopped serving new connections")
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownRelease()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("HTTP shutdown error: %v", err)
	}
	logger.Sugar().Info("graceful shutdown complete")
}
