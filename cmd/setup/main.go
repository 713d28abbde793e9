package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/url"
	"strings"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/knights-analytics/hugot"
	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"go.uber.org/zap"

	"github.com/graceware/prayerserver"
	"github.com/graceware/prayerserver/adapter/filestorage"
	hugotAdapter "github.com/graceware/prayerserver/adapter/hugot"
	redisAdapter "github.com/graceware/prayerserver/adapter/redis"
	"github.com/graceware/prayerserver/adapter/store"
	weaviateAdapter "github.com/graceware/prayerserver/adapter/weaviate"
)

// One-shot embedding setup. Reads ingested rows from the relational store,
// computes or reuses cached embeddings and populates the vector store.
func main() {
	force := flag.Bool("force", false, "recompute and append embeddings even when the vector store is already populated")
	flag.Parse()

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

	dbConnOpts := url.Values{}
	dbConnOpts.Set("_fk", "true")
	dbConnOpts.Set("_journal", "WAL")
	dbConnOpts.Set("_timeout", "5000")

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?%s", viper.GetString("db.name"), dbConnOpts.Encode()))
	if err != nil {
		log.Fatal("db open: ", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatal("db ping: ", err)
	}

	if err := prayerserver.Migrate(db, viper.GetString("db.migrations")); err != nil {
		log.Fatal("db migrate: ", err)
	}

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

	var retriever prayerserver.Retriever
	switch name := viper.GetString("adapter.retrieve.name"); name {
	case "weaviate":
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

	cache, err := filestorage.New(
		filestorage.WithLogger(logger),
		filestorage.WithDir(viper.GetString("cache.dir")),
	)
	if err != nil {
		log.Fatal("filestorage adapter: ", err)
	}

	ps := prayerserver.New(
		modelAdapter,
		modelAdapter,
		retriever,
		nil,
		nil,
		store.New(db, store.WithLogger(logger)),
		prayerserver.WithLogger(logger),
		prayerserver.WithEmbeddingCache(cache),
	)

	result, err := ps.SetupEmbeddings(ctx, *force)
	if err != nil {
		log.Fatal("setup embeddings: ", err)
	}

	if result.AlreadyComplete {
		logger.Sugar().Info("embeddings already set up, nothing to do")
		return
	}
	logger.Sugar().With(
		"verses", result.Verses,
		"techniques", result.Techniques,
	).Info("embedding setup complete")
}
