package hugot

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"go.uber.org/zap"
)

type modelConfig struct {
	name        string
	onxFilePath string
}

type Adapter struct {
	session         *hugot.Session
	logger          *zap.Logger
	embedding       *pipelines.FeatureExtractionPipeline
	sentiment       *pipelines.TextClassificationPipeline
	embeddingConfig modelConfig
	sentimentConfig modelConfig
	modelsDir       string
}

type Option func(*Adapter)

func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

func WithEmbeddingModelName(name string) Option {
	return func(a *Adapter) {
		a.embeddingConfig.name = name
	}
}

func WithSentimentModelName(name string) Option {
	return func(a *Adapter) {
		a.sentimentConfig.name = name
	}
}

func WithEmbeddingModelOnnxFilePath(path string) Option {
	return func(a *Adapter) {
		a.embeddingConfig.onxFilePath = path
	}
}

func WithSentimentModelOnnxFilePath(path string) Option {
	return func(a *Adapter) {
		a.sentimentConfig.onxFilePath = path
	}
}

func WithModelsDir(path string) Option {
	return func(a *Adapter) {
		a.modelsDir = path
	}
}

const (
	defaultModelsDir          = "/models"
	defaultOnxFilePath        = "onnx/model.onnx"
	defaultEmbeddingModelName = "sentence-transformers/all-MiniLM-L6-v2"
	defaultSentimentModelName = "distilbert/distilbert-base-uncased-finetuned-sst-2-english"
)

func New(ctx context.Context, session *hugot.Session, options ...Option) (*Adapter, error) {
	a := &Adapter{
		session:         session,
		logger:          zap.NewNop(),
		embeddingConfig: modelConfig{name: defaultEmbeddingModelName, onxFilePath: defaultOnxFilePath},
		sentimentConfig: modelConfig{name: defaultSentimentModelName, onxFilePath: defaultOnxFilePath},
		modelsDir:       defaultModelsDir,
	}

	for _, o := range options {
		o(a)
	}

	a.logger.Sugar().With(
		"embedding_model", a.embeddingConfig.name,
		"sentiment_model", a.sentimentConfig.name,
		"models_dir", a.modelsDir,
	).Info("init hugot adapter")

	if err := a.init(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

const adapterName = "hugot"

func (a *Adapter) Name() string {
	return adapterName
}

func (a *Adapter) init(ctx context.Context) error {
	if a.embeddingConfig.name == "" {
		return fmt.Errorf("embedding model must be specified")
	}

	modelPath, err := a.ensureModel(a.embeddingConfig)
	if err != nil {
		return fmt.Errorf("failed to prepare embedding model: %w", err)
	}

	// Create the feature extraction pipeline
	a.embedding, err = hugot.NewPipeline(a.session, hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "embeddingPipeline",
	})
	if err != nil {
		return fmt.Errorf("failed to create embedding pipeline: %w", err)
	}

	if a.sentimentConfig.name != "" {
		modelPath, err := a.ensureModel(a.sentimentConfig)
		if err != nil {
			return fmt.Errorf("failed to prepare sentiment model: %w", err)
		}

		// Create the text classification pipeline
		a.sentiment, err = hugot.NewPipeline(a.session, hugot.TextClassificationConfig{
			ModelPath: modelPath,
			Name:      "sentimentPipeline",
		})
		if err != nil {
			return fmt.Errorf("failed to create sentiment pipeline: %w", err)
		}
	}

	return nil
}

func (a *Adapter) ensureModel(config modelConfig) (string, error) {
	modelPath, err := checkModelExists(a.modelsDir, config.name)
	if err != nil {
		return "", err
	}

	if modelPath != "" {
		a.logger.Sugar().With("path", modelPath).Info("model already exists, skipping download")
		return modelPath, nil
	}

	a.logger.Sugar().With("model", config.name).Info("start downloading model")

	downloadOptions := hugot.NewDownloadOptions()
	downloadOptions.OnnxFilePath = config.onxFilePath
	modelPath, err = hugot.DownloadModel(config.name, a.modelsDir, downloadOptions)
	if err != nil {
		return "", fmt.Errorf("failed to download model: %w", err)
	}

	a.logger.Sugar().With("model", config.name).Info("downloaded model")
	return modelPath, nil
}

func checkModelExists(destination, modelName string) (string, error) {
	modelP := modelName
	if strings.Contains(modelP, ":") {
		modelP = strings.Split(modelName, ":")[0]
	}
	modelPath := path.Join(destination, strings.ReplaceAll(modelP, "/", "_"))

	_, err := os.Stat(modelPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}

	return modelPath, nil
}
