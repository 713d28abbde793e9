package googlegenai

import (
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type Adapter struct {
	client          *genai.Client
	generativeModel string
	logger          *zap.Logger
}

type Option func(*Adapter)

func WithGenerativeModel(model string) Option {
	return func(a *Adapter) {
		a.generativeModel = model
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

const (
	defaultGenerativeModel = "gemini-2.5-flash"
)

func New(client *genai.Client, options ...Option) *Adapter {
	a := &Adapter{
		client:          client,
		generativeModel: defaultGenerativeModel,
		logger:          zap.NewNop(),
	}

	for _, o := range options {
		o(a)
	}

	a.logger.Sugar().With(
		"generative model", a.generativeModel,
	).Info("init google genai adapter")

	return a
}

const adapterName = "google-genai"

func (a *Adapter) Name() string {
	return adapterName
}
