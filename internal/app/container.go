package app

import (
	"context"
	"fmt"

	configapp "github.com/doeshing/painpoint-go/internal/application/config"
	"github.com/doeshing/painpoint-go/internal/application/doctor"
	"github.com/doeshing/painpoint-go/internal/application/query"
	"github.com/doeshing/painpoint-go/internal/domain"
	"github.com/doeshing/painpoint-go/internal/infrastructure/ai"
	"github.com/doeshing/painpoint-go/internal/infrastructure/config"
	"github.com/doeshing/painpoint-go/internal/infrastructure/metrics"
	"github.com/doeshing/painpoint-go/internal/pkg/logger"
	"github.com/doeshing/painpoint-go/internal/ports"
)

// Options controls how the container is assembled.
type Options struct {
	Verbose    bool
	LogFormat  string
	ConfigPath string
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Credentials    ports.CredentialProvider
	Logger         *logger.Logger
	Metrics        *metrics.Collector
	DoctorService  *doctor.Service
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	log, err := logger.New(opts.Verbose, opts.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}
	log.Debug("configuration loaded", map[string]interface{}{
		"path":   cfgLoader.Path(),
		"models": len(cfg.Models),
	})

	credentials, err := config.NewCredentialSource(config.DefaultEnvFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", config.DefaultEnvFile, err)
	}

	return &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Credentials:    credentials,
		Logger:         log,
		Metrics:        metrics.NewCollector(nil),
		DoctorService: &doctor.Service{
			ConfigProvider: cfgLoader,
			Credentials:    credentials,
		},
	}, nil
}

// NewQueryController builds a controller for the named model (or the default
// model). A non-empty apiKey takes precedence over the environment.
func (c *Container) NewQueryController(apiKey, modelOverride string) (*query.Controller, error) {
	if err := configapp.Validate(c.Config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	model, err := c.Config.ResolveModel(modelOverride)
	if err != nil {
		return nil, err
	}

	credential := apiKey
	if credential == "" {
		credential = c.Credentials.Resolve(model)
	}

	transport := ai.NewHTTPTransport(model, c.Config.GetRequestTimeout())
	return query.NewController(query.Config{
		Credential: credential,
		Model:      model.ModelID,
		Endpoint:   model.Endpoint,
	}, transport, c.Logger, c.Metrics), nil
}
