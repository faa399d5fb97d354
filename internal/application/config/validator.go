package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/doeshing/painpoint-go/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if len(cfg.Models) == 0 {
		return errors.New("at least one model must be configured")
	}
	seen := make(map[string]struct{}, len(cfg.Models))
	for i, model := range cfg.Models {
		if err := validateModel(model); err != nil {
			return fmt.Errorf("models[%d]: %w", i, err)
		}
		if _, dup := seen[model.Name]; dup {
			return fmt.Errorf("models[%d]: duplicate name %s", i, model.Name)
		}
		seen[model.Name] = struct{}{}
	}

	if cfg.Preferences.DefaultModel != "" && !cfg.HasModel(cfg.Preferences.DefaultModel) {
		return fmt.Errorf("default model %s not found in models list", cfg.Preferences.DefaultModel)
	}
	if cfg.Preferences.TimeoutSeconds < 0 {
		return fmt.Errorf("preferences.timeout must be >= 0")
	}
	return nil
}

func validateModel(model domain.ModelDefinition) error {
	if strings.TrimSpace(model.Name) == "" {
		return errors.New("name must be set")
	}
	if strings.TrimSpace(model.ModelID) == "" {
		return fmt.Errorf("model %s: model_id must be set", model.Name)
	}
	return validateEndpoint(model)
}

func validateEndpoint(model domain.ModelDefinition) error {
	parsed, err := url.Parse(model.Endpoint)
	if err != nil {
		return fmt.Errorf("model %s: endpoint invalid: %w", model.Name, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("model %s: endpoint must be an http(s) URL, got %q", model.Name, model.Endpoint)
	}
	if parsed.Host == "" {
		return fmt.Errorf("model %s: endpoint has no host", model.Name)
	}
	return nil
}
