package doctor

import (
	"context"
	"fmt"
	"net"

	configapp "github.com/doeshing/painpoint-go/internal/application/config"
	"github.com/doeshing/painpoint-go/internal/domain"
	"github.com/doeshing/painpoint-go/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Credentials    ports.CredentialProvider
}

// Run executes checks and returns a report. The returned error is non-nil only
// when the configuration could not be loaded at all.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("format version %s", cfg.ConfigFormatVersion)))

	if err := configapp.Validate(cfg); err != nil {
		checks = append(checks, fail("Config validation", err.Error()))
	} else {
		checks = append(checks, ok("Config validation", fmt.Sprintf("%d model(s)", len(cfg.Models))))
	}

	model, err := cfg.ResolveModel("")
	if err != nil {
		checks = append(checks, fail("Default model", err.Error()))
		return domain.HealthReport{Checks: checks}, nil
	}
	checks = append(checks,
		ok("Default model", fmt.Sprintf("%s (%s)", model.Name, model.ModelID)),
		ok("Endpoint", model.Endpoint),
		s.credentialCheck(model),
		listenCheck(cfg.GetListenAddr()),
	)

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) credentialCheck(model domain.ModelDefinition) domain.HealthCheck {
	if s.Credentials == nil {
		return warn("API key", "credential source not initialized")
	}
	if s.Credentials.Resolve(model) == "" {
		return warn("API key", fmt.Sprintf("%s missing; pass --api-key or set it in the environment", model.CredentialEnvVar()))
	}
	return ok("API key", fmt.Sprintf("%s set", model.CredentialEnvVar()))
}

func listenCheck(addr string) domain.HealthCheck {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return warn("Web listen address", fmt.Sprintf("%s: %v", addr, err))
	}
	return ok("Web listen address", addr)
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
