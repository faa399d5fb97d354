// Package domain defines core business entities and value objects for painpoint.
//
// This file contains the model definitions used to reach the search-grounded
// generation endpoint. The domain layer is independent of infrastructure concerns
// and represents pure business logic and data structures.
package domain

// ModelDefinition describes an API endpoint configuration declared in the config file.
// Each model names the endpoint, the environment variable holding its credential and
// the model identifier sent with every request.
type ModelDefinition struct {
	Name       string    `yaml:"name"`
	Endpoint   string    `yaml:"endpoint"`
	AuthEnvVar string    `yaml:"auth_env_var"`
	ModelID    string    `yaml:"model_id"`
	APIFormat  APIFormat `yaml:"api_format,omitempty"`
}

// APIFormat tweaks how the outbound HTTP call is authenticated.
// All fields are optional with OpenAI-compatible defaults.
type APIFormat struct {
	// AuthHeaderName specifies the HTTP header name for authentication.
	// Default: "Authorization"
	AuthHeaderName string `yaml:"auth_header_name,omitempty"`

	// AuthHeaderPrefix is prepended to the API key value.
	// Default: "Bearer " (with trailing space)
	AuthHeaderPrefix string `yaml:"auth_header_prefix,omitempty"`

	// ExtraHeaders contains additional HTTP headers to send with each request.
	ExtraHeaders map[string]string `yaml:"extra_headers,omitempty"`
}

const (
	DefaultAuthHeaderName   = "Authorization"
	DefaultAuthHeaderPrefix = "Bearer "
	DefaultAuthEnvVar       = "OPENAI_API_KEY"
)

// GetAuthHeaderName returns the authentication header name with default fallback.
func (f APIFormat) GetAuthHeaderName() string {
	if f.AuthHeaderName == "" {
		return DefaultAuthHeaderName
	}
	return f.AuthHeaderName
}

// GetAuthHeaderPrefix returns the authentication header prefix with default fallback.
// A custom header name with an empty prefix means "no prefix" (e.g. "x-api-key").
func (f APIFormat) GetAuthHeaderPrefix() string {
	if f.AuthHeaderName != "" && f.AuthHeaderPrefix == "" {
		return ""
	}
	if f.AuthHeaderPrefix == "" {
		return DefaultAuthHeaderPrefix
	}
	return f.AuthHeaderPrefix
}

// CredentialEnvVar returns the environment variable the credential is read from.
func (m ModelDefinition) CredentialEnvVar() string {
	if m.AuthEnvVar == "" {
		return DefaultAuthEnvVar
	}
	return m.AuthEnvVar
}
