package domain

import (
	"fmt"
	"time"
)

// GetDefaultModel retrieves the default model definition from configuration
// Returns an error if the default model is not found
func (c *Config) GetDefaultModel() (ModelDefinition, error) {
	if c.Preferences.DefaultModel == "" {
		return ModelDefinition{}, fmt.Errorf("no default model configured")
	}

	for _, model := range c.Models {
		if model.Name == c.Preferences.DefaultModel {
			return model, nil
		}
	}

	return ModelDefinition{}, fmt.Errorf("default model %s not found in configuration", c.Preferences.DefaultModel)
}

// ResolveModel picks the model named by override, falling back to the default model
// and then to the first configured model.
func (c *Config) ResolveModel(override string) (ModelDefinition, error) {
	if override != "" {
		if model, ok := c.FindModelByName(override); ok {
			return model, nil
		}
		return ModelDefinition{}, fmt.Errorf("model %s not configured", override)
	}
	if c.Preferences.DefaultModel == "" && len(c.Models) > 0 {
		return c.Models[0], nil
	}
	return c.GetDefaultModel()
}

// FindModelByName searches for a model by its name
func (c *Config) FindModelByName(name string) (ModelDefinition, bool) {
	for _, model := range c.Models {
		if model.Name == name {
			return model, true
		}
	}
	return ModelDefinition{}, false
}

// HasModel checks if a model with the given name exists in the configuration
func (c *Config) HasModel(name string) bool {
	_, exists := c.FindModelByName(name)
	return exists
}

// AddModel appends a model definition. Names must be unique.
func (c *Config) AddModel(model ModelDefinition) error {
	if c.HasModel(model.Name) {
		return fmt.Errorf("model with name %s already exists", model.Name)
	}
	c.Models = append(c.Models, model)
	return nil
}

// RemoveModel drops a model by name. Removing the default model promotes the
// first remaining model, or clears the default when none remain.
func (c *Config) RemoveModel(name string) error {
	idx := -1
	for i, model := range c.Models {
		if model.Name == name {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("model %s not found", name)
	}

	c.Models = append(c.Models[:idx], c.Models[idx+1:]...)
	if c.Preferences.DefaultModel == name {
		c.Preferences.DefaultModel = ""
		if len(c.Models) > 0 {
			c.Preferences.DefaultModel = c.Models[0].Name
		}
	}
	return nil
}

// SetDefaultModel sets the default model by name
func (c *Config) SetDefaultModel(name string) error {
	if !c.HasModel(name) {
		return fmt.Errorf("cannot set default model: model %s does not exist", name)
	}
	c.Preferences.DefaultModel = name
	return nil
}

// GetRequestTimeout returns the transport timeout. Zero means the transport
// default applies (no explicit deadline).
func (c *Config) GetRequestTimeout() time.Duration {
	if c.Preferences.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Preferences.TimeoutSeconds) * time.Second
}

// GetListenAddr returns the web surface address with default fallback.
func (c *Config) GetListenAddr() string {
	if c.Server.ListenAddr == "" {
		return DefaultListenAddr
	}
	return c.Server.ListenAddr
}

// ValidateConsistency checks the internal consistency of the configuration
func (c *Config) ValidateConsistency() error {
	if c.Preferences.DefaultModel != "" && !c.HasModel(c.Preferences.DefaultModel) {
		return fmt.Errorf("default model %s does not exist in models list", c.Preferences.DefaultModel)
	}
	if c.Preferences.DefaultModel != "" && len(c.Models) == 0 {
		return fmt.Errorf("default model is set but no models are configured")
	}
	return nil
}
