package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/doeshing/painpoint-go/internal/domain"
	"github.com/doeshing/painpoint-go/internal/ports"
)

// DefaultEnvFile is read from the working directory when present.
const DefaultEnvFile = ".env"

// CredentialSource reads API keys from the process environment, falling back
// to values declared in .env files. Real environment variables always win.
type CredentialSource struct {
	fileValues map[string]string
	lookup     func(string) (string, bool)
}

// NewCredentialSource reads the given .env files once. Missing files are skipped;
// malformed files are reported.
func NewCredentialSource(envFiles ...string) (*CredentialSource, error) {
	values := make(map[string]string)
	for _, path := range envFiles {
		parsed, err := godotenv.Read(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		for key, value := range parsed {
			if _, seen := values[key]; !seen {
				values[key] = value
			}
		}
	}
	return &CredentialSource{fileValues: values, lookup: os.LookupEnv}, nil
}

// Resolve implements ports.CredentialProvider.
func (s *CredentialSource) Resolve(model domain.ModelDefinition) string {
	name := model.CredentialEnvVar()
	if value, ok := s.lookup(name); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return s.fileValues[name]
}

var _ ports.CredentialProvider = (*CredentialSource)(nil)
