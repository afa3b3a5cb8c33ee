// Package appid resolves the application identity: binary name, env prefix,
// config name and telemetry namespace.
package appid

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	appidentityassets "github.com/wordser/wordser/internal/assets/appidentity"
)

// EnvIdentityPath names an identity file that takes precedence over the
// embedded one.
const EnvIdentityPath = "WORDSER_APP_IDENTITY_PATH"

// Identity describes how the binary presents itself.
type Identity struct {
	BinaryName         string
	Vendor             string
	EnvPrefix          string
	ConfigName         string
	Description        string
	TelemetryNamespace string
	RepositoryURL      string
}

// NotFoundError is returned when an explicit identity file does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("app identity not found at %s", e.Path)
}

type identityFile struct {
	App struct {
		BinaryName  string `yaml:"binary_name"`
		Vendor      string `yaml:"vendor"`
		EnvPrefix   string `yaml:"env_prefix"`
		ConfigName  string `yaml:"config_name"`
		Description string `yaml:"description"`
	} `yaml:"app"`
	Metadata struct {
		TelemetryNamespace string `yaml:"telemetry_namespace"`
		RepositoryURL      string `yaml:"repository_url"`
	} `yaml:"metadata"`
}

var (
	mu     sync.Mutex
	cached *Identity
)

// Get returns the process identity, loading it on first use.
func Get(ctx context.Context) (*Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mu.Lock()
	defer mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	data := appidentityassets.YAML
	if path := strings.TrimSpace(os.Getenv(EnvIdentityPath)); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, &NotFoundError{Path: path}
			}
			return nil, fmt.Errorf("read app identity: %w", err)
		}
		data = raw
	}

	identity, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cached = identity
	return identity, nil
}

// Parse decodes an identity document and fills derived defaults.
func Parse(data []byte) (*Identity, error) {
	var doc identityFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse app identity: %w", err)
	}
	if doc.App.BinaryName == "" {
		return nil, fmt.Errorf("parse app identity: binary_name is required")
	}

	identity := &Identity{
		BinaryName:         doc.App.BinaryName,
		Vendor:             doc.App.Vendor,
		EnvPrefix:          doc.App.EnvPrefix,
		ConfigName:         doc.App.ConfigName,
		Description:        doc.App.Description,
		TelemetryNamespace: doc.Metadata.TelemetryNamespace,
		RepositoryURL:      doc.Metadata.RepositoryURL,
	}
	if identity.EnvPrefix == "" {
		identity.EnvPrefix = strings.ToUpper(identity.BinaryName) + "_"
	}
	if identity.ConfigName == "" {
		identity.ConfigName = identity.BinaryName
	}
	if identity.TelemetryNamespace == "" {
		identity.TelemetryNamespace = identity.BinaryName
	}
	return identity, nil
}

// Reset clears the cached identity.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	cached = nil
}
