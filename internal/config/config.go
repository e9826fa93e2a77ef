package config

import (
	_ "embed"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed models.yaml
var modelsYAML []byte

type Config struct {
	Server Server
	Face   Face
	Models Models
}

type Server struct {
	Port int // HTTP listen port, PORT env var
}

type Face struct {
	BackendURL string // face recognition backend base URL
	Model      string // embedding model name (e.g. ArcFace)
	Detector   string // detector backend (e.g. opencv)
}

// Models is the embedded catalog of supported embedding models.
type Models struct {
	Models map[string]ModelInfo `yaml:"models"`
}

// ModelInfo describes an embedding model's output contract.
// The threshold belongs to the model+cosine pairing and must be revisited
// if the model changes.
type ModelInfo struct {
	Dim       int     `yaml:"dim"`
	Threshold float64 `yaml:"threshold"`
}

const (
	// DefaultPort is used when the PORT environment variable is unset.
	DefaultPort = 5001

	defaultBackendURL = "http://localhost:8008"
	defaultModel      = "ArcFace"
	defaultDetector   = "opencv"
)

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envString reads an environment variable with a fallback default.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func Load() *Config {
	var models Models
	if err := yaml.Unmarshal(modelsYAML, &models); err != nil {
		// Embedded file, so this can only break at build time.
		panic("failed to unmarshal embedded models.yaml: " + err.Error())
	}

	return &Config{
		Server: Server{
			Port: envInt("PORT", DefaultPort),
		},
		Face: Face{
			BackendURL: envString("FACE_BACKEND_URL", defaultBackendURL),
			Model:      envString("FACE_MODEL", defaultModel),
			Detector:   envString("FACE_DETECTOR", defaultDetector),
		},
		Models: models,
	}
}

// ModelInfo returns catalog metadata for a model name.
// Unknown models fall back to the ArcFace contract so the service still
// answers; ok reports whether the model was actually in the catalog.
func (c *Config) ModelInfo(name string) (ModelInfo, bool) {
	if info, ok := c.Models.Models[name]; ok {
		return info, true
	}
	return ModelInfo{Dim: 512, Threshold: 0.55}, false
}
