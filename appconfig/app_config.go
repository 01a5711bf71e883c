package appconfig

import (
	"os"
	"strconv"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/config"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
)

const configPath = "config.ini"

type AppConfig struct {
	config.BootConfig `ini:",extends"`

	ClassifierModel string `ini:"classifier_model"`
	SynthesisModel  string `ini:"synthesis_model"`

	PineconeIndexHost  string `ini:"pinecone_index_host"`
	EmbeddingDimension int    `ini:"embedding_dimension"`

	SubQuestionTopK int `ini:"sub_question_top_k"`
	BroadProbeTopK  int `ini:"broad_probe_top_k"`
	BroadMatchLimit int `ini:"broad_match_limit"`

	// BroadProbesSpec holds the probe queries as one semicolon-separated
	// string, so it fits a single ini key or environment variable.
	BroadProbesSpec string `ini:"broad_probes"`
}

// Load builds the runtime config in three layers: defaults, then the
// config.ini section for the current ENV when the file exists, then
// environment variables. Secrets (API keys) stay in the environment only.
// dotenv.LoadEnv must have run first.
func Load() *AppConfig {
	return LoadFrom(configPath)
}

func LoadFrom(path string) *AppConfig {
	cfg := &AppConfig{
		ClassifierModel:    "gpt-4o-mini",
		SynthesisModel:     "gpt-4o",
		EmbeddingDimension: 768,
		SubQuestionTopK:    5,
		BroadProbeTopK:     15,
		BroadMatchLimit:    15,
	}

	if _, err := os.Stat(path); err == nil {
		if err := config.LoadConfig(path, cfg); err != nil {
			logger.Error("Failed to load config file", zap.String("path", path), zap.Error(err))
		}
	}

	overrideString(&cfg.ClassifierModel, "CLASSIFIER_MODEL")
	overrideString(&cfg.SynthesisModel, "SYNTHESIS_MODEL")
	overrideString(&cfg.PineconeIndexHost, "PINECONE_INDEX_HOST")
	overrideString(&cfg.BroadProbesSpec, "BROAD_PROBES")
	overrideInt(&cfg.EmbeddingDimension, "EMBEDDING_DIMENSION")
	overrideInt(&cfg.SubQuestionTopK, "SUB_QUESTION_TOP_K")
	overrideInt(&cfg.BroadProbeTopK, "BROAD_PROBE_TOP_K")
	overrideInt(&cfg.BroadMatchLimit, "BROAD_MATCH_LIMIT")

	return cfg
}

// BroadProbes returns the configured simple-path probe queries, if any.
// Probes are domain tuning, not contract.
func (c *AppConfig) BroadProbes() []string {
	if c.BroadProbesSpec == "" {
		return nil
	}
	return strings.Split(c.BroadProbesSpec, ";")
}

func overrideString(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

func overrideInt(target *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*target = n
		}
	}
}
