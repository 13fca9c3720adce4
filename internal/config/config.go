package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	LLM       LLMConfig       `yaml:"llm"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	VectorDB  VectorDBConfig  `yaml:"vectordb"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Store     StoreConfig     `yaml:"store"`
}

type ServerConfig struct {
	Addr       string `yaml:"addr"`
	UploadsDir string `yaml:"uploads_dir"`
}

type LLMConfig struct {
	OpenRouterBase string `yaml:"openrouter_base"`
	OpenRouterKey  string `yaml:"openrouter_key"`
	InferenceModel string `yaml:"inference_model"`
	VisionModel    string `yaml:"vision_model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type EmbeddingConfig struct {
	EmbeddingModel string `yaml:"embedding_model"`
}

type VectorDBConfig struct {
	Path     string `yaml:"path"`
	InMemory bool   `yaml:"in_memory"`
}

type AnalysisConfig struct {
	// Thresholds are pointers so an explicit 0 in the file is
	// distinguishable from an absent key. 0 means exact match only.
	SampleThreshold   *float64 `yaml:"sample_threshold"`
	MinimalThreshold  *float64 `yaml:"minimal_threshold"`
	MinSegmentLength  int     `yaml:"min_segment_length"`
	MinClassifyLength int     `yaml:"min_classify_length"`
	Workers           int     `yaml:"workers"`

	// Optional reference documents; when empty the built-in clause lists
	// are used to populate the collections.
	MinimalRequirementDocs []string `yaml:"minimal_requirement_docs"`
	SampleAgreementDocs    []string `yaml:"sample_agreement_docs"`
}

type StoreConfig struct {
	DSN   string `yaml:"dsn"`
	Debug bool   `yaml:"debug"`
}

// LoadConfig reads the yaml config file, applies defaults and environment
// overrides. A missing file is not an error; defaults are used.
func LoadConfig(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if v := os.Getenv("OPENROUTER_KEY"); v != "" {
		cfg.LLM.OpenRouterKey = v
	}
	if v := os.Getenv("OPENROUTER_BASE"); v != "" {
		cfg.LLM.OpenRouterBase = v
	}
	applyDefaults(cfg)
	return cfg, nil
}

func (c *LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func float64Ptr(v float64) *float64 { return &v }

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:       ":5000",
			UploadsDir: "./uploads",
		},
		LLM: LLMConfig{
			OpenRouterBase: "https://openrouter.ai/api/v1",
			InferenceModel: "openai/gpt-4o-mini",
			VisionModel:    "openai/gpt-4o-mini",
			TimeoutSeconds: 60,
		},
		Embedding: EmbeddingConfig{
			EmbeddingModel: "text-embedding-3-small",
		},
		VectorDB: VectorDBConfig{
			Path: "./chromemdb",
		},
		Analysis: AnalysisConfig{
			SampleThreshold:   float64Ptr(0.3),
			MinimalThreshold:  float64Ptr(0.3),
			MinSegmentLength:  10,
			MinClassifyLength: 40,
			Workers:           4,
		},
		Store: StoreConfig{
			DSN: "file:./data/analyses.db",
		},
	}
}

// applyDefaults fills zero values left by a partial config file.
func applyDefaults(cfg *Config) {
	def := defaults()
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if cfg.Server.UploadsDir == "" {
		cfg.Server.UploadsDir = def.Server.UploadsDir
	}
	if cfg.LLM.OpenRouterBase == "" {
		cfg.LLM.OpenRouterBase = def.LLM.OpenRouterBase
	}
	if cfg.LLM.InferenceModel == "" {
		cfg.LLM.InferenceModel = def.LLM.InferenceModel
	}
	if cfg.LLM.VisionModel == "" {
		cfg.LLM.VisionModel = cfg.LLM.InferenceModel
	}
	if cfg.LLM.TimeoutSeconds == 0 {
		cfg.LLM.TimeoutSeconds = def.LLM.TimeoutSeconds
	}
	if cfg.Embedding.EmbeddingModel == "" {
		cfg.Embedding.EmbeddingModel = def.Embedding.EmbeddingModel
	}
	if cfg.VectorDB.Path == "" {
		cfg.VectorDB.Path = def.VectorDB.Path
	}
	if cfg.Analysis.SampleThreshold == nil {
		cfg.Analysis.SampleThreshold = def.Analysis.SampleThreshold
	}
	if cfg.Analysis.MinimalThreshold == nil {
		cfg.Analysis.MinimalThreshold = def.Analysis.MinimalThreshold
	}
	if cfg.Analysis.MinSegmentLength == 0 {
		cfg.Analysis.MinSegmentLength = def.Analysis.MinSegmentLength
	}
	if cfg.Analysis.MinClassifyLength == 0 {
		cfg.Analysis.MinClassifyLength = def.Analysis.MinClassifyLength
	}
	if cfg.Analysis.Workers == 0 {
		cfg.Analysis.Workers = def.Analysis.Workers
	}
	if cfg.Store.DSN == "" {
		cfg.Store.DSN = def.Store.DSN
	}
}
