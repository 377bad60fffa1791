package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the full application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	AI         AIConfig         `mapstructure:"ai"`
	Translator TranslatorConfig `mapstructure:"translator"`
	Pipeline   PipelineConfig   `mapstructure:"pipeline"`
	MongoDB    MongoDBConfig    `mapstructure:"mongodb"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// AIConfig configures the model service clients.
type AIConfig struct {
	OpenAI OpenAIConfig `mapstructure:"openai"`
}

// OpenAIConfig configures the OpenAI-compatible model endpoint and the model
// names for each capability. The fast STT model serves English; the accurate
// one serves everything else.
type OpenAIConfig struct {
	APIKey           string            `mapstructure:"api_key"`
	BaseURL          string            `mapstructure:"base_url"`
	STTFastModel     string            `mapstructure:"stt_fast_model"`
	STTAccurateModel string            `mapstructure:"stt_accurate_model"`
	TranslationModel string            `mapstructure:"translation_model"`
	SpeechModel      string            `mapstructure:"speech_model"`
	SpeechVoice      string            `mapstructure:"speech_voice"`
	VoiceOverrides   map[string]string `mapstructure:"voice_overrides"`
}

// TranslatorConfig selects the translation model backend.
type TranslatorConfig struct {
	// Backend is "openai" (default) or "lambda".
	Backend string `mapstructure:"backend"`
	// LambdaFunction is the translator function name when Backend is "lambda".
	LambdaFunction string `mapstructure:"lambda_function"`
}

// PipelineConfig tunes the pipeline caches, queues, and tools.
type PipelineConfig struct {
	CacheSize         int    `mapstructure:"cache_size"`
	MaxHistoryItems   int    `mapstructure:"max_history_items"`
	RecordQueueSize   int    `mapstructure:"record_queue_size"`
	ArchiveBufferSize int    `mapstructure:"archive_buffer_size"`
	FFmpegPath        string `mapstructure:"ffmpeg_path"`
}

// MongoDBConfig configures the optional result archive.
type MongoDBConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	URI         string `mapstructure:"uri"`
	Database    string `mapstructure:"database"`
	Timeout     string `mapstructure:"timeout"`
	MaxPoolSize int    `mapstructure:"max_pool_size"`
}

// LoadConfig reads configs/config.yaml from the working directory and merges
// environment variables over it.
func LoadConfig() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	configPath := filepath.Join(cwd, "configs")
	viper.AddConfigPath(configPath)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		viper.Set("ai.openai.api_key", apiKey)
	}
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		viper.Set("mongodb.uri", uri)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills in the tunables that have sensible defaults.
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.AI.OpenAI.STTFastModel == "" {
		cfg.AI.OpenAI.STTFastModel = "whisper-1"
	}
	if cfg.AI.OpenAI.STTAccurateModel == "" {
		cfg.AI.OpenAI.STTAccurateModel = cfg.AI.OpenAI.STTFastModel
	}
	if cfg.AI.OpenAI.SpeechModel == "" {
		cfg.AI.OpenAI.SpeechModel = "tts-1"
	}
	if cfg.Translator.Backend == "" {
		cfg.Translator.Backend = "openai"
	}
	if cfg.Pipeline.CacheSize <= 0 {
		cfg.Pipeline.CacheSize = 500
	}
	if cfg.Pipeline.MaxHistoryItems <= 0 {
		cfg.Pipeline.MaxHistoryItems = 10
	}
	if cfg.Pipeline.RecordQueueSize <= 0 {
		cfg.Pipeline.RecordQueueSize = 8
	}
	if cfg.Pipeline.ArchiveBufferSize <= 0 {
		cfg.Pipeline.ArchiveBufferSize = 100
	}
}

// validateConfig checks the required settings.
func validateConfig(cfg *Config) error {
	if cfg.AI.OpenAI.APIKey == "" {
		return fmt.Errorf("API key is not set; export OPENAI_API_KEY")
	}
	if cfg.AI.OpenAI.TranslationModel == "" && cfg.Translator.Backend == "openai" {
		return fmt.Errorf("translation model is not set")
	}
	if cfg.Translator.Backend == "lambda" && cfg.Translator.LambdaFunction == "" {
		return fmt.Errorf("translator backend is lambda but no function name is set")
	}
	if cfg.Translator.Backend != "openai" && cfg.Translator.Backend != "lambda" {
		return fmt.Errorf("unknown translator backend: %q", cfg.Translator.Backend)
	}
	if cfg.MongoDB.Enabled && cfg.MongoDB.URI == "" {
		return fmt.Errorf("mongodb is enabled but no URI is set")
	}
	return nil
}
