package ai

import (
	"context"
	"fmt"
	"os"
	"sync"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Clients bundles the shared model clients. Model access is expensive to set
// up and warm, so one bundle is built per process and shared read-only across
// all sessions afterwards.
type Clients struct {
	STTFast     *STTClient
	STTAccurate *STTClient
	Translator  *TranslationClient
	Speech      *SpeechClient
}

// ClientConfig names the model variants the bundle is built from.
type ClientConfig struct {
	APIKey           string
	BaseURL          string
	STTFastModel     string
	STTAccurateModel string
	TranslationModel string
	SpeechModel      string
	SpeechVoice      string
	VoiceOverrides   map[string]string
}

var (
	clientsInstance *Clients
	clientsOnce     sync.Once
	clientsErr      error
)

// LoadClients builds the shared client bundle. The bundle is constructed at
// most once per process; concurrent first calls block on the same
// initialization instead of duplicating it.
func LoadClients(cfg ClientConfig) (*Clients, error) {
	clientsOnce.Do(func() {
		clientsInstance, clientsErr = newClients(cfg)
	})
	return clientsInstance, clientsErr
}

func newClients(cfg ClientConfig) (*Clients, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is not set; export OPENAI_API_KEY")
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	client := openai.NewClientWithConfig(apiCfg)

	fast, err := NewSTTClient(client, cfg.STTFastModel)
	if err != nil {
		return nil, fmt.Errorf("create fast STT client: %w", err)
	}

	accurate, err := NewSTTClient(client, cfg.STTAccurateModel)
	if err != nil {
		return nil, fmt.Errorf("create accurate STT client: %w", err)
	}

	translator, err := NewTranslationClient(client, cfg.TranslationModel)
	if err != nil {
		return nil, fmt.Errorf("create translation client: %w", err)
	}

	speech, err := NewSpeechClient(client, cfg.SpeechModel, cfg.SpeechVoice, cfg.VoiceOverrides)
	if err != nil {
		return nil, fmt.Errorf("create speech client: %w", err)
	}

	return &Clients{
		STTFast:     fast,
		STTAccurate: accurate,
		Translator:  translator,
		Speech:      speech,
	}, nil
}

// WarmUp issues one small request per capability so the first user request
// does not pay cold-start latency. Warm-up failures are logged and ignored;
// the process still starts.
func (c *Clients) WarmUp(ctx context.Context, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("warming up model clients")

	dummy := make([]float32, 16000)
	if _, err := c.STTFast.Transcribe(ctx, dummy, "en"); err != nil {
		logger.Warn("ASR warm-up skipped", zap.Error(err))
	}

	if _, err := c.Translator.Translate(ctx, "Hello", "eng_Latn", "hin_Deva"); err != nil {
		logger.Warn("translation warm-up skipped", zap.Error(err))
	}

	if path, err := c.Speech.Synthesize(ctx, "Test", "en"); err != nil {
		logger.Warn("TTS warm-up skipped", zap.Error(err))
	} else {
		os.Remove(path)
	}

	logger.Info("warm-up complete")
}
