package translate

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/vaani-ai/vaani/internal/language"
)

// Model is the capability interface for the underlying translation model.
// The source code is passed as a hint; the target code is forced as the
// generation target.
type Model interface {
	Translate(ctx context.Context, text, sourceCode, targetCode string) (string, error)
}

// Service translates text between supported languages, deduplicating
// repeated requests through a bounded cache. Model failures degrade to
// returning the input text unchanged; the pipeline is never blocked on a
// translation error.
type Service struct {
	model Model
	cache *Cache
	log   *zap.Logger
}

// NewService creates a translation service backed by the given model.
func NewService(model Model, cacheSize int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		model: model,
		cache: NewCache(cacheSize),
		log:   logger.With(zap.String("component", "translate")),
	}
}

// Translate converts text from sourceLang to targetLang, both given as
// human-readable language names. Empty or whitespace-only text is returned
// unchanged without touching the cache or the model.
func (s *Service) Translate(ctx context.Context, text, sourceLang, targetLang string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	if cached, ok := s.cache.Get(sourceLang, targetLang, text); ok {
		s.log.Debug("cache hit",
			zap.String("source_lang", sourceLang),
			zap.String("target_lang", targetLang))
		return cached
	}

	srcCode := language.Resolve(sourceLang).TranslationCode
	tgtCode := language.ResolveTarget(targetLang).TranslationCode

	translated, err := s.model.Translate(ctx, text, srcCode, tgtCode)
	if err != nil {
		s.log.Error("translation failed, returning original text",
			zap.String("source_code", srcCode),
			zap.String("target_code", tgtCode),
			zap.Error(err))
		return text
	}

	s.cache.Put(sourceLang, targetLang, text, translated)
	return translated
}

// CacheLen exposes the cache fill level for health reporting.
func (s *Service) CacheLen() int {
	return s.cache.Len()
}
