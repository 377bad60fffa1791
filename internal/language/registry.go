package language

import "strings"

// ASR model tiers. English gets the fast model; the remaining supported
// languages need the accurate one for usable output.
const (
	TierFast     = "fast"
	TierAccurate = "accurate"
	// TierOther marks a language outside the tuned set; the accurate model
	// runs without a forced language hint.
	TierOther = "other"
)

// Default codes returned for unknown language names. The registry never
// fails a lookup; an unknown name is a caller bug, not a crash.
const (
	DefaultTranslationCode = "eng_Latn"
	DefaultTargetCode      = "hin_Deva"
	DefaultVoiceCode       = "hi"
)

// Profile holds everything the pipeline needs to know about one language.
type Profile struct {
	Name            string
	Tier            string
	TranslationCode string
	VoiceCode       string
	// ASRHint is the language hint passed to the ASR model, empty when the
	// model should auto-detect.
	ASRHint string
}

// profiles maps canonical lower-case language names to their codes.
// Translation codes follow the NLLB convention, voice codes the two-letter
// speech synthesis convention.
var profiles = map[string]Profile{
	"english":   {Name: "english", Tier: TierFast, TranslationCode: "eng_Latn", VoiceCode: "en", ASRHint: "en"},
	"hindi":     {Name: "hindi", Tier: TierAccurate, TranslationCode: "hin_Deva", VoiceCode: "hi", ASRHint: "hi"},
	"bengali":   {Name: "bengali", Tier: TierAccurate, TranslationCode: "ben_Beng", VoiceCode: "bn"},
	"tamil":     {Name: "tamil", Tier: TierAccurate, TranslationCode: "tam_Taml", VoiceCode: "ta"},
	"telugu":    {Name: "telugu", Tier: TierAccurate, TranslationCode: "tel_Telu", VoiceCode: "te"},
	"marathi":   {Name: "marathi", Tier: TierAccurate, TranslationCode: "mar_Deva", VoiceCode: "mr"},
	"gujarati":  {Name: "gujarati", Tier: TierAccurate, TranslationCode: "guj_Gujr", VoiceCode: "gu"},
	"kannada":   {Name: "kannada", Tier: TierAccurate, TranslationCode: "kan_Knda", VoiceCode: "kn"},
	"malayalam": {Name: "malayalam", Tier: TierAccurate, TranslationCode: "mal_Mlym", VoiceCode: "ml"},
	"punjabi":   {Name: "punjabi", Tier: TierAccurate, TranslationCode: "pan_Guru", VoiceCode: "pa"},
	"odia":      {Name: "odia", Tier: TierAccurate, TranslationCode: "ory_Orya", VoiceCode: "or"},
	"assamese":  {Name: "assamese", Tier: TierAccurate, TranslationCode: "asm_Beng", VoiceCode: "as"},
	"urdu":      {Name: "urdu", Tier: TierAccurate, TranslationCode: "urd_Arab", VoiceCode: "ur"},
}

// Resolve looks up a language by human-readable name, case-insensitively.
// Unknown names fall back to defaults field by field instead of failing:
// tier "other" with no hint, English as translation source, Hindi as voice.
func Resolve(name string) Profile {
	key := strings.ToLower(strings.TrimSpace(name))
	if p, ok := profiles[key]; ok {
		return p
	}
	return Profile{
		Name:            key,
		Tier:            TierOther,
		TranslationCode: DefaultTranslationCode,
		VoiceCode:       DefaultVoiceCode,
	}
}

// ResolveTarget is Resolve for translation targets: an unknown target falls
// back to Hindi's translation code rather than English's.
func ResolveTarget(name string) Profile {
	key := strings.ToLower(strings.TrimSpace(name))
	if p, ok := profiles[key]; ok {
		return p
	}
	return Profile{
		Name:            key,
		Tier:            TierOther,
		TranslationCode: DefaultTargetCode,
		VoiceCode:       DefaultVoiceCode,
	}
}

// Supported reports whether the name is one of the configured languages.
func Supported(name string) bool {
	_, ok := profiles[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Names returns the canonical names of all supported languages.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	return names
}
