package translate

import (
	"context"
	"errors"
	"testing"
)

// stubModel is a deterministic translation model that counts invocations.
type stubModel struct {
	calls  int
	result string
	err    error

	lastSourceCode string
	lastTargetCode string
}

func (m *stubModel) Translate(ctx context.Context, text, sourceCode, targetCode string) (string, error) {
	m.calls++
	m.lastSourceCode = sourceCode
	m.lastTargetCode = targetCode
	if m.err != nil {
		return "", m.err
	}
	if m.result != "" {
		return m.result, nil
	}
	return "[" + targetCode + "] " + text, nil
}

func TestTranslateCachesRepeatedRequests(t *testing.T) {
	model := &stubModel{result: "सुप्रभात"}
	svc := NewService(model, 10, nil)

	first := svc.Translate(context.Background(), "good morning", "english", "hindi")
	second := svc.Translate(context.Background(), "  Good Morning  ", "english", "hindi")

	if first != "सुप्रभात" || second != first {
		t.Errorf("got %q then %q, want identical %q", first, second, "सुप्रभात")
	}
	if model.calls != 1 {
		t.Errorf("model invoked %d times, want 1", model.calls)
	}
}

func TestTranslateBlankTextIsNoOp(t *testing.T) {
	model := &stubModel{}
	svc := NewService(model, 10, nil)

	for _, text := range []string{"", "   ", "\t\n"} {
		if got := svc.Translate(context.Background(), text, "english", "hindi"); got != text {
			t.Errorf("Translate(%q) = %q, want unchanged input", text, got)
		}
	}
	if model.calls != 0 {
		t.Errorf("model invoked %d times for blank input, want 0", model.calls)
	}
	if svc.CacheLen() != 0 {
		t.Errorf("cache has %d entries after blank input, want 0", svc.CacheLen())
	}
}

func TestTranslateResolvesLanguageCodes(t *testing.T) {
	model := &stubModel{}
	svc := NewService(model, 10, nil)

	svc.Translate(context.Background(), "hello", "english", "tamil")

	if model.lastSourceCode != "eng_Latn" {
		t.Errorf("source code = %q, want eng_Latn", model.lastSourceCode)
	}
	if model.lastTargetCode != "tam_Taml" {
		t.Errorf("target code = %q, want tam_Taml", model.lastTargetCode)
	}
}

func TestTranslateUnknownLanguagesFallBackToDefaults(t *testing.T) {
	model := &stubModel{}
	svc := NewService(model, 10, nil)

	svc.Translate(context.Background(), "hello", "klingon", "romulan")

	if model.lastSourceCode != "eng_Latn" {
		t.Errorf("source code = %q, want default eng_Latn", model.lastSourceCode)
	}
	if model.lastTargetCode != "hin_Deva" {
		t.Errorf("target code = %q, want default hin_Deva", model.lastTargetCode)
	}
}

func TestTranslateDegradesToOriginalTextOnModelFailure(t *testing.T) {
	model := &stubModel{err: errors.New("model unavailable")}
	svc := NewService(model, 10, nil)

	got := svc.Translate(context.Background(), "hello", "english", "hindi")
	if got != "hello" {
		t.Errorf("got %q, want original text back", got)
	}
	if svc.CacheLen() != 0 {
		t.Error("failed translations must not be cached")
	}
}

func TestTranslateSameSourceAndTargetIsSafe(t *testing.T) {
	model := &stubModel{result: "hello"}
	svc := NewService(model, 10, nil)

	if got := svc.Translate(context.Background(), "hello", "english", "english"); got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}
