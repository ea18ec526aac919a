package languagetranslator

// TranslateRequest carries the text and either a model ID or a
// source/target language pair.
type TranslateRequest struct {
	Text    []string `json:"text"`
	ModelID string   `json:"model_id,omitempty"`
	Source  string   `json:"source,omitempty"`
	Target  string   `json:"target,omitempty"`
}

type Translation struct {
	Translation string `json:"translation"`
}

type TranslationResult struct {
	WordCount      int           `json:"word_count"`
	CharacterCount int           `json:"character_count"`
	Translations   []Translation `json:"translations"`
}

// Text returns the translated strings in input order.
func (r TranslationResult) Text() []string {
	out := make([]string, 0, len(r.Translations))
	for _, item := range r.Translations {
		out = append(out, item.Translation)
	}
	return out
}

type IdentifiedLanguage struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

type IdentifiedLanguages struct {
	Languages []IdentifiedLanguage `json:"languages"`
}

// Best returns the language with the highest confidence.
func (l IdentifiedLanguages) Best() (IdentifiedLanguage, bool) {
	if len(l.Languages) == 0 {
		return IdentifiedLanguage{}, false
	}
	best := l.Languages[0]
	for _, candidate := range l.Languages[1:] {
		if candidate.Confidence > best.Confidence {
			best = candidate
		}
	}
	return best, true
}

type IdentifiableLanguage struct {
	Language string `json:"language"`
	Name     string `json:"name"`
}

type IdentifiableLanguages struct {
	Languages []IdentifiableLanguage `json:"languages"`
}

type TranslationModel struct {
	ModelID      string `json:"model_id"`
	Name         string `json:"name,omitempty"`
	Source       string `json:"source,omitempty"`
	Target       string `json:"target,omitempty"`
	BaseModelID  string `json:"base_model_id,omitempty"`
	Domain       string `json:"domain,omitempty"`
	Customizable bool   `json:"customizable"`
	DefaultModel bool   `json:"default_model"`
	Owner        string `json:"owner,omitempty"`
	Status       string `json:"status,omitempty"`
}

type TranslationModels struct {
	Models []TranslationModel `json:"models"`
}

type DeleteModelResult struct {
	Status string `json:"status"`
}
