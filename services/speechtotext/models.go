package speechtotext

import "strings"

type SupportedFeatures struct {
	CustomLanguageModel bool `json:"custom_language_model"`
	SpeakerLabels       bool `json:"speaker_labels"`
}

type SpeechModel struct {
	Name              string            `json:"name"`
	Language          string            `json:"language"`
	Rate              int               `json:"rate"`
	URL               string            `json:"url,omitempty"`
	SupportedFeatures SupportedFeatures `json:"supported_features"`
	Description       string            `json:"description,omitempty"`
}

type SpeechModels struct {
	Models []SpeechModel `json:"models"`
}

type KeywordResult struct {
	NormalizedText string  `json:"normalized_text"`
	StartTime      float64 `json:"start_time"`
	EndTime        float64 `json:"end_time"`
	Confidence     float64 `json:"confidence"`
}

type WordAlternativeResult struct {
	Confidence float64 `json:"confidence"`
	Word       string  `json:"word"`
}

type WordAlternativeResults struct {
	StartTime    float64                 `json:"start_time"`
	EndTime      float64                 `json:"end_time"`
	Alternatives []WordAlternativeResult `json:"alternatives"`
}

// SpeechRecognitionAlternative carries one transcript hypothesis. Timestamps
// and WordConfidence are [word, value...] tuples as sent by the service.
type SpeechRecognitionAlternative struct {
	Transcript     string   `json:"transcript"`
	Confidence     *float64 `json:"confidence,omitempty"`
	Timestamps     [][]any  `json:"timestamps,omitempty"`
	WordConfidence [][]any  `json:"word_confidence,omitempty"`
}

type SpeechRecognitionResult struct {
	Final            bool                           `json:"final"`
	Alternatives     []SpeechRecognitionAlternative `json:"alternatives"`
	KeywordsResult   map[string][]KeywordResult     `json:"keywords_result,omitempty"`
	WordAlternatives []WordAlternativeResults       `json:"word_alternatives,omitempty"`
}

type SpeakerLabelsResult struct {
	From       float64 `json:"from"`
	To         float64 `json:"to"`
	Speaker    int     `json:"speaker"`
	Confidence float64 `json:"confidence"`
	Final      bool    `json:"final"`
}

type SpeechRecognitionResults struct {
	Results       []SpeechRecognitionResult `json:"results,omitempty"`
	ResultIndex   int                       `json:"result_index"`
	SpeakerLabels []SpeakerLabelsResult     `json:"speaker_labels,omitempty"`
	Warnings      []string                  `json:"warnings,omitempty"`
}

// Transcript joins the top alternative of every final result.
func (r SpeechRecognitionResults) Transcript() string {
	var out strings.Builder
	for _, result := range r.Results {
		if !result.Final || len(result.Alternatives) == 0 {
			continue
		}
		out.WriteString(result.Alternatives[0].Transcript)
	}
	return out.String()
}

type RecognitionJob struct {
	ID        string                     `json:"id"`
	Status    string                     `json:"status"`
	Created   string                     `json:"created"`
	Updated   string                     `json:"updated,omitempty"`
	URL       string                     `json:"url,omitempty"`
	UserToken string                     `json:"user_token,omitempty"`
	Results   []SpeechRecognitionResults `json:"results,omitempty"`
	Warnings  []string                   `json:"warnings,omitempty"`
}

type RecognitionJobs struct {
	Recognitions []RecognitionJob `json:"recognitions"`
}

type RegisterStatus struct {
	Status string `json:"status"`
	URL    string `json:"url"`
}

type CreateLanguageModel struct {
	Name          string `json:"name"`
	BaseModelName string `json:"base_model_name"`
	Dialect       string `json:"dialect,omitempty"`
	Description   string `json:"description,omitempty"`
}

type LanguageModel struct {
	CustomizationID string   `json:"customization_id"`
	Created         string   `json:"created,omitempty"`
	Language        string   `json:"language,omitempty"`
	Dialect         string   `json:"dialect,omitempty"`
	Versions        []string `json:"versions,omitempty"`
	Owner           string   `json:"owner,omitempty"`
	Name            string   `json:"name,omitempty"`
	Description     string   `json:"description,omitempty"`
	BaseModelName   string   `json:"base_model_name,omitempty"`
	Status          string   `json:"status,omitempty"`
	Progress        int      `json:"progress"`
	Warnings        string   `json:"warnings,omitempty"`
}

type LanguageModels struct {
	Customizations []LanguageModel `json:"customizations"`
}

type Corpus struct {
	Name                 string `json:"name"`
	TotalWords           int    `json:"total_words"`
	OutOfVocabularyWords int    `json:"out_of_vocabulary_words"`
	Status               string `json:"status"`
	Error                string `json:"error,omitempty"`
}

type Corpora struct {
	Corpora []Corpus `json:"corpora"`
}

type CustomWord struct {
	Word       string   `json:"word,omitempty"`
	SoundsLike []string `json:"sounds_like,omitempty"`
	DisplayAs  string   `json:"display_as,omitempty"`
}

type CustomWords struct {
	Words []CustomWord `json:"words"`
}

type Word struct {
	Word       string              `json:"word"`
	SoundsLike []string            `json:"sounds_like,omitempty"`
	DisplayAs  string              `json:"display_as,omitempty"`
	Count      int                 `json:"count"`
	Source     []string            `json:"source,omitempty"`
	Error      []map[string]string `json:"error,omitempty"`
}

type Words struct {
	Words []Word `json:"words"`
}

type CreateAcousticModel struct {
	Name          string `json:"name"`
	BaseModelName string `json:"base_model_name"`
	Description   string `json:"description,omitempty"`
}

type AcousticModel struct {
	CustomizationID string   `json:"customization_id"`
	Created         string   `json:"created,omitempty"`
	Language        string   `json:"language,omitempty"`
	Versions        []string `json:"versions,omitempty"`
	Owner           string   `json:"owner,omitempty"`
	Name            string   `json:"name,omitempty"`
	Description     string   `json:"description,omitempty"`
	BaseModelName   string   `json:"base_model_name,omitempty"`
	Status          string   `json:"status,omitempty"`
	Progress        int      `json:"progress"`
	Warnings        string   `json:"warnings,omitempty"`
}

type AcousticModels struct {
	Customizations []AcousticModel `json:"customizations"`
}

type AudioDetails struct {
	Type        string `json:"type,omitempty"`
	Codec       string `json:"codec,omitempty"`
	Frequency   int    `json:"frequency,omitempty"`
	Compression string `json:"compression,omitempty"`
}

type AudioResource struct {
	Duration float64      `json:"duration"`
	Name     string       `json:"name"`
	Details  AudioDetails `json:"details"`
	Status   string       `json:"status"`
}

type AudioListing struct {
	Duration  float64         `json:"duration,omitempty"`
	Name      string          `json:"name,omitempty"`
	Details   *AudioDetails   `json:"details,omitempty"`
	Status    string          `json:"status,omitempty"`
	Container *AudioResource  `json:"container,omitempty"`
	Audio     []AudioResource `json:"audio,omitempty"`
}

type AudioResources struct {
	TotalMinutesOfAudio float64         `json:"total_minutes_of_audio"`
	Audio               []AudioResource `json:"audio"`
}
