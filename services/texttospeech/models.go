package texttospeech

type SupportedFeatures struct {
	CustomPronunciation bool `json:"custom_pronunciation"`
	VoiceTransformation bool `json:"voice_transformation"`
}

type Voice struct {
	URL               string            `json:"url"`
	Gender            string            `json:"gender"`
	Name              string            `json:"name"`
	Language          string            `json:"language"`
	Description       string            `json:"description"`
	Customizable      bool              `json:"customizable"`
	SupportedFeatures SupportedFeatures `json:"supported_features"`
	Customization     *VoiceModel       `json:"customization,omitempty"`
}

type Voices struct {
	Voices []Voice `json:"voices"`
}

// Text is the synthesis input. It may carry SSML markup.
type Text struct {
	Text string `json:"text"`
}

type Pronunciation struct {
	Pronunciation string `json:"pronunciation"`
}

type Word struct {
	Word         string `json:"word"`
	Translation  string `json:"translation"`
	PartOfSpeech string `json:"part_of_speech,omitempty"`
}

type Words struct {
	Words []Word `json:"words"`
}

// Translation is the sounds-like or phonetic rendering of a custom word.
type Translation struct {
	Translation  string `json:"translation"`
	PartOfSpeech string `json:"part_of_speech,omitempty"`
}

type CreateVoiceModel struct {
	Name        string `json:"name"`
	Language    string `json:"language,omitempty"`
	Description string `json:"description,omitempty"`
}

type UpdateVoiceModel struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Words       []Word `json:"words,omitempty"`
}

type VoiceModel struct {
	CustomizationID string `json:"customization_id"`
	Name            string `json:"name,omitempty"`
	Language        string `json:"language,omitempty"`
	Owner           string `json:"owner,omitempty"`
	Created         string `json:"created,omitempty"`
	LastModified    string `json:"last_modified,omitempty"`
	Description     string `json:"description,omitempty"`
	Words           []Word `json:"words,omitempty"`
}

type VoiceModels struct {
	Customizations []VoiceModel `json:"customizations"`
}
