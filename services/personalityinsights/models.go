package personalityinsights

import "strings"

type ContentItem struct {
	Content     string `json:"content"`
	ID          string `json:"id,omitempty"`
	Created     int64  `json:"created,omitempty"`
	Updated     int64  `json:"updated,omitempty"`
	ContentType string `json:"contenttype,omitempty"`
	Language    string `json:"language,omitempty"`
	ParentID    string `json:"parentid,omitempty"`
	Reply       *bool  `json:"reply,omitempty"`
	Forward     *bool  `json:"forward,omitempty"`
}

type Content struct {
	ContentItems []ContentItem `json:"contentItems"`
}

// PlainText joins the item contents for text/plain and text/html requests.
func (c Content) PlainText() string {
	parts := make([]string, 0, len(c.ContentItems))
	for _, item := range c.ContentItems {
		if strings.TrimSpace(item.Content) == "" {
			continue
		}
		parts = append(parts, item.Content)
	}
	return strings.Join(parts, "\n")
}

type Trait struct {
	TraitID     string   `json:"trait_id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Percentile  float64  `json:"percentile"`
	RawScore    *float64 `json:"raw_score,omitempty"`
	Significant *bool    `json:"significant,omitempty"`
	Children    []Trait  `json:"children,omitempty"`
}

type Behavior struct {
	TraitID    string  `json:"trait_id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Percentage float64 `json:"percentage"`
}

type ConsumptionPreference struct {
	ConsumptionPreferenceID string  `json:"consumption_preference_id"`
	Name                    string  `json:"name"`
	Score                   float64 `json:"score"`
}

type ConsumptionPreferencesCategory struct {
	ConsumptionPreferenceCategoryID string                  `json:"consumption_preference_category_id"`
	Name                            string                  `json:"name"`
	ConsumptionPreferences          []ConsumptionPreference `json:"consumption_preferences"`
}

type Warning struct {
	WarningID string `json:"warning_id"`
	Message   string `json:"message"`
}

type Profile struct {
	ProcessedLanguage      string                           `json:"processed_language"`
	WordCount              int                              `json:"word_count"`
	WordCountMessage       string                           `json:"word_count_message,omitempty"`
	Personality            []Trait                          `json:"personality"`
	Needs                  []Trait                          `json:"needs"`
	Values                 []Trait                          `json:"values"`
	Behavior               []Behavior                       `json:"behavior,omitempty"`
	ConsumptionPreferences []ConsumptionPreferencesCategory `json:"consumption_preferences,omitempty"`
	Warnings               []Warning                        `json:"warnings"`
}

// Trait finds a trait by ID anywhere in the personality tree.
func (p Profile) Trait(traitID string) (Trait, bool) {
	return findTrait(p.Personality, traitID)
}

func findTrait(traits []Trait, traitID string) (Trait, bool) {
	for _, trait := range traits {
		if trait.TraitID == traitID {
			return trait, true
		}
		if child, ok := findTrait(trait.Children, traitID); ok {
			return child, true
		}
	}
	return Trait{}, false
}
