package venue

import "fmt"

// Venue represents a viewing location and the matches it lists.
type Venue struct {
    ID           string `json:"id"`
    Name         string `json:"name,omitempty"`
    NameEn       string `json:"name_en,omitempty"`
    Address      string `json:"address,omitempty"`
    URL          string `json:"url,omitempty"`
    Region       string `json:"region,omitempty"`
    Prefecture   string `json:"prefecture,omitempty"`
    PrefectureEn string `json:"prefecture_en,omitempty"`
    City         string `json:"city,omitempty"`

    // Matches keeps the order received from the feed. A nil slice means the
    // field was absent from the record.
    Matches []Match `json:"matches"`
}

// DisplayName returns the venue name for the given display language.
// An empty string means the venue has no name in that language.
func (v *Venue) DisplayName(lang Language) string {
    if lang == LanguageEn {
        return v.NameEn
    }
    return v.Name
}

func (v *Venue) ToString() string {
    return fmt.Sprintf("Venue(id=%s, name=%s, prefecture=%s, city=%s, matches=%d)",
        v.ID, v.Name, v.Prefecture, v.City, len(v.Matches))
}
