package venue

// Language selects which of the paired display strings is active.
type Language string

const (
    LanguageJa Language = "ja"
    LanguageEn Language = "en"
)

// ParseLanguage maps user input onto a Language, defaulting to Japanese.
func ParseLanguage(s string) (Language, bool) {
    switch Language(s) {
    case LanguageJa, "":
        return LanguageJa, true
    case LanguageEn:
        return LanguageEn, true
    }
    return LanguageJa, false
}

// SeatStatus holds the raw availability strings, one per seat category.
type SeatStatus struct {
    Table    string `json:"table"`
    Standing string `json:"standing"`
}

// Match is a scheduled event listed by a venue.
type Match struct {
    Date    string     `json:"date"`
    Sport   string     `json:"sport,omitempty"`
    Match   string     `json:"match,omitempty"`
    MatchEn string     `json:"match_en,omitempty"`
    Status  SeatStatus `json:"status"`
}

// Title returns the match title for the given display language.
func (m *Match) Title(lang Language) string {
    if lang == LanguageEn {
        return m.MatchEn
    }
    return m.Match
}
