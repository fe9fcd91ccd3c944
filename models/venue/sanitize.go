package venue

import "strings"

// Sanitize drops malformed records: venues without an id or without a
// matches array, and matches without a date. The input slice is not
// modified. It returns the kept venues and the number of dropped records.
func Sanitize(venues []Venue) ([]Venue, int) {
    out := make([]Venue, 0, len(venues))
    dropped := 0
    for _, v := range venues {
        if strings.TrimSpace(v.ID) == "" || v.Matches == nil {
            dropped++
            continue
        }
        matches := make([]Match, 0, len(v.Matches))
        for _, m := range v.Matches {
            if strings.TrimSpace(m.Date) == "" {
                dropped++
                continue
            }
            matches = append(matches, m)
        }
        v.Matches = matches
        out = append(out, v)
    }
    return out, dropped
}
