package vintagestory

import "time"

// TimeLayout is the timestamp format used throughout the upstream API.
const TimeLayout = "2006-01-02 15:04:05"

// ParseTime converts an upstream timestamp such as "2024-03-01 12:30:00".
// Upstream timestamps carry no zone; they are interpreted as UTC.
func ParseTime(s string) (time.Time, error) {
	return time.ParseInLocation(TimeLayout, s, time.UTC)
}

// ToSummary reduces a full record to the shape used by listings.
// ModIDStrs is collected from the releases that declare one.
func (m *Mod) ToSummary() ModSummary {
	text := m.Text
	var ids []string
	for _, r := range m.Releases {
		if r.ModIDStr != nil {
			ids = append(ids, *r.ModIDStr)
		}
	}
	return ModSummary{
		ModID:          m.ModID,
		AssetID:        m.AssetID,
		Downloads:      m.Downloads,
		Follows:        m.Follows,
		TrendingPoints: m.TrendingPoints,
		Comments:       m.Comments,
		Name:           m.Name,
		Summary:        &text,
		ModIDStrs:      ids,
		Author:         m.Author,
		URLAlias:       m.URLAlias,
		Side:           m.Side,
		Type:           m.Type,
		Logo:           m.LogoFile,
		Tags:           m.Tags,
		LastReleased:   m.LastReleased,
	}
}

// ToMod expands a summary into a partial full record without a network call.
// Fields a listing does not carry (releases, screenshots, links, creation
// and modification dates) are left empty; use [Client.GetMod] for the real
// record.
func (s ModSummary) ToMod() *Mod {
	var text string
	if s.Summary != nil {
		text = *s.Summary
	}
	return &Mod{
		ModID:          s.ModID,
		AssetID:        s.AssetID,
		Name:           s.Name,
		Text:           text,
		Author:         s.Author,
		URLAlias:       s.URLAlias,
		LogoFilename:   s.Logo,
		LogoFile:       s.Logo,
		LogoFileDB:     s.Logo,
		Downloads:      s.Downloads,
		Follows:        s.Follows,
		TrendingPoints: s.TrendingPoints,
		Comments:       s.Comments,
		Side:           s.Side,
		Type:           s.Type,
		LastReleased:   s.LastReleased,
		Tags:           s.Tags,
		Releases:       []Release{},
		Screenshots:    []Screenshot{},
	}
}

// FileName returns the release's download file name, falling back to
// "<modidstr>.zip" and then to the main file URL.
func (r Release) FileName() string {
	switch {
	case r.Filename != nil:
		return *r.Filename
	case r.ModIDStr != nil:
		return *r.ModIDStr + ".zip"
	}
	return r.MainFile
}

// Latest returns the most recently created release, or false if the mod has none.
// Releases are compared by their upstream timestamps; unparsable ones sort last.
func (m *Mod) Latest() (Release, bool) {
	var (
		best   Release
		bestAt time.Time
		found  bool
	)
	for _, r := range m.Releases {
		at, err := ParseTime(r.Created)
		if err != nil {
			at = time.Time{}
		}
		if !found || at.After(bestAt) {
			best, bestAt, found = r, at, true
		}
	}
	return best, found
}
