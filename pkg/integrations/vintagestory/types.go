package vintagestory

// ModSummary is the abbreviated mod record returned by the /mods listing.
//
// Nullable upstream fields are pointers; every other field is required and a
// response missing one fails to decode with a PARSE_ERROR.
type ModSummary struct {
	ModID          int      `json:"modid"`
	AssetID        int      `json:"assetid"`
	Downloads      int      `json:"downloads"`
	Follows        int      `json:"follows"`
	TrendingPoints int      `json:"trendingpoints"`
	Comments       int      `json:"comments"`
	Name           string   `json:"name"`
	Summary        *string  `json:"summary"`
	ModIDStrs      []string `json:"modidstrs"` // Mod identifiers declared by the releases (e.g. "carrycapacity")
	Author         string   `json:"author"`
	URLAlias       *string  `json:"urlalias"`
	Side           string   `json:"side"` // "both", "client" or "server"
	Type           string   `json:"type"` // "mod", "externaltool" or "other"
	Logo           *string  `json:"logo"`
	Tags           []string `json:"tags"`
	LastReleased   string   `json:"lastreleased"` // Upstream timestamp, see [ParseTime]
}

// Mod is the full record returned by /mod/{id}.
//
// A *Mod returned by the client or a cache is shared; callers must treat it
// as read-only.
type Mod struct {
	ModID           int          `json:"modid"`
	AssetID         int          `json:"assetid"`
	Name            string       `json:"name"`
	Text            string       `json:"text"` // HTML description
	Author          string       `json:"author"`
	URLAlias        *string      `json:"urlalias"`
	LogoFilename    *string      `json:"logofilename"`
	LogoFile        *string      `json:"logofile"`
	LogoFileDB      *string      `json:"logofiledb"`
	HomepageURL     *string      `json:"homepageurl"`
	SourceCodeURL   *string      `json:"sourcecodeurl"`
	TrailerVideoURL *string      `json:"trailervideourl"`
	IssueTrackerURL *string      `json:"issuetrackerurl"`
	WikiURL         *string      `json:"wikiurl"`
	Downloads       int          `json:"downloads"`
	Follows         int          `json:"follows"`
	TrendingPoints  int          `json:"trendingpoints"`
	Comments        int          `json:"comments"`
	Side            string       `json:"side"`
	Type            string       `json:"type"`
	Created         string       `json:"created"`
	LastReleased    string       `json:"lastreleased"`
	LastModified    string       `json:"lastmodified"`
	Tags            []string     `json:"tags"`
	Releases        []Release    `json:"releases"`
	Screenshots     []Screenshot `json:"screenshots"`
}

// Release is one downloadable version of a mod.
type Release struct {
	ReleaseID  int      `json:"releaseid"`
	MainFile   string   `json:"mainfile"` // Download URL
	Filename   *string  `json:"filename"` // Absent when upstream sends null or a number
	FileID     *int     `json:"fileid"`
	Downloads  int      `json:"downloads"`
	Tags       []string `json:"tags"` // Game versions this release targets
	ModIDStr   *string  `json:"modidstr"`
	ModVersion string   `json:"modversion"`
	Created    string   `json:"created"`
	Changelog  *string  `json:"changelog"`
}

// Screenshot is an image attached to a mod page.
type Screenshot struct {
	FileID            int    `json:"fileid"`
	MainFile          string `json:"mainfile"`
	Filename          string `json:"filename"`
	ThumbnailFilename string `json:"thumbnailfilename"`
	Created           string `json:"created"`
}

// Tag is a mod category label.
type Tag struct {
	TagID int    `json:"tagid"`
	Name  string `json:"name"`
	Color string `json:"color"` // CSS colour, e.g. "#C9C9C9"
}

// Author is a mod author account.
type Author struct {
	UserID int     `json:"userid"`
	Name   *string `json:"name"`
}

// DisplayName returns the author's name, or "<unnamed>" when upstream has none.
func (a Author) DisplayName() string {
	if a.Name == nil || *a.Name == "" {
		return "<unnamed>"
	}
	return *a.Name
}

// GameVersion is a VintageStory release that mods can target.
// Upstream encodes versions as negative tag IDs, hence the signed type.
type GameVersion struct {
	TagID int64  `json:"tagid"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Comment is a user comment on a mod's asset page.
type Comment struct {
	CommentID    int    `json:"commentid"`
	AssetID      int    `json:"assetid"`
	UserID       int    `json:"userid"`
	Text         string `json:"text"` // HTML
	Created      string `json:"created"`
	LastModified string `json:"lastmodified"`
}
