package vintagestory

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/Taxolotl/vintage-story-mod-api/pkg/errors"
)

type route struct {
	status int
	body   string
}

// testClient starts a server answering the given paths (relative to /api)
// and returns a client pointed at it plus a request counter.
func testClient(t *testing.T, routes map[string]route) (*Client, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		rt, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if rt.status == 0 {
			rt.status = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(rt.status)
		_, _ = io.WriteString(w, rt.body)
	}))
	t.Cleanup(srv.Close)
	c := NewClient(WithBaseURL(srv.URL+"/api"), WithLogger(log.New(io.Discard)))
	return c, &hits
}

func fixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return string(data)
}

func ptr[T any](v T) *T { return &v }

func TestGetModRoundTrip(t *testing.T) {
	c, hits := testClient(t, map[string]route{
		"/api/mod/42": {body: fixture(t, "mod42.json")},
	})

	got, err := c.GetMod(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetMod: %v", err)
	}

	want := &Mod{
		ModID:           42,
		AssetID:         1042,
		Name:            "Carry Capacity",
		Text:            "<p>Carry more things.</p>",
		Author:          "Tyron",
		URLAlias:        ptr("carrycapacity"),
		LogoFile:        ptr("https://mods.vintagestory.at/files/asset/1042/logo.png"),
		SourceCodeURL:   ptr("https://github.com/example/carrycapacity"),
		IssueTrackerURL: ptr("https://github.com/example/carrycapacity/issues"),
		Downloads:       12345,
		Follows:         321,
		TrendingPoints:  17,
		Comments:        4,
		Side:            "both",
		Type:            "mod",
		Created:         "2022-01-05 10:00:00",
		LastReleased:    "2024-03-01 12:30:00",
		LastModified:    "2024-03-02 08:00:00",
		Tags:            []string{"Utility", "QoL"},
		Releases: []Release{
			{
				ReleaseID:  901,
				MainFile:   "https://mods.vintagestory.at/files/asset/1042/carrycapacity_1.2.0.zip",
				Filename:   ptr("carrycapacity_1.2.0.zip"),
				FileID:     ptr(5001),
				Downloads:  8000,
				Tags:       []string{"1.19.4", "1.19.5"},
				ModIDStr:   ptr("carrycapacity"),
				ModVersion: "1.2.0",
				Created:    "2024-03-01 12:30:00",
				Changelog:  ptr("<p>Fixes</p>"),
			},
			{
				ReleaseID:  850,
				MainFile:   "https://mods.vintagestory.at/files/asset/1042/old.zip",
				Downloads:  4345,
				Tags:       []string{"1.18.0"},
				ModVersion: "1.1.0",
				Created:    "2023-06-10 09:15:00",
			},
		},
		Screenshots: []Screenshot{{
			FileID:            7001,
			MainFile:          "https://mods.vintagestory.at/files/asset/1042/shot1.png",
			Filename:          "shot1.png",
			ThumbnailFilename: "shot1_thumb.png",
			Created:           "2022-01-05 10:05:00",
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetMod(42) mismatch (-want +got):\n%s", diff)
	}
	if hits.Load() != 1 {
		t.Errorf("requests = %d, want 1", hits.Load())
	}
}

func TestClientSendsHeaders(t *testing.T) {
	var ua, accept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua, accept = r.Header.Get("User-Agent"), r.Header.Get("Accept")
		_, _ = io.WriteString(w, `{"statuscode":"200","tags":[]}`)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithUserAgent("vsmod-test/1.0"))
	if _, err := c.ListTags(context.Background()); err != nil {
		t.Fatal(err)
	}
	if ua != "vsmod-test/1.0" {
		t.Errorf("User-Agent = %q", ua)
	}
	if accept != "application/json" {
		t.Errorf("Accept = %q", accept)
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient()
	if c.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", c.BaseURL(), DefaultBaseURL)
	}
}

func TestGetModErrors(t *testing.T) {
	tests := []struct {
		name  string
		route route
		want  error
	}{
		{"http 500", route{status: 500, body: "oops"}, errors.ErrNetwork},
		{"http 503", route{status: 503}, errors.ErrNetwork},
		{"http 404", route{status: 404, body: "{}"}, errors.ErrNotFound},
		{"malformed json", route{body: `{"statuscode":"200","mod":`}, errors.ErrParse},
		{"not json", route{body: "<html>"}, errors.ErrParse},
		{"envelope 404", route{body: `{"statuscode":"404"}`}, errors.ErrNotFound},
		{"envelope 500", route{body: `{"statuscode":"500"}`}, errors.ErrNetwork},
		{"numeric statuscode", route{body: `{"statuscode":404}`}, errors.ErrNotFound},
		{"missing statuscode", route{body: `{"mod":{}}`}, errors.ErrParse},
		{"missing payload", route{body: `{"statuscode":"200"}`}, errors.ErrParse},
		{"null payload", route{body: `{"statuscode":"200","mod":null}`}, errors.ErrParse},
		{"wrong payload type", route{body: `{"statuscode":"200","mod":[]}`}, errors.ErrParse},
		{"missing required field", route{body: `{"statuscode":"200","mod":{"modid":42}}`}, errors.ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testClient(t, map[string]route{"/api/mod/42": tt.route})
			mod, err := c.GetMod(context.Background(), 42)
			if err == nil {
				t.Fatalf("GetMod = %+v, want error", mod)
			}
			if !stderrors.Is(err, tt.want) {
				t.Errorf("GetMod error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGetModMissingFieldNamesField(t *testing.T) {
	body := `{"statuscode":"200","mod":{"modid":42,"assetid":1,"name":"x","text":"","author":"a",
		"downloads":0,"follows":0,"trendingpoints":0,"comments":0,"side":"both","type":"mod",
		"created":"","lastreleased":"","lastmodified":"","tags":[],"releases":null,"screenshots":[]}}`
	c, _ := testClient(t, map[string]route{"/api/mod/42": {body: body}})

	_, err := c.GetMod(context.Background(), 42)
	var mf *MissingFieldError
	if !stderrors.As(err, &mf) {
		t.Fatalf("error = %v, want MissingFieldError", err)
	}
	if mf.Field != "releases" || mf.Record != "mod" {
		t.Errorf("MissingFieldError = %+v", mf)
	}
	if !stderrors.Is(err, errors.ErrParse) {
		t.Error("missing field should be a PARSE_ERROR")
	}
}

func TestGetModInvalidID(t *testing.T) {
	c, hits := testClient(t, nil)
	for _, id := range []int{0, -3} {
		if _, err := c.GetMod(context.Background(), id); !stderrors.Is(err, errors.ErrInvalidInput) {
			t.Errorf("GetMod(%d) error = %v, want INVALID_INPUT", id, err)
		}
	}
	if hits.Load() != 0 {
		t.Error("invalid IDs must not reach the network")
	}
}

func TestListMods(t *testing.T) {
	c, _ := testClient(t, map[string]route{"/api/mods": {body: fixture(t, "mods.json")}})

	mods, err := c.ListMods(context.Background())
	if err != nil {
		t.Fatalf("ListMods: %v", err)
	}
	if len(mods) != 2 {
		t.Fatalf("len = %d, want 2", len(mods))
	}
	if mods[0].ModID != 42 || *mods[0].Summary != "Carry more things." {
		t.Errorf("mods[0] = %+v", mods[0])
	}
	if mods[1].Summary != nil || mods[1].URLAlias != nil {
		t.Errorf("null fields should decode to nil: %+v", mods[1])
	}
	if mods[1].Tags == nil || len(mods[1].Tags) != 0 {
		t.Errorf("empty tags should decode to an empty slice, got %#v", mods[1].Tags)
	}
}

func TestListModsRejectsIncompleteSummary(t *testing.T) {
	body := `{"statuscode":"200","mods":[{"modid":1,"name":"x"}]}`
	c, _ := testClient(t, map[string]route{"/api/mods": {body: body}})
	if _, err := c.ListMods(context.Background()); !stderrors.Is(err, errors.ErrParse) {
		t.Errorf("error = %v, want PARSE_ERROR", err)
	}
}

func TestListTags(t *testing.T) {
	body := `{"statuscode":"200","tags":[{"tagid":1,"name":"Utility","color":"#C9C9C9"},{"tagid":2,"name":"QoL","color":"#FFFFFF"}]}`
	c, _ := testClient(t, map[string]route{"/api/tags": {body: body}})

	tags, err := c.ListTags(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []Tag{{1, "Utility", "#C9C9C9"}, {2, "QoL", "#FFFFFF"}}
	if diff := cmp.Diff(want, tags); diff != "" {
		t.Errorf("ListTags mismatch (-want +got):\n%s", diff)
	}
}

func TestListGameVersions(t *testing.T) {
	body := `{"statuscode":"200","gameversions":[{"tagid":-281474976710656,"name":"1.19.4","color":"#CCCCCC"}]}`
	c, _ := testClient(t, map[string]route{"/api/gameversions": {body: body}})

	versions, err := c.ListGameVersions(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(versions) != 1 || versions[0].TagID != -281474976710656 || versions[0].Name != "1.19.4" {
		t.Errorf("ListGameVersions = %+v", versions)
	}
}

const authorsBody = `{"statuscode":"200","authors":[{"userid":1,"name":"Tyron"},{"userid":2,"name":null},{"userid":3,"name":"Saraty"}]}`

func TestListAuthors(t *testing.T) {
	c, _ := testClient(t, map[string]route{"/api/authors": {body: authorsBody}})

	authors, err := c.ListAuthors(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(authors) != 3 {
		t.Fatalf("len = %d", len(authors))
	}
	if authors[1].Name != nil || authors[1].DisplayName() != "<unnamed>" {
		t.Errorf("unnamed author = %+v", authors[1])
	}
	if authors[0].DisplayName() != "Tyron" {
		t.Errorf("DisplayName = %q", authors[0].DisplayName())
	}
}

func TestGetAuthor(t *testing.T) {
	c, _ := testClient(t, map[string]route{"/api/authors": {body: authorsBody}})
	ctx := context.Background()

	a, err := c.GetAuthor(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if a.UserID != 3 || a.DisplayName() != "Saraty" {
		t.Errorf("GetAuthor(3) = %+v", a)
	}

	if _, err := c.GetAuthor(ctx, 99); !stderrors.Is(err, errors.ErrNotFound) {
		t.Errorf("GetAuthor(99) error = %v, want NOT_FOUND", err)
	}
}

func TestListComments(t *testing.T) {
	body := `{"statuscode":"200","comments":[{"commentid":5,"assetid":1042,"userid":1,"text":"<p>nice</p>","created":"2024-01-01 00:00:00","lastmodified":"2024-01-01 00:00:00"}]}`
	c, _ := testClient(t, map[string]route{
		"/api/comments/1042": {body: body},
		"/api/comments/1007": {body: `{"statuscode":"200","comments":[]}`},
	})
	ctx := context.Background()

	comments, err := c.ListComments(ctx, 1042)
	if err != nil {
		t.Fatal(err)
	}
	if len(comments) != 1 || comments[0].CommentID != 5 || comments[0].AssetID != 1042 {
		t.Errorf("ListComments = %+v", comments)
	}

	empty, err := c.ListComments(ctx, 1007)
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no comments, got %d", len(empty))
	}
}

func TestDetailedFromSimple(t *testing.T) {
	c, _ := testClient(t, map[string]route{"/api/mod/42": {body: fixture(t, "mod42.json")}})
	mod, err := c.DetailedFromSimple(context.Background(), ModSummary{ModID: 42})
	if err != nil {
		t.Fatal(err)
	}
	if mod.Name != "Carry Capacity" {
		t.Errorf("Name = %q", mod.Name)
	}
}
