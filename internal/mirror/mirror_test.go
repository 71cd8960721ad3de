package mirror

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/Taxolotl/vintage-story-mod-api/pkg/cache"
	"github.com/Taxolotl/vintage-story-mod-api/pkg/errors"
	"github.com/Taxolotl/vintage-story-mod-api/pkg/integrations/vintagestory"
	"github.com/Taxolotl/vintage-story-mod-api/pkg/observability"
)

const modBody = `{"statuscode":"200","mod":{"modid":42,"assetid":1042,"name":"Carry Capacity","text":"t","author":"Tyron",
"urlalias":null,"logofilename":null,"logofile":null,"logofiledb":null,"homepageurl":null,"sourcecodeurl":null,
"trailervideourl":null,"issuetrackerurl":null,"wikiurl":null,"downloads":5,"follows":1,"trendingpoints":0,"comments":0,
"side":"both","type":"mod","created":"2022-01-05 10:00:00","lastreleased":"2024-03-01 12:30:00","lastmodified":"2024-03-02 08:00:00",
"tags":["QoL"],"releases":[{"releaseid":1,"mainfile":"https://x/a.zip","filename":"a.zip","fileid":3,"downloads":5,"tags":["1.19.4"],
"modidstr":"carry","modversion":"1.0.0","created":"2024-03-01 12:30:00","changelog":null}],"screenshots":[]}}`

var upstreamRoutes = map[string]string{
	"/api/mod/42":        modBody,
	"/api/mods":          `{"statuscode":"200","mods":[{"modid":42,"assetid":1042,"downloads":5,"follows":1,"trendingpoints":0,"comments":0,"name":"Carry Capacity","summary":null,"modidstrs":["carry"],"author":"Tyron","urlalias":null,"side":"both","type":"mod","logo":null,"tags":["QoL"],"lastreleased":"2024-03-01 12:30:00"}]}`,
	"/api/tags":          `{"statuscode":"200","tags":[{"tagid":1,"name":"QoL","color":"#fff"}]}`,
	"/api/authors":       `{"statuscode":"200","authors":[{"userid":7,"name":"Tyron"}]}`,
	"/api/gameversions":  `{"statuscode":"200","gameversions":[{"tagid":-1,"name":"1.19.4","color":"#ccc"}]}`,
	"/api/comments/1042": `{"statuscode":"200","comments":[]}`,
	"/api/comments/2001": `{"statuscode":"200","comments":[{"commentid":5,"assetid":2001,"userid":7,"text":"<p>nice</p>","created":"2024-03-02 10:00:00","lastmodified":"2024-03-02 10:00:00"}]}`,
}

// setup starts a fake upstream, a mirror in front of it, and returns a
// client pointed at the mirror plus the upstream request counter.
func setup(t *testing.T) (*vintagestory.Client, *httptest.Server, *atomic.Int32) {
	t.Helper()
	quiet := log.New(io.Discard)

	var hits atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		body, ok := upstreamRoutes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"statuscode":"404"}`)
			return
		}
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(upstream.Close)

	gw := vintagestory.NewClient(vintagestory.WithBaseURL(upstream.URL+"/api"), vintagestory.WithLogger(quiet))
	cached := vintagestory.NewCachedClient(gw, &cache.Options{Logger: quiet})
	srv := httptest.NewServer(New(cached, &observability.Counters{}, quiet).Handler())
	t.Cleanup(srv.Close)

	client := vintagestory.NewClient(vintagestory.WithBaseURL(srv.URL+"/api"), vintagestory.WithLogger(quiet))
	return client, srv, &hits
}

func TestMirrorServesUpstreamShape(t *testing.T) {
	ctx := context.Background()
	client, _, hits := setup(t)

	mod, err := client.GetMod(ctx, 42)
	if err != nil {
		t.Fatalf("GetMod through mirror: %v", err)
	}
	if mod.Name != "Carry Capacity" || len(mod.Releases) != 1 || mod.Releases[0].FileName() != "a.zip" {
		t.Errorf("mod = %+v", mod)
	}

	for _, fn := range []func() error{
		func() error { _, err := client.ListMods(ctx); return err },
		func() error { _, err := client.ListTags(ctx); return err },
		func() error { _, err := client.ListAuthors(ctx); return err },
		func() error { _, err := client.ListGameVersions(ctx); return err },
		func() error { _, err := client.ListComments(ctx, 1042); return err },
	} {
		if err := fn(); err != nil {
			t.Errorf("mirror request failed: %v", err)
		}
	}
	if hits.Load() != 6 {
		t.Errorf("upstream requests = %d, want 6", hits.Load())
	}
}

func TestMirrorReusesCache(t *testing.T) {
	ctx := context.Background()
	client, _, hits := setup(t)

	var first *vintagestory.Mod
	for i := 0; i < 5; i++ {
		mod, err := client.GetMod(ctx, 42)
		if err != nil {
			t.Fatal(err)
		}
		if first == nil {
			first = mod
		} else if diff := cmp.Diff(first, mod); diff != "" {
			t.Errorf("cached response differs (-first +now):\n%s", diff)
		}
		if _, err := client.ListMods(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if hits.Load() != 2 {
		t.Errorf("upstream requests = %d, want 2 (one per resource)", hits.Load())
	}
}

func TestMirrorErrors(t *testing.T) {
	ctx := context.Background()
	client, srv, _ := setup(t)

	if _, err := client.GetMod(ctx, 99); !stderrors.Is(err, errors.ErrNotFound) {
		t.Errorf("GetMod(99) error = %v, want NOT_FOUND", err)
	}

	resp, err := http.Get(srv.URL + "/api/mod/abc")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["statuscode"] != "400" || body["code"] != string(errors.ErrCodeInvalidInput) {
		t.Errorf("error body = %v", body)
	}
}

func TestMirrorRandom(t *testing.T) {
	_, srv, _ := setup(t)

	tests := []struct {
		path   string
		key    string
		status int
	}{
		{"/api/random/mod", "mod", http.StatusOK},
		{"/api/random/tag", "tag", http.StatusOK},
		{"/api/random/author", "author", http.StatusOK},
		{"/api/random/version", "gameversion", http.StatusOK},
		{"/api/random/comment/2001", "comment", http.StatusOK},
		{"/api/random/comment/1042", "", http.StatusNotFound},
		{"/api/random/comment/abc", "", http.StatusBadRequest},
		{"/api/random/comment", "", http.StatusBadRequest},
		{"/api/random/planet", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if tt.key == "" {
				return
			}
			var body map[string]json.RawMessage
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if _, ok := body[tt.key]; !ok {
				t.Errorf("body missing %q: %v", tt.key, body)
			}
		})
	}
}

func TestMirrorStatsAndClear(t *testing.T) {
	ctx := context.Background()
	client, srv, hits := setup(t)

	if _, err := client.GetMod(ctx, 42); err != nil {
		t.Fatal(err)
	}

	resp, err := http.Get(srv.URL + "/debug/stats")
	if err != nil {
		t.Fatal(err)
	}
	var st Stats
	err = json.NewDecoder(resp.Body).Decode(&st)
	resp.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	if st.Cache.Mods != 1 {
		t.Errorf("stats cache = %+v", st.Cache)
	}

	resp, err = http.Post(srv.URL+"/debug/cache/clear", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("clear status = %d", resp.StatusCode)
	}

	if _, err := client.GetMod(ctx, 42); err != nil {
		t.Fatal(err)
	}
	if hits.Load() != 2 {
		t.Errorf("upstream requests = %d, want 2 after clear", hits.Load())
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeInvalidInput, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeEmptyCollection, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeNetwork, "x"), http.StatusBadGateway},
		{errors.New(errors.ErrCodeParse, "x"), http.StatusBadGateway},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
