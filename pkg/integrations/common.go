package integrations

import (
	"net/http"
	"time"

	"github.com/Taxolotl/vintage-story-mod-api/pkg/buildinfo"
)

const httpTimeout = 10 * time.Second

// NewHTTPClient creates an HTTP client with a standard timeout for API requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// UserAgent returns the User-Agent sent with every request,
// e.g. "vintage-story-mod-api/v1.2.0".
func UserAgent() string {
	return "vintage-story-mod-api/" + buildinfo.Version
}
