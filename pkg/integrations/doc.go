// Package integrations provides the shared HTTP layer for upstream API clients.
//
// # Overview
//
// [Client] performs GET requests and decodes JSON bodies, translating every
// failure into a structured error from [errors]:
//
//   - transport failures, 5xx and other unexpected statuses: NETWORK_ERROR
//   - HTTP 404: NOT_FOUND
//   - bodies that are not valid JSON for the target type: PARSE_ERROR
//
// Each request carries a fresh X-Request-ID (a UUID) that also appears in the
// debug log, and emits [observability.HTTPHooks] events.
//
// # Retries
//
// Requests are attempted exactly once by default. Transient failures are
// marked with [httputil.RetryableError], so callers that opt in with
// [Client.SetRetry] get retries only where they make sense.
//
// # Upstream APIs
//
//   - [vintagestory]: the VintageStory mod database
//
// [errors]: github.com/Taxolotl/vintage-story-mod-api/pkg/errors
// [observability.HTTPHooks]: github.com/Taxolotl/vintage-story-mod-api/pkg/observability.HTTPHooks
// [httputil.RetryableError]: github.com/Taxolotl/vintage-story-mod-api/pkg/httputil.RetryableError
// [vintagestory]: github.com/Taxolotl/vintage-story-mod-api/pkg/integrations/vintagestory
package integrations
