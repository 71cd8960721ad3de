// Package httputil provides HTTP helpers shared by the upstream API clients.
//
// # Retry
//
// [Policy] wraps an operation with optional retries for transient failures.
// Only errors marked with [RetryableError] are retried; everything else is
// returned on the first attempt:
//
//	err := httputil.Backoff.Do(ctx, func() error {
//	    return client.Get(ctx, url, &v)
//	})
//
// The API clients default to [NoRetry]: a failed request surfaces its error
// to the caller straight away. Callers that want retries opt in explicitly.
package httputil
