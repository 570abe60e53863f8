// Package session implements the client-side authentication lifecycle for a
// multi-tenant SaaS API: credential acquisition, silent token refresh,
// restore-on-startup, logout, and an authenticated HTTP channel that retries
// once after a 401 by refreshing the access token.
//
// Session lifecycle:
//   - Manager owns every write to the TokenStore, StateStore, and
//     PermissionCache. The token pair and session snapshot are persisted and
//     cleared together; there is never a token without its context.
//   - Refresh is single-flight: concurrent triggers (two API calls racing on
//     a 401) collapse into one network call whose outcome every waiter
//     shares.
//
// Request interception:
//   - Transport attaches the current bearer token to outgoing requests and,
//     on a 401, refreshes and resends a clone exactly once. When the refresh
//     itself fails it notifies session-expired listeners and hands back the
//     original 401 untouched.
//
// Permissions:
//   - PermissionCache holds the "module:action" capability map from the last
//     successful login or refresh. It exists to hide UI affordances; the
//     backend remains the only authority on authorization.
//
// Activity sinks:
//   - ActivitySink is a best-effort audit emitter describing login, refresh,
//     restore, and logout outcomes. Sink errors are logged, never propagated,
//     so telemetry cannot block authentication.
package session
