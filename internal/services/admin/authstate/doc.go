// Package authstate holds the admin authentication state for one request.
//
// A Provider is built per request from the session and persistent scopes,
// hydrated from whatever an earlier login stored there, and attached to the
// request context. Handlers reach it through FromContext or MustFromContext.
package authstate
