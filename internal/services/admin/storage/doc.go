// Package storage defines the owner-keyed string stores behind the admin's
// session and persistent scopes.
//
// A Store holds values for many owners. Handlers never see a Store directly:
// they receive a Scope bound to the owner ID carried by the request's cookie.
package storage
