// Package admin serves the drone-simulator admin dashboard: admin login, the
// downloads view and the public email verification pages.
//
// The process keeps the per-browser state the dashboard needs in two storage
// scopes addressed by signed cookies, calls the backend endpoints
// server-side and renders HTML for full loads and HTMX swaps alike.
package admin
