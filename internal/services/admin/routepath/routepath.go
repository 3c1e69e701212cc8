package routepath

import (
	"net/url"
	"strings"
)

const (
	Root = "/"
)

const (
	StaticPrefix = "/static/"
	Metrics      = "/metrics"
)

const (
	Login  = "/login"
	Logout = "/logout"
)

const (
	Downloads        = "/downloads"
	DownloadsRefresh = "/downloads/refresh"
	DownloadsDetail  = "/downloads/detail"
	DownloadsDelete  = "/downloads/delete"
	DownloadsExport  = "/downloads/export"
)

const (
	EmailVerified = "/email-verified"
	VerifyEmail   = "/verify-email"
)

// EmailParam carries the record email on detail and delete routes.
const EmailParam = "email"

// DownloadsWithQuery returns the downloads view URL with the filter query.
func DownloadsWithQuery(query url.Values) string {
	return withQuery(Downloads, query)
}

// DownloadsExportWithQuery returns the export URL for the filtered view.
func DownloadsExportWithQuery(query url.Values) string {
	return withQuery(DownloadsExport, query)
}

// DownloadDetail returns the detail URL for email, keeping the filter query.
func DownloadDetail(email string, query url.Values) string {
	return withQuery(DownloadsDetail, withEmail(email, query))
}

// DownloadDelete returns the delete URL for email, keeping the filter query.
func DownloadDelete(email string, query url.Values) string {
	return withQuery(DownloadsDelete, withEmail(email, query))
}

func withEmail(email string, query url.Values) url.Values {
	values := url.Values{}
	for key, vals := range query {
		values[key] = append([]string(nil), vals...)
	}
	values.Set(EmailParam, strings.TrimSpace(email))
	return values
}

func withQuery(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	encoded := query.Encode()
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}

// DownloadsRefreshWithQuery returns the refresh URL for the filtered view.
func DownloadsRefreshWithQuery(query url.Values) string {
	return withQuery(DownloadsRefresh, query)
}
