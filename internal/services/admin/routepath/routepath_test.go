package routepath

import (
	"net/url"
	"testing"
)

func TestTopLevelRoutes(t *testing.T) {
	t.Parallel()

	if Root != "/" {
		t.Fatalf("Root = %q", Root)
	}
	if StaticPrefix != "/static/" {
		t.Fatalf("StaticPrefix = %q", StaticPrefix)
	}
	if Downloads != "/downloads" {
		t.Fatalf("Downloads = %q", Downloads)
	}
	if EmailVerified != "/email-verified" {
		t.Fatalf("EmailVerified = %q", EmailVerified)
	}
	if VerifyEmail != "/verify-email" {
		t.Fatalf("VerifyEmail = %q", VerifyEmail)
	}
}

func TestDownloadRoutesKeepFilterQuery(t *testing.T) {
	t.Parallel()

	query := url.Values{"quick": {"7days"}}
	if got := DownloadsWithQuery(query); got != "/downloads?quick=7days" {
		t.Fatalf("DownloadsWithQuery() = %q", got)
	}
	if got := DownloadsWithQuery(nil); got != "/downloads" {
		t.Fatalf("DownloadsWithQuery(nil) = %q", got)
	}
	if got := DownloadDetail(" a+b@example.com ", query); got != "/downloads/detail?email=a%2Bb%40example.com&quick=7days" {
		t.Fatalf("DownloadDetail() = %q", got)
	}
	if got := DownloadDelete("a@example.com", nil); got != "/downloads/delete?email=a%40example.com" {
		t.Fatalf("DownloadDelete() = %q", got)
	}
	if query.Get(EmailParam) != "" {
		t.Fatal("DownloadDetail must not mutate the query")
	}
	if got := DownloadsExportWithQuery(url.Values{"from": {"2026-01-01"}}); got != "/downloads/export?from=2026-01-01" {
		t.Fatalf("DownloadsExportWithQuery() = %q", got)
	}
}
