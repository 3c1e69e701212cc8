package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dronesimulator/admin/internal/services/admin/platform/requestmeta"
)

func TestWriteThenReadAndClear(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, httptest.NewRequest(http.MethodPost, "/downloads/delete", nil), Success("delete.done", "a@example.com"), requestmeta.SchemePolicy{})

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}

	req := httptest.NewRequest(http.MethodGet, "/downloads", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	notice, ok := ReadAndClear(rec, req, requestmeta.SchemePolicy{})
	if !ok {
		t.Fatal("expected notice")
	}
	if notice.Kind != KindSuccess || notice.Key != "delete.done" || notice.Arg != "a@example.com" {
		t.Fatalf("notice = %+v", notice)
	}
	cleared := rec.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge >= 0 {
		t.Fatalf("expected clearing cookie, got %+v", cleared)
	}
}

func TestWriteSkipsInvalidNotice(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, httptest.NewRequest(http.MethodGet, "/", nil), Notice{Kind: "shout", Key: "x"}, requestmeta.SchemePolicy{})
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("expected no cookie for unknown kind")
	}
	Write(rec, httptest.NewRequest(http.MethodGet, "/", nil), Error(" "), requestmeta.SchemePolicy{})
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("expected no cookie for blank key")
	}
}

func TestReadAndClearRejectsGarbage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "!!!"})
	if _, ok := ReadAndClear(httptest.NewRecorder(), req, requestmeta.SchemePolicy{}); ok {
		t.Fatal("expected garbage cookie to be ignored")
	}
	if _, ok := ReadAndClear(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), requestmeta.SchemePolicy{}); ok {
		t.Fatal("expected no notice without cookie")
	}
}
