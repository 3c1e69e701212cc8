package i18n

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func TestResolveTagOrder(t *testing.T) {
	ptBR := language.MustParse("pt-BR")
	tests := []struct {
		name    string
		target  string
		cookie  string
		accept  string
		want    language.Tag
		persist bool
	}{
		{name: "default", target: "/", want: Default()},
		{name: "query wins", target: "/?lang=pt-BR", cookie: "en-US", want: ptBR, persist: true},
		{name: "query base language", target: "/?lang=pt", want: ptBR, persist: true},
		{name: "unsupported query falls through", target: "/?lang=fr", cookie: "pt-BR", want: ptBR},
		{name: "cookie", target: "/", cookie: "pt-BR", accept: "en-US", want: ptBR},
		{name: "accept language", target: "/", accept: "pt-PT,pt;q=0.9", want: ptBR},
		{name: "unmatched accept", target: "/", accept: "ja", want: Default()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangCookieName, Value: tc.cookie})
			}
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			got, persist := ResolveTag(req)
			if got.String() != tc.want.String() || persist != tc.persist {
				t.Fatalf("ResolveTag() = (%v, %v), want (%v, %v)", got, persist, tc.want, tc.persist)
			}
		})
	}
}

func TestSetLanguageCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	SetLanguageCookie(rec, language.MustParse("pt-BR"))
	header := rec.Header().Get("Set-Cookie")
	if !strings.Contains(header, LangCookieName+"=pt-BR") {
		t.Fatalf("Set-Cookie = %q", header)
	}
}

func TestLanguageURL(t *testing.T) {
	got := LanguageURL("/downloads", "quick=7days&lang=en-US", "pt-BR")
	if got != "/downloads?lang=pt-BR&quick=7days" {
		t.Fatalf("LanguageURL() = %q", got)
	}
}

func TestPrinterUsesCatalog(t *testing.T) {
	if got := Printer(language.MustParse("pt-BR")).Sprintf("downloads.total", 3); got == "downloads.total" {
		t.Fatalf("expected translated total, got %q", got)
	}
	if got := Printer(Default()).Sprintf("downloads.total", 3); got != "Total: 3" {
		t.Fatalf("Sprintf() = %q", got)
	}
}
