package sessioncookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dronesimulator/admin/internal/services/admin/platform/requestmeta"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	codec, err := NewCodec(testSecret, requestmeta.SchemePolicy{})
	if err != nil {
		t.Fatalf("NewCodec() error = %v", err)
	}
	return codec
}

func TestNewCodecRejectsShortSecret(t *testing.T) {
	if _, err := NewCodec("short", requestmeta.SchemePolicy{}); err == nil {
		t.Fatal("expected error for short secret")
	}
}

func TestSessionMintsCookieOnce(t *testing.T) {
	codec := newTestCodec(t)

	rec := httptest.NewRecorder()
	owner, err := codec.Session(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionName {
		t.Fatalf("cookies = %+v, want one %s", cookies, SessionName)
	}
	if cookies[0].MaxAge != 0 {
		t.Fatalf("session cookie MaxAge = %d, want browser-session cookie", cookies[0].MaxAge)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	again, err := codec.Session(rec, req)
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	if again != owner {
		t.Fatalf("owner = %q, want %q", again, owner)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("expected no new cookie for a valid session")
	}
}

func TestRotateReplacesValidSession(t *testing.T) {
	codec := newTestCodec(t)

	rec := httptest.NewRecorder()
	owner, err := codec.Session(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.AddCookie(rec.Result().Cookies()[0])

	rec = httptest.NewRecorder()
	rotated, err := codec.Rotate(rec, req)
	if err != nil {
		t.Fatalf("Rotate() error = %v", err)
	}
	if rotated == owner {
		t.Fatal("expected a new owner id")
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionName {
		t.Fatalf("cookies = %+v, want one %s", cookies, SessionName)
	}
	if got, err := codec.Verify(cookies[0].Value, SessionName); err != nil || got != rotated {
		t.Fatalf("Verify() = %q, %v; want %q", got, err, rotated)
	}
}

func TestDeviceCookieIsLongLived(t *testing.T) {
	codec := newTestCodec(t)
	rec := httptest.NewRecorder()
	if _, err := codec.Device(rec, httptest.NewRequest(http.MethodGet, "/", nil)); err != nil {
		t.Fatalf("Device() error = %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != DeviceName {
		t.Fatalf("cookies = %+v", cookies)
	}
	if cookies[0].MaxAge != int(DeviceLifetime.Seconds()) {
		t.Fatalf("device MaxAge = %d", cookies[0].MaxAge)
	}
}

func TestTamperedCookieIsReplaced(t *testing.T) {
	codec := newTestCodec(t)
	other, err := NewCodec("another-secret-0123456789", requestmeta.SchemePolicy{})
	if err != nil {
		t.Fatalf("NewCodec() error = %v", err)
	}
	forged, err := other.Issue("6f9619ff-8b86-d011-b42d-00cf4fc964ff", SessionName, 0)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionName, Value: forged})
	rec := httptest.NewRecorder()
	owner, err := codec.Session(rec, req)
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	if owner == "6f9619ff-8b86-d011-b42d-00cf4fc964ff" {
		t.Fatal("forged owner must not be accepted")
	}
	if len(rec.Result().Cookies()) != 1 {
		t.Fatal("expected replacement cookie")
	}
}

func TestVerifyRejectsWrongAudience(t *testing.T) {
	codec := newTestCodec(t)
	token, err := codec.Issue("6f9619ff-8b86-d011-b42d-00cf4fc964ff", DeviceName, time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := codec.Verify(token, SessionName); err == nil {
		t.Fatal("device token must not verify as session token")
	}
	if owner, err := codec.Verify(token, DeviceName); err != nil || owner != "6f9619ff-8b86-d011-b42d-00cf4fc964ff" {
		t.Fatalf("Verify() = %q, %v", owner, err)
	}
}

func TestVerifyRejectsExpiredDevice(t *testing.T) {
	codec := newTestCodec(t)
	issued := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	codec.now = func() time.Time { return issued }
	token, err := codec.Issue("6f9619ff-8b86-d011-b42d-00cf4fc964ff", DeviceName, time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	codec.now = func() time.Time { return issued.Add(2 * time.Hour) }
	if _, err := codec.Verify(token, DeviceName); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestVerifyRejectsNonUUIDSubject(t *testing.T) {
	codec := newTestCodec(t)
	token, err := codec.Issue("not-a-uuid", SessionName, 0)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := codec.Verify(token, SessionName); err == nil {
		t.Fatal("expected subject validation error")
	}
}

func TestClearExpiresCookie(t *testing.T) {
	codec := newTestCodec(t)
	rec := httptest.NewRecorder()
	codec.Clear(rec, httptest.NewRequest(http.MethodPost, "/logout", nil), SessionName)
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("cookies = %+v, want expired", cookies)
	}
}
