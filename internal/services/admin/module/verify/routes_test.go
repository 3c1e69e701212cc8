package verify

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeService struct {
	lastCall string
}

func (f *fakeService) HandleEmailVerified(http.ResponseWriter, *http.Request) {
	f.lastCall = "verified"
}

func (f *fakeService) HandleVerifyEmail(http.ResponseWriter, *http.Request) {
	f.lastCall = "verify"
}

func TestRegisterRoutes(t *testing.T) {
	t.Parallel()

	service := &fakeService{}
	mux := http.NewServeMux()
	RegisterRoutes(mux, service)

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/email-verified", nil))
	if service.lastCall != "verified" {
		t.Fatalf("lastCall = %q, want verified", service.lastCall)
	}
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/verify-email?email=a", nil))
	if service.lastCall != "verify" {
		t.Fatalf("lastCall = %q, want verify", service.lastCall)
	}
}
