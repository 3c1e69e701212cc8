package downloads

import (
	"encoding/json"
	"testing"
)

func TestDecodeRecordsLenient(t *testing.T) {
	raw := json.RawMessage(`[
		{"email":"a@example.com","name":"Ada","phone":9876543210,"city":"Pune","state_province":"MH","country":"India","purpose_of_use":"Training","created_at":"2026-03-01T10:00:00Z","download_count":3,"download_history":["2026-03-01T10:00:00Z","2026-03-02T10:00:00Z"]},
		{"email":"b@example.com","name":null,"download_count":"2","download_history":null},
		{"email":"c@example.com","download_count":"lots"}
	]`)

	records, err := DecodeRecords(raw)
	if err != nil {
		t.Fatalf("DecodeRecords() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}
	first := records[0]
	if first.Phone != "9876543210" || first.DownloadCount != 3 || len(first.DownloadHistory) != 2 {
		t.Fatalf("first = %+v", first)
	}
	if records[1].Name != "" || records[1].DownloadCount != 2 || records[1].DownloadHistory != nil {
		t.Fatalf("second = %+v", records[1])
	}
	if records[2].DownloadCount != 0 {
		t.Fatalf("third count = %d, want 0", records[2].DownloadCount)
	}
}

func TestDecodeRecordsRejectsNonArray(t *testing.T) {
	for _, raw := range []string{``, `null`, `{"email":"a"}`, `"x"`} {
		if _, err := DecodeRecords(json.RawMessage(raw)); err == nil {
			t.Fatalf("DecodeRecords(%q) expected error", raw)
		}
	}
}

func TestLocation(t *testing.T) {
	r := Record{City: "Pune", Country: "India"}
	if got := r.Location(); got != "Pune, India" {
		t.Fatalf("Location() = %q", got)
	}
	if got := (Record{}).Location(); got != "" {
		t.Fatalf("empty Location() = %q", got)
	}
}
