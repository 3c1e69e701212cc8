package downloads

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"
)

func TestWriteCSV(t *testing.T) {
	records := []Record{
		{
			Email:           "ada@example.com",
			Name:            "Lovelace, Ada",
			Phone:           "123",
			City:            "Pune",
			StateProvince:   "MH",
			Country:         "India",
			PurposeOfUse:    `Said "hi"`,
			CreatedAt:       "2025-06-01T10:00:00Z",
			DownloadCount:   2,
			DownloadHistory: []string{"2025-06-01T10:00:00Z", "2025-06-02T11:30:00Z"},
		},
		{Email: "bob@example.com"},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, records, layoutEnglish, time.UTC); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3: %q", len(lines), buf.String())
	}
	if lines[0] != "Name,Email,Phone,City,State,Country,Purpose,Created At,Download Count,Download History" {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], `"Lovelace, Ada",ada@example.com,`) {
		t.Fatalf("quoted name row = %q", lines[1])
	}
	if !strings.Contains(lines[1], `"Said ""hi"""`) {
		t.Fatalf("quoted purpose row = %q", lines[1])
	}
	if lines[2] != "Anonymous,bob@example.com,N/A,N/A,N/A,N/A,N/A,Invalid Date,0," {
		t.Fatalf("sparse row = %q", lines[2])
	}

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if got := rows[1][9]; got != "6/1/2025, 10:00:00 AM | 6/2/2025, 11:30:00 AM" {
		t.Fatalf("history cell = %q", got)
	}
	if got := rows[1][7]; got != "6/1/2025, 10:00:00 AM" {
		t.Fatalf("created cell = %q", got)
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil, layoutPortuguese, time.UTC); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Fatalf("expected header only, got %q", buf.String())
	}
}
