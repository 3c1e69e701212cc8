package downloads

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// Record is one download record as returned by the downloads endpoint.
type Record struct {
	Email           string   `json:"email"`
	Name            string   `json:"name"`
	Phone           string   `json:"phone"`
	City            string   `json:"city"`
	StateProvince   string   `json:"state_province"`
	Country         string   `json:"country"`
	PurposeOfUse    string   `json:"purpose_of_use"`
	CreatedAt       string   `json:"created_at"`
	DownloadCount   int      `json:"download_count"`
	DownloadHistory []string `json:"download_history"`
}

// UnmarshalJSON decodes a record leniently: scalar fields of any JSON type
// become their text, null becomes empty, and a count that is not a number
// reads as zero.
func (r *Record) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return errors.New("download record must be an object")
	}
	*r = Record{
		Email:           text(fields["email"]),
		Name:            text(fields["name"]),
		Phone:           text(fields["phone"]),
		City:            text(fields["city"]),
		StateProvince:   text(fields["state_province"]),
		Country:         text(fields["country"]),
		PurposeOfUse:    text(fields["purpose_of_use"]),
		CreatedAt:       text(fields["created_at"]),
		DownloadCount:   count(fields["download_count"]),
		DownloadHistory: history(fields["download_history"]),
	}
	return nil
}

// Location joins the non-empty city, state and country.
func (r Record) Location() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{r.City, r.StateProvince, r.Country} {
		if strings.TrimSpace(part) != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

// DecodeRecords decodes a JSON array of records. Anything other than an
// array is an error.
func DecodeRecords(raw json.RawMessage) ([]Record, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("downloads payload is not an array")
	}
	var records []Record
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func text(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return ""
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	return string(trimmed)
}

func count(raw json.RawMessage) int {
	value, err := strconv.ParseFloat(strings.TrimSpace(text(raw)), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return int(value)
}

func history(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(raw), &items); err != nil || items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, text(item))
	}
	return out
}
