package downloads

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ExportFilename is the attachment name of the CSV export.
const ExportFilename = "downloads.csv"

// HistorySeparator joins download history timestamps in one CSV cell.
const HistorySeparator = " | "

// ExportHeader is the fixed CSV header row.
var ExportHeader = []string{
	"Name",
	"Email",
	"Phone",
	"City",
	"State",
	"Country",
	"Purpose",
	"Created At",
	"Download Count",
	"Download History",
}

// ExportRow renders one record as CSV cells. Timestamps use layout in loc.
func ExportRow(r Record, layout string, loc *time.Location) []string {
	history := make([]string, 0, len(r.DownloadHistory))
	for _, ts := range r.DownloadHistory {
		history = append(history, FormatTimestamp(ts, layout, loc))
	}
	return []string{
		orDefault(r.Name, "Anonymous"),
		orDefault(r.Email, "N/A"),
		orDefault(r.Phone, "N/A"),
		orDefault(r.City, "N/A"),
		orDefault(r.StateProvince, "N/A"),
		orDefault(r.Country, "N/A"),
		orDefault(r.PurposeOfUse, "N/A"),
		FormatTimestamp(r.CreatedAt, layout, loc),
		strconv.Itoa(r.DownloadCount),
		strings.Join(history, HistorySeparator),
	}
}

// WriteCSV writes the header and one row per record. Cells are quoted as
// needed so commas, quotes and newlines survive.
func WriteCSV(w io.Writer, records []Record, layout string, loc *time.Location) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, record := range records {
		if err := cw.Write(ExportRow(record, layout, loc)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
