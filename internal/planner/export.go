package planner

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
)

// Export is a rendered trip export ready to be sent as an attachment.
type Export struct {
	ContentType string
	Filename    string
	Body        []byte
}

// exportRow is the flat view of a trip shared by every text format.
type exportRow struct {
	XMLName       xml.Name `xml:"trip"`
	Name          string   `xml:"name"`
	LocationInput string   `xml:"location"`
	City          string   `xml:"city"`
	Country       string   `xml:"country"`
	StartDate     string   `xml:"startDate"`
	EndDate       string   `xml:"endDate"`
	Summary       string   `xml:"summary"`
}

var exportHeader = []string{"Trip Name", "Location Input", "City", "Country", "Start Date", "End Date", "Summary"}

// Export renders trips as csv (the default), json, xml, markdown or pdf.
// A non-empty tripID restricts the export to that trip.
func (s *Service) Export(ctx context.Context, format, tripID string) (Export, error) {
	trips, err := s.exportTrips(ctx, strings.TrimSpace(tripID))
	if err != nil {
		return Export{}, err
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "csv":
		body, err := toCSV(trips)
		if err != nil {
			return Export{}, err
		}
		return Export{ContentType: "text/csv; charset=utf-8", Filename: "trips.csv", Body: body}, nil
	case "json":
		body, err := json.Marshal(trips)
		if err != nil {
			return Export{}, err
		}
		return Export{ContentType: "application/json", Filename: "trips.json", Body: body}, nil
	case "xml":
		body, err := toXML(trips)
		if err != nil {
			return Export{}, err
		}
		return Export{ContentType: "application/xml", Filename: "trips.xml", Body: body}, nil
	case "markdown", "md":
		return Export{ContentType: "text/markdown; charset=utf-8", Filename: "trips.md", Body: toMarkdown(trips)}, nil
	case "pdf":
		body, err := toPDF(trips)
		if err != nil {
			return Export{}, err
		}
		return Export{ContentType: "application/pdf", Filename: "trips.pdf", Body: body}, nil
	default:
		return Export{}, invalid(fmt.Sprintf("Unsupported export format: %s", format))
	}
}

// exportTrips returns trips newest first.
func (s *Service) exportTrips(ctx context.Context, tripID string) ([]Trip, error) {
	if tripID != "" {
		id, err := uuid.Parse(tripID)
		if err != nil {
			return nil, invalid("Invalid trip id")
		}
		trip, err := s.store.GetTrip(ctx, id)
		if err != nil {
			return nil, err
		}
		return []Trip{trip}, nil
	}

	trips, err := s.store.ListTrips(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(trips, func(i, j int) bool {
		return trips[i].CreatedAt.After(trips[j].CreatedAt)
	})
	return trips, nil
}

func rowsOf(trips []Trip) []exportRow {
	rows := make([]exportRow, 0, len(trips))
	for _, t := range trips {
		row := exportRow{
			Name:          t.Name,
			LocationInput: t.LocationInput,
			City:          deref(t.City),
			Country:       deref(t.Country),
			StartDate:     isoTime(t.StartDate),
			EndDate:       isoTime(t.EndDate),
		}
		if t.Weather != nil {
			row.Summary = deref(t.Weather.SummaryText)
		}
		rows = append(rows, row)
	}
	return rows
}

func toCSV(trips []Trip) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, r := range rowsOf(trips) {
		if err := w.Write([]string{r.Name, r.LocationInput, r.City, r.Country, r.StartDate, r.EndDate, r.Summary}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func toXML(trips []Trip) ([]byte, error) {
	doc := struct {
		XMLName xml.Name    `xml:"trips"`
		Trips   []exportRow `xml:"trip"`
	}{Trips: rowsOf(trips)}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

func toMarkdown(trips []Trip) []byte {
	var b strings.Builder
	b.WriteString("| Trip Name | Location | City | Country | Start Date | End Date | Summary |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(exportHeader)))
	for _, r := range rowsOf(trips) {
		b.WriteString("\n|")
		for _, cell := range []string{r.Name, r.LocationInput, r.City, r.Country, r.StartDate, r.EndDate, r.Summary} {
			b.WriteString(" " + markdownCell(cell) + " |")
		}
	}
	return []byte(b.String())
}

func toPDF(trips []Trip) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetCompression(false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Weather Trip Planner Export", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for i, r := range rowsOf(trips) {
		pdf.SetFont("Helvetica", "U", 12)
		pdf.CellFormat(0, 7, tr(fmt.Sprintf("%d. %s", i+1, r.Name)), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, line := range []string{
			"Location: " + r.LocationInput,
			fmt.Sprintf("City/Country: %s, %s", r.City, r.Country),
			fmt.Sprintf("Dates: %s to %s", r.StartDate, r.EndDate),
			"Summary: " + markdownCell(r.Summary),
		} {
			pdf.MultiCell(0, 5, tr(line), "", "L", false)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func markdownCell(s string) string {
	if s == "" {
		return "-"
	}
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func isoTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
