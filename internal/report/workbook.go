package report

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"zendesk-analytics/internal/analytics"
	"zendesk-analytics/internal/zendesk"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	notAvailable    = "N/A"
	// Excel allows 31 characters; keep one spare.
	maxSheetName = 30
	detailSheets = 5
)

// Meta describes the context a workbook was generated in.
type Meta struct {
	GeneratedAt time.Time
	Days        int
	Calendar    analytics.Calendar
}

func (m Meta) generated() string {
	loc := m.Calendar.Location
	if loc == nil {
		loc = time.UTC
	}
	return m.GeneratedAt.In(loc).Format(timestampLayout)
}

func (m Meta) period() string {
	if m.Days <= 0 {
		return "All available history"
	}
	return fmt.Sprintf("Last %d days", m.Days)
}

// sheet appends rows top to bottom.
type sheet struct {
	f    *excelize.File
	name string
	row  int
	bold int
	err  error
}

func (s *sheet) add(values ...any) {
	if s.err != nil {
		return
	}
	s.row++
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		s.err = err
		return
	}
	row := values
	s.err = s.f.SetSheetRow(s.name, cell, &row)
}

// heading appends a bold row.
func (s *sheet) heading(values ...any) {
	s.add(values...)
	if s.err != nil || len(values) == 0 {
		return
	}
	first, _ := excelize.CoordinatesToCellName(1, s.row)
	last, _ := excelize.CoordinatesToCellName(len(values), s.row)
	s.err = s.f.SetCellStyle(s.name, first, last, s.bold)
}

func (s *sheet) blank() {
	s.row++
}

type workbook struct {
	f      *excelize.File
	bold   int
	used   map[string]bool
	sheets int
}

func newWorkbook() (*workbook, error) {
	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &workbook{f: f, bold: bold, used: make(map[string]bool)}, nil
}

// addSheet creates a sheet with a unique, Excel-safe name. The default sheet is
// renamed for the first call so the workbook has no empty leading tab.
func (w *workbook) addSheet(name string, widths ...float64) (*sheet, error) {
	name = uniqueSheetName(name, w.used)
	if w.sheets == 0 {
		if err := w.f.SetSheetName(w.f.GetSheetName(0), name); err != nil {
			return nil, err
		}
	} else if _, err := w.f.NewSheet(name); err != nil {
		return nil, err
	}
	w.sheets++

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := w.f.SetColWidth(name, col, col, width); err != nil {
			return nil, err
		}
	}
	return &sheet{f: w.f, name: name, bold: w.bold}, nil
}

func (w *workbook) save(path string, sheets ...*sheet) error {
	for _, s := range sheets {
		if s.err != nil {
			return fmt.Errorf("write sheet %q: %w", s.name, s.err)
		}
	}
	w.f.SetActiveSheet(0)
	return w.f.SaveAs(path)
}

var sheetNameReplacer = strings.NewReplacer(":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")")

// uniqueSheetName truncates to maxSheetName runes, strips characters Excel
// rejects, and de-duplicates case-insensitively.
func uniqueSheetName(name string, used map[string]bool) string {
	name = strings.Trim(sheetNameReplacer.Replace(name), "' ")
	if name == "" {
		name = "Sheet"
	}
	name = truncateRunes(name, maxSheetName)

	candidate := name
	for i := 2; used[strings.ToLower(candidate)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		candidate = truncateRunes(name, maxSheetName-utf8.RuneCountInString(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

func averageOrNA(s analytics.Summary) any {
	if s.Count == 0 {
		return notAvailable
	}
	return round2(s.Average)
}

// WriteTicketWorkbook writes the full ticket analysis to path.
func WriteTicketWorkbook(path string, a analytics.Analysis, tickets []zendesk.Ticket, meta Meta) error {
	wb, err := newWorkbook()
	if err != nil {
		return err
	}
	defer wb.f.Close()

	// Summary
	sum, err := wb.addSheet("Summary", 48, 24, 14)
	if err != nil {
		return err
	}
	sum.heading("Zendesk Ticket Analysis Summary")
	sum.add("Generated", meta.generated())
	sum.add("Analysis Period", meta.period())
	sum.blank()
	sum.add("Total Tickets", a.TotalTickets)
	sum.add("Average First Response Time (minutes)", round2(a.FirstResponse.Average))
	sum.add("Median First Response Time (minutes)", round2(a.FirstResponse.Median))
	sum.add("Average Resolution Time (minutes)", round2(a.Resolution.Average))
	sum.add("Average Resolution Time (hours)", round2(a.Resolution.Average/60))
	sum.blank()

	breakdowns := []struct {
		title, label string
		counts       map[string]int
	}{
		{"Tickets By Status", "Status", a.TicketsByStatus},
		{"Tickets By Country", "Country", a.TicketsByCountry},
		{"Tickets By Brand", "Brand", a.TicketsByBrand},
	}
	for _, b := range breakdowns {
		sum.heading(b.title)
		sum.heading(b.label, "Count", "Percentage")
		for _, c := range analytics.RankCounts(b.counts) {
			sum.add(c.Name, c.Count, percent(c.Count, a.TotalTickets)+"%")
		}
		sum.blank()
	}

	leaderboards := []struct {
		title, label string
		summaries    map[string]analytics.Summary
	}{
		{"Average First Response Time By Country (minutes)", "Country", a.FirstResponseByCountry},
		{"Average First Response Time By Brand (minutes)", "Brand", a.FirstResponseByBrand},
	}
	for _, l := range leaderboards {
		sum.heading(l.title)
		sum.heading(l.label, "Average Time (minutes)", "Ticket Count")
		for _, g := range analytics.RankFastest(l.summaries, 1) {
			sum.add(g.Name, round2(g.Average), g.Count)
		}
		sum.blank()
	}

	// Daily Ticket Creation
	daily, err := wb.addSheet("Daily Ticket Creation", 14, 14)
	if err != nil {
		return err
	}
	daily.heading("Date", "Ticket Count")
	for _, day := range analytics.SortedKeys(a.TicketsByDate) {
		daily.add(day, a.TicketsByDate[day])
	}

	// Ticket Details
	details, err := wb.addSheet("Ticket Details", 12, 48, 12, 20, 20, 22, 16, 16)
	if err != nil {
		return err
	}
	details.heading("ID", "Subject", "Status", "Created", "First Response (min)", "Resolution Time (min)", "Country", "Brand")
	loc := meta.Calendar.Location
	if loc == nil {
		loc = time.UTC
	}
	for _, t := range tickets {
		md := analytics.ExtractMetadata(t.Tags)
		var response, resolution any = notAvailable, notAvailable
		if v, ok := analytics.FirstResponseMinutes(t); ok {
			response = v
		}
		if m, ok := analytics.ResolutionMinutes(t); ok {
			resolution = m
		}
		details.add(t.ID, t.Subject, t.Status, t.CreatedAt.In(loc).Format(timestampLayout), response, resolution, md.Country, md.Brand)
	}

	// Country Analysis / Brand Analysis
	dims := []struct {
		name, label string
		counts      map[string]int
		response    map[string]analytics.Summary
		resolution  map[string]analytics.Summary
	}{
		{"Country Analysis", "Country", a.TicketsByCountry, a.FirstResponseByCountry, a.ResolutionByCountry},
		{"Brand Analysis", "Brand", a.TicketsByBrand, a.FirstResponseByBrand, a.ResolutionByBrand},
	}
	dimSheets := make([]*sheet, 0, len(dims))
	for _, d := range dims {
		s, err := wb.addSheet(d.name, 18, 14, 28, 28)
		if err != nil {
			return err
		}
		s.heading(d.label, "Total Tickets", "Average First Response (min)", "Average Resolution Time (min)")
		for _, c := range analytics.RankCounts(d.counts) {
			s.add(c.Name, c.Count, averageOrNA(d.response[c.Name]), averageOrNA(d.resolution[c.Name]))
		}
		dimSheets = append(dimSheets, s)
	}

	return wb.save(path, append([]*sheet{sum, daily, details}, dimSheets...)...)
}

// WriteDimensionWorkbook writes a brand or country analysis: one summary sheet
// plus a detail sheet for each of the five largest groups.
func WriteDimensionWorkbook(path string, dim analytics.Dimension, groups []analytics.GroupStats, meta Meta) error {
	label := titleCase(string(dim))

	wb, err := newWorkbook()
	if err != nil {
		return err
	}
	defer wb.f.Close()

	summary, err := wb.addSheet(label+" Summary", 22, 14, 16, 28, 28)
	if err != nil {
		return err
	}
	summary.heading(label + " Analysis Report")
	summary.add("Generated", meta.generated())
	summary.add("Analysis Period", meta.period())
	summary.blank()
	summary.heading(label, "Total Tickets", "Tickets Per Day", "Average Response Time (min)", "Average Resolution Time (min)")
	for _, g := range groups {
		summary.add(g.Name, g.Count, round2(g.TicketsPerDay), round2(g.FirstResponse.Average), round2(g.Resolution.Average))
	}

	written := []*sheet{summary}
	for i, g := range groups {
		if i == detailSheets {
			break
		}
		s, err := wb.addSheet(g.Name, 30, 12, 12)
		if err != nil {
			return err
		}
		s.heading(g.Name + " - Detailed Analysis")
		s.add("Total Tickets", g.Count)
		s.add("Average Response Time (min)", round2(g.FirstResponse.Average))
		s.add("Average Resolution Time (min)", round2(g.Resolution.Average))
		s.add("Tickets Per Day", round2(g.TicketsPerDay))
		s.blank()

		s.heading("Status Breakdown")
		s.heading("Status", "Count", "Percentage")
		for _, c := range analytics.RankCounts(g.Statuses) {
			s.add(c.Name, c.Count, percent(c.Count, g.Count)+"%")
		}
		s.blank()

		if dim == analytics.DimensionCountry {
			s.heading("Brand Distribution")
			s.heading("Brand", "Count", "Percentage")
			for _, c := range analytics.RankCounts(g.Brands) {
				s.add(c.Name, c.Count, percent(c.Count, g.Count)+"%")
			}
		} else {
			s.heading("Daily Ticket Creation")
			s.heading("Date", "Count")
			for _, day := range analytics.SortedKeys(g.CreationDates) {
				s.add(day, g.CreationDates[day])
			}
		}
		written = append(written, s)
	}

	return wb.save(path, written...)
}
