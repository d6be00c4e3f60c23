package histfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/redlinelab/redline/internal/contract"
	"github.com/redlinelab/redline/schema"
)

// ParseDailyCSV reads daily check-in records from CSV. The date column
// is required; every other column is optional and binds by name, with
// a few aliases for columns as older exports spelled them.
func ParseDailyCSV(r io.Reader) ([]schema.DailyRecord, error) {
	rows, cols, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if _, ok := cols["date"]; !ok {
		return nil, errors.New("missing required column \"date\"")
	}

	days := make([]schema.DailyRecord, 0, len(rows))
	for n, row := range rows {
		day, err := parseDailyRow(&rowReader{cols: cols, row: row})
		if err != nil {
			// Header occupies line 1.
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		days = append(days, day)
	}
	return days, nil
}

// ParseSessionsCSV reads training session records from CSV. The date
// and exercise columns are required; load also answers to "weight" as
// raw training logs name it.
func ParseSessionsCSV(r io.Reader) ([]schema.SessionRecord, error) {
	rows, cols, err := readTable(r)
	if err != nil {
		return nil, err
	}
	for _, required := range []string{"date", "exercise"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	sessions := make([]schema.SessionRecord, 0, len(rows))
	for n, row := range rows {
		session, err := parseSessionRow(&rowReader{cols: cols, row: row})
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func parseDailyRow(r *rowReader) (schema.DailyRecord, error) {
	day := schema.DailyRecord{
		Date: r.date("date"),

		SleepHours:   r.floatPtr("sleep_hours"),
		SleepQuality: r.intPtr("sleep_quality"),
		Energy:       r.intPtr("energy"),
		Fatigue:      r.intPtr("fatigue"),
		Soreness:     r.intPtr("soreness"),
		Stress:       r.intPtr("stress"),
		Motivation:   r.intPtr("motivation"),
		Perceived:    r.intPtr("perceived", "perceived_readiness"),

		PainFlag:       r.boolFlag("pain_flag"),
		PainSeverity:   r.intPtr("pain_severity"),
		PainZone:       r.text("pain_zone", "pain_location"),
		Stiffness:      r.intPtr("stiffness"),
		SickLevel:      r.intPtr("sick_level"),
		CaffeineLevel:  r.intPtr("caffeine_level"),
		AlcoholFlag:    r.boolFlag("alcohol_flag"),
		SleepDisrupted: r.boolFlag("sleep_disrupted"),
		NapMinutes:     r.intPtr("nap_minutes"),

		// Processed exports carry these precomputed; session-derived
		// values only fill the gaps.
		PerformanceIndex: r.floatPtr("performance_index"),
		ACWR:             r.floatPtr("acwr", "acwr_7_28"),
		RIRWeighted:      r.floatPtr("rir_weighted"),
		Readiness:        r.floatPtr("readiness"),
	}
	return day, r.err
}

func parseSessionRow(r *rowReader) (schema.SessionRecord, error) {
	session := schema.SessionRecord{
		Date:     r.date("date"),
		Exercise: r.text("exercise"),
		Load:     r.float("load", "weight"),
		Reps:     r.intVal("reps"),
		RIR:      r.floatPtr("rir"),
		RPE:      r.floatPtr("rpe"),
		E1RM:     r.float("e1rm"),
	}
	if r.err == nil && session.Exercise == "" {
		r.err = errors.New("column exercise: empty value")
	}
	return session, r.err
}

// readTable reads the header and all data rows. Column lookup is case-
// insensitive and tolerates a UTF-8 BOM; rows may be ragged since cell
// access guards its index.
func readTable(r io.Reader) ([][]string, map[string]int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, errors.New("empty file")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF")))
		if name == "" {
			continue
		}
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read rows: %w", err)
	}
	return rows, cols, nil
}

// rowReader reads typed cells from one CSV row by column name. The
// first conversion error sticks and later reads become no-ops, so a
// whole row decodes without an error check per cell.
type rowReader struct {
	cols map[string]int
	row  []string
	err  error
}

// cell returns the first non-blank value among the named columns.
func (r *rowReader) cell(names ...string) string {
	for _, name := range names {
		if i, ok := r.cols[name]; ok && i < len(r.row) {
			if v := strings.TrimSpace(r.row[i]); v != "" {
				return v
			}
		}
	}
	return ""
}

func (r *rowReader) text(names ...string) string {
	if r.err != nil {
		return ""
	}
	return r.cell(names...)
}

func (r *rowReader) date(names ...string) time.Time {
	if r.err != nil {
		return time.Time{}
	}
	v := r.cell(names...)
	if v == "" {
		r.err = fmt.Errorf("column %s: empty date", names[0])
		return time.Time{}
	}
	for _, layout := range []string{contract.DateFormat, time.RFC3339} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	r.err = fmt.Errorf("column %s: unparsable date %q", names[0], v)
	return time.Time{}
}

func (r *rowReader) floatPtr(names ...string) *float64 {
	v := r.cell(names...)
	if r.err != nil || v == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.err = fmt.Errorf("column %s: %w", names[0], err)
		return nil
	}
	return &parsed
}

func (r *rowReader) float(names ...string) float64 {
	if p := r.floatPtr(names...); p != nil {
		return *p
	}
	return 0
}

// intPtr also accepts float-formatted cells: nullable integer columns
// come through spreadsheet exports as "4.0".
func (r *rowReader) intPtr(names ...string) *int {
	v := r.cell(names...)
	if r.err != nil || v == "" {
		return nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil {
			r.err = fmt.Errorf("column %s: %w", names[0], err)
			return nil
		}
		parsed = int(math.Round(f))
	}
	return &parsed
}

func (r *rowReader) intVal(names ...string) int {
	if p := r.intPtr(names...); p != nil {
		return *p
	}
	return 0
}

func (r *rowReader) boolFlag(names ...string) bool {
	v := r.cell(names...)
	if r.err != nil || v == "" {
		return false
	}
	parsed, err := contract.ParseBoolString(v)
	if err != nil {
		r.err = fmt.Errorf("column %s: %w", names[0], err)
		return false
	}
	return parsed
}
