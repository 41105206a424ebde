package warehouse

import (
	"context"
	"fmt"
	"time"

	"pitch-reports/report"
)

const pitchColumns = `
	pitcher, pitcher_throws, pitch_no, tagged_pitch_type,
	rel_speed, spin_rate, induced_vert_break, horz_break,
	rel_side, rel_height, extension, plate_loc_side, plate_loc_height
`

// PitchStore reads tracked pitches for report subjects.
type PitchStore struct {
	conn *Conn
}

// NewPitchStore creates a new PitchStore.
func NewPitchStore(conn *Conn) *PitchStore {
	return &PitchStore{conn: conn}
}

// DatasetTotals summarizes the whole tracked dataset.
type DatasetTotals struct {
	TotalPitches   int    `json:"total_pitches"`
	UniqueDates    int    `json:"unique_dates"`
	UniquePitchers int    `json:"unique_pitchers"`
	FirstDate      string `json:"first_date,omitempty"`
	LastDate       string `json:"last_date,omitempty"`
}

// Totals reports dataset-wide counts and the tracked date range.
func (s *PitchStore) Totals(ctx context.Context) (DatasetTotals, error) {
	query := `
		SELECT count(), uniqExact(event_date), uniqExact(pitcher),
		       min(event_date), max(event_date)
		FROM pitches
	`

	return scanTotals(s.conn.QueryRow(ctx, query))
}

// scanTotals scans the aggregate row. An empty table leaves the date range
// blank rather than reporting the epoch sentinels min and max produce.
func scanTotals(row chRow) (DatasetTotals, error) {
	var (
		pitches, dates, pitchers uint64
		first, last              time.Time
	)
	if err := row.Scan(&pitches, &dates, &pitchers, &first, &last); err != nil {
		return DatasetTotals{}, fmt.Errorf("scan dataset totals: %w", err)
	}

	totals := DatasetTotals{
		TotalPitches:   int(pitches),
		UniqueDates:    int(dates),
		UniquePitchers: int(pitchers),
	}
	if pitches > 0 {
		totals.FirstDate = first.Format("2006-01-02")
		totals.LastDate = last.Format("2006-01-02")
	}

	return totals, nil
}

// Dates lists every date with tracked pitches, most recent first, formatted
// as YYYY-MM-DD.
func (s *PitchStore) Dates(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT event_date
		FROM pitches
		ORDER BY event_date DESC
	`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan date row: %w", err)
		}
		dates = append(dates, d.Format("2006-01-02"))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate date rows: %w", err)
	}

	return dates, nil
}

// Pitchers lists the pitchers with tracked pitches on a date, sorted by
// name as stored.
func (s *PitchStore) Pitchers(ctx context.Context, date string) ([]string, error) {
	query := `
		SELECT DISTINCT pitcher
		FROM pitches
		WHERE event_date = ?
		ORDER BY pitcher ASC
	`

	rows, err := s.conn.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("query pitchers: %w", err)
	}
	defer rows.Close()

	var pitchers []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan pitcher row: %w", err)
		}
		pitchers = append(pitchers, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pitcher rows: %w", err)
	}

	return pitchers, nil
}

// Batch retrieves one pitcher's full outing on a date, in pitch order.
func (s *PitchStore) Batch(ctx context.Context, date, pitcher string) ([]report.Pitch, error) {
	query := `
		SELECT ` + pitchColumns + `
		FROM pitches
		WHERE event_date = ? AND pitcher = ?
		ORDER BY pitch_no ASC
	`

	rows, err := s.conn.Query(ctx, query, date, pitcher)
	if err != nil {
		return nil, fmt.Errorf("query pitch batch: %w", err)
	}
	defer rows.Close()

	return scanPitches(rows)
}

// scanPitches scans multiple rows.
func scanPitches(rows chRows) ([]report.Pitch, error) {
	var pitches []report.Pitch

	for rows.Next() {
		var p report.Pitch
		var pitchNo uint32

		err := rows.Scan(
			&p.Pitcher, &p.PitcherThrows, &pitchNo, &p.PitchType,
			&p.RelSpeed, &p.SpinRate, &p.InducedVertBreak, &p.HorzBreak,
			&p.RelSide, &p.RelHeight, &p.Extension,
			&p.PlateLocSide, &p.PlateLocHeight,
		)
		if err != nil {
			return nil, fmt.Errorf("scan pitch row: %w", err)
		}

		p.PitchNo = int(pitchNo)
		pitches = append(pitches, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pitch rows: %w", err)
	}

	return pitches, nil
}
