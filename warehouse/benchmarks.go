package warehouse

import (
	"context"
	"fmt"

	"pitch-reports/report"
)

// BenchmarkStore serves cohort averages from the cohort_pitches table. It
// implements report.BenchmarkSource.
type BenchmarkStore struct {
	conn *Conn
}

// NewBenchmarkStore creates a new BenchmarkStore.
func NewBenchmarkStore(conn *Conn) *BenchmarkStore {
	return &BenchmarkStore{conn: conn}
}

var _ report.BenchmarkSource = (*BenchmarkStore)(nil)

// levelFilter builds the WHERE fragment selecting one cohort. SEC is a
// league cut across levels; the division levels cut on the level column.
func levelFilter(level report.Level) (string, string) {
	if level == report.LevelSEC {
		return "league = ?", string(report.LevelSEC)
	}
	return "level = ?", string(level)
}

// Averages returns cohort per-pitch means for a pitch type, level, and
// throwing hand. A cohort with no matching pitches yields nil, nil.
func (s *BenchmarkStore) Averages(ctx context.Context, pitchType string, level report.Level, handedness string) (*report.BenchmarkAverages, error) {
	clause, arg := levelFilter(level)
	query := `
		SELECT
			avg(rel_speed), avg(spin_rate), avg(induced_vert_break),
			avg(horz_break), avg(rel_height), avg(rel_side), avg(extension),
			count(*)
		FROM cohort_pitches
		WHERE tagged_pitch_type = ? AND pitcher_throws = ? AND ` + clause

	var avgs report.BenchmarkAverages
	var count uint64
	err := s.conn.QueryRow(ctx, query, pitchType, handedness, arg).Scan(
		&avgs.Velocity, &avgs.SpinRate, &avgs.IVB,
		&avgs.HB, &avgs.RelHeight, &avgs.RelSide, &avgs.Extension,
		&count,
	)
	if err != nil {
		return nil, fmt.Errorf("query cohort averages: %w", err)
	}
	if count == 0 {
		return nil, nil
	}

	avgs.PitchCount = int(count)
	return &avgs, nil
}

// MaxVelocity returns the cohort mean of per-pitcher maximum velocities. A
// cohort with no measured velocities yields nil, nil.
func (s *BenchmarkStore) MaxVelocity(ctx context.Context, pitchType string, level report.Level, handedness string) (*report.MaxVelocityBenchmark, error) {
	clause, arg := levelFilter(level)
	query := `
		SELECT avg(peak), count(*)
		FROM (
			SELECT pitcher, max(rel_speed) AS peak
			FROM cohort_pitches
			WHERE tagged_pitch_type = ? AND pitcher_throws = ?
				AND rel_speed IS NOT NULL AND ` + clause + `
			GROUP BY pitcher
		)
	`

	var mean *float64
	var count uint64
	err := s.conn.QueryRow(ctx, query, pitchType, handedness, arg).Scan(&mean, &count)
	if err != nil {
		return nil, fmt.Errorf("query cohort max velocity: %w", err)
	}
	if count == 0 || mean == nil {
		return nil, nil
	}

	return &report.MaxVelocityBenchmark{
		Mean:         *mean,
		PitcherCount: int(count),
	}, nil
}
