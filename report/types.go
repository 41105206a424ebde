// Package report implements the benchmark-comparison and report-aggregation
// engine: it turns a batch of per-pitch measurements plus cohort benchmark
// lookups into a fully-populated pitcher report structure. The package is
// pure and performs no I/O of its own beyond the injected BenchmarkSource.
package report

import (
	"context"
	"strings"
)

// Handedness values as stored in the warehouse.
const (
	RightHanded = "Right"
	LeftHanded  = "Left"
)

// Level is a competition tier used to select a benchmark cohort.
type Level string

const (
	LevelD1  Level = "D1"
	LevelD2  Level = "D2"
	LevelD3  Level = "D3"
	LevelSEC Level = "SEC"
)

// ComparisonLevels are the tiers every report is compared against,
// regardless of the pitcher's home level.
var ComparisonLevels = []Level{LevelD1, LevelD2, LevelD3}

// ResolveLevel maps free-form level input to a known tier. Unknown values
// default to D1.
func ResolveLevel(s string) Level {
	switch Level(strings.ToUpper(strings.TrimSpace(s))) {
	case LevelD1:
		return LevelD1
	case LevelD2:
		return LevelD2
	case LevelD3:
		return LevelD3
	case LevelSEC:
		return LevelSEC
	default:
		return LevelD1
	}
}

// Metric identifies one compared quantity.
type Metric string

const (
	MetricVelocity    Metric = "avg_velocity"
	MetricMaxVelocity Metric = "max_velocity"
	MetricSpinRate    Metric = "spin_rate"
	MetricIVB         Metric = "induced_vertical_break"
	MetricHB          Metric = "horizontal_break"
	MetricRelHeight   Metric = "release_height"
	MetricRelSide     Metric = "release_side"
	MetricExtension   Metric = "extension"
)

// ComparedMetrics is the display order of the eight compared quantities.
var ComparedMetrics = []Metric{
	MetricVelocity,
	MetricMaxVelocity,
	MetricSpinRate,
	MetricIVB,
	MetricHB,
	MetricRelHeight,
	MetricRelSide,
	MetricExtension,
}

// Pitch is one thrown pitch. Numeric metrics are optional: a nil field means
// the measurement is absent and must be skipped by every aggregate, never
// treated as zero.
type Pitch struct {
	PitchNo          int      `json:"pitch_no"`
	Pitcher          string   `json:"pitcher"`
	PitcherThrows    string   `json:"pitcher_throws,omitempty"`
	PitchType        string   `json:"pitch_type"`
	RelSpeed         *float64 `json:"rel_speed,omitempty"`
	SpinRate         *float64 `json:"spin_rate,omitempty"`
	InducedVertBreak *float64 `json:"induced_vert_break,omitempty"`
	HorzBreak        *float64 `json:"horz_break,omitempty"`
	RelSide          *float64 `json:"rel_side,omitempty"`
	RelHeight        *float64 `json:"rel_height,omitempty"`
	Extension        *float64 `json:"extension,omitempty"`
	PlateLocSide     *float64 `json:"plate_loc_side,omitempty"`
	PlateLocHeight   *float64 `json:"plate_loc_height,omitempty"`
}

// Type returns the pitch type label, defaulting to "Unknown" when untagged.
func (p *Pitch) Type() string {
	if p.PitchType == "" {
		return "Unknown"
	}
	return p.PitchType
}

// PitchTypeGroup holds one pitch type's member pitches and their descriptive
// statistics. Nil aggregate fields mean no pitch in the group carried that
// measurement.
type PitchTypeGroup struct {
	Name         string   `json:"name"`
	Count        int      `json:"count"`
	Pitches      []Pitch  `json:"-"`
	AvgVelocity  *float64 `json:"avg_velocity,omitempty"`
	MaxVelocity  *float64 `json:"max_velocity,omitempty"`
	AvgSpinRate  *float64 `json:"avg_spin_rate,omitempty"`
	AvgIVB       *float64 `json:"avg_ivb,omitempty"`
	AvgHB        *float64 `json:"avg_hb,omitempty"`
	AvgRelSide   *float64 `json:"avg_rel_side,omitempty"`
	AvgRelHeight *float64 `json:"avg_rel_height,omitempty"`
	AvgExtension *float64 `json:"avg_extension,omitempty"`
}

// metricValue returns the group's aggregate for one compared metric.
func (g *PitchTypeGroup) metricValue(m Metric) *float64 {
	switch m {
	case MetricVelocity:
		return g.AvgVelocity
	case MetricMaxVelocity:
		return g.MaxVelocity
	case MetricSpinRate:
		return g.AvgSpinRate
	case MetricIVB:
		return g.AvgIVB
	case MetricHB:
		return g.AvgHB
	case MetricRelHeight:
		return g.AvgRelHeight
	case MetricRelSide:
		return g.AvgRelSide
	case MetricExtension:
		return g.AvgExtension
	default:
		return nil
	}
}

// BenchmarkAverages is one cohort slice's per-metric means. Individual means
// may be nil when no qualifying row carried that measurement.
type BenchmarkAverages struct {
	Velocity   *float64 `json:"velocity,omitempty"`
	SpinRate   *float64 `json:"spin_rate,omitempty"`
	IVB        *float64 `json:"ivb,omitempty"`
	HB         *float64 `json:"hb,omitempty"`
	RelSide    *float64 `json:"rel_side,omitempty"`
	RelHeight  *float64 `json:"rel_height,omitempty"`
	Extension  *float64 `json:"extension,omitempty"`
	PitchCount int      `json:"pitch_count"`
}

// MaxVelocityBenchmark is the cohort mean of each pitcher's top velocity.
type MaxVelocityBenchmark struct {
	Mean         float64 `json:"mean"`
	PitcherCount int     `json:"pitcher_count"`
}

// BenchmarkSource supplies cohort benchmark statistics. A nil result with a
// nil error means no qualifying cohort data exists; that is a normal outcome,
// not a failure. Implementations may block on network I/O; callers bound them
// with the context.
type BenchmarkSource interface {
	Averages(ctx context.Context, pitchType string, level Level, handedness string) (*BenchmarkAverages, error)
	MaxVelocity(ctx context.Context, pitchType string, level Level, handedness string) (*MaxVelocityBenchmark, error)
}

// metricValue returns the benchmark mean for one compared metric.
func benchmarkValue(avgs *BenchmarkAverages, maxVelo *MaxVelocityBenchmark, m Metric) *float64 {
	if m == MetricMaxVelocity {
		if maxVelo == nil {
			return nil
		}
		v := maxVelo.Mean
		return &v
	}
	if avgs == nil {
		return nil
	}
	switch m {
	case MetricVelocity:
		return avgs.Velocity
	case MetricSpinRate:
		return avgs.SpinRate
	case MetricIVB:
		return avgs.IVB
	case MetricHB:
		return avgs.HB
	case MetricRelHeight:
		return avgs.RelHeight
	case MetricRelSide:
		return avgs.RelSide
	case MetricExtension:
		return avgs.Extension
	default:
		return nil
	}
}

// MetricComparison is one pitcher-vs-benchmark cell. Display carries the
// signed difference formatted to the metric's precision (e.g. "+2.3").
type MetricComparison struct {
	PitcherValue   float64 `json:"pitcher_value"`
	BenchmarkValue float64 `json:"benchmark_value"`
	Diff           float64 `json:"diff"`
	AbsDiff        float64 `json:"abs_diff"`
	Improved       bool    `json:"improved"`
	Display        string  `json:"display"`
}

// MetricCell pairs a formatted benchmark value ("N/A" when absent) with the
// comparison, which is nil when either side is absent.
type MetricCell struct {
	Benchmark  string            `json:"benchmark"`
	Comparison *MetricComparison `json:"comparison,omitempty"`
}

// LevelComparison holds one competition level's cells for one pitch type.
type LevelComparison struct {
	Level Level                 `json:"level"`
	Cells map[Metric]MetricCell `json:"cells"`
}

// TypeComparison is one pitch type's pitcher aggregates (formatted, "N/A"
// when absent) plus per-level benchmark comparisons.
type TypeComparison struct {
	PitchType  string            `json:"pitch_type"`
	Count      int               `json:"count"`
	Aggregates map[Metric]string `json:"aggregates"`
	Levels     []LevelComparison `json:"levels"`
}

// Point is a 2D movement-plane coordinate (horizontal break, induced
// vertical break), in inches.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MovementChart is the numeric input for one pitch type's movement plot:
// the raw point cloud and, when defined, its 95% confidence ellipse.
type MovementChart struct {
	PitchType string   `json:"pitch_type"`
	Points    []Point  `json:"points"`
	Ellipse   *Ellipse `json:"ellipse,omitempty"`
}

// Report is the fully-assembled output consumed by the template renderer and
// the email composer. It contains plain data only, no markup.
type Report struct {
	ID           string           `json:"id"`
	Pitcher      string           `json:"pitcher"`
	Date         string           `json:"date"`
	Handedness   string           `json:"handedness"`
	Level        Level            `json:"level"`
	TotalPitches int              `json:"total_pitches"`
	Breakdown    []TypeComparison `json:"breakdown"`
	MultiLevel   []TypeComparison `json:"multi_level"`
	Zone         ZoneSummary      `json:"zone"`
	Movement     []MovementChart  `json:"movement"`
}
