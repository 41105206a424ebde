package report

import "math"

// chiSquare95 is the chi-square critical value for 2 degrees of freedom at
// 95% confidence. Scaling the covariance eigenvalues by it yields an
// ellipse expected to contain 95% of the points under a bivariate normal.
const chiSquare95 = 5.991

// ellipseStep is the angular sampling step, in radians, used when tracing
// the ellipse outline.
const ellipseStep = 0.1

// Ellipse is a 95% confidence ellipse over a 2D point cloud, with the
// traced outline ready for plotting.
type Ellipse struct {
	CenterX   float64 `json:"center_x"`
	CenterY   float64 `json:"center_y"`
	SemiMajor float64 `json:"semi_major"`
	SemiMinor float64 `json:"semi_minor"`
	Angle     float64 `json:"angle"`
	Points    []Point `json:"points"`
}

// ConfidenceEllipse fits a 95% confidence ellipse to paired samples. It
// reports false when the inputs are degenerate: fewer than three points,
// mismatched lengths, or a covariance matrix without two positive
// eigenvalues (collinear or constant data).
func ConfidenceEllipse(xs, ys []float64) (*Ellipse, bool) {
	n := len(xs)
	if n < 3 || len(ys) != n {
		return nil, false
	}

	var meanX, meanY float64
	for i := 0; i < n; i++ {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= float64(n)
	meanY /= float64(n)

	// Unbiased sample covariance.
	var cxx, cyy, cxy float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cxx += dx * dx
		cyy += dy * dy
		cxy += dx * dy
	}
	denom := float64(n - 1)
	cxx /= denom
	cyy /= denom
	cxy /= denom

	// Closed-form eigenvalues of the symmetric 2x2 covariance matrix.
	half := (cxx + cyy) / 2
	det := cxx*cyy - cxy*cxy
	disc := half*half - det
	if disc < 0 {
		disc = 0
	}
	root := math.Sqrt(disc)
	lambda1 := half + root
	lambda2 := half - root
	if lambda1 <= 0 || lambda2 <= 0 {
		return nil, false
	}

	var angle float64
	if math.Abs(cxy) < 1e-9 {
		// Axis-aligned: the major axis follows whichever variance
		// dominates.
		if cxx >= cyy {
			angle = 0
		} else {
			angle = math.Pi / 2
		}
	} else {
		angle = math.Atan2(2*cxy, cxx-cyy) / 2
	}

	e := &Ellipse{
		CenterX:   meanX,
		CenterY:   meanY,
		SemiMajor: math.Sqrt(chiSquare95 * lambda1),
		SemiMinor: math.Sqrt(chiSquare95 * lambda2),
		Angle:     angle,
	}

	cos := math.Cos(angle)
	sin := math.Sin(angle)
	for theta := 0.0; theta < 2*math.Pi; theta += ellipseStep {
		px := e.SemiMajor * math.Cos(theta)
		py := e.SemiMinor * math.Sin(theta)
		e.Points = append(e.Points, Point{
			X: meanX + px*cos - py*sin,
			Y: meanY + px*sin + py*cos,
		})
	}
	// Close the outline so consumers can draw it as a polygon.
	e.Points = append(e.Points, e.Points[0])

	return e, true
}
