package chroma

import (
	"math"
)

// Tonnetz projects 12-bin chroma vectors into a six-dimensional
// tonal-centroid space.
//
// The six dimensions are sin/cos pairs on three interval circles:
// perfect fifths, minor thirds, and major thirds. Pitch classes that are
// harmonically close end up close in this space, so the magnitude of a
// frame's tonal centroid captures how far its pitch content sits from a
// neutral, evenly spread tonality. Large centroid norms indicate
// concentrated, "distant" tonal configurations and work as a tension
// signal.
type Tonnetz struct {
	phi [][]float64 // 6 x 12 projection matrix
}

// Interval circle periods, in semitone units, for
// (fifths, minor thirds, major thirds); each circle contributes a
// sin row and a cos row
var tonnetzScales = [6]float64{7.0 / 6.0, 7.0 / 6.0, 3.0 / 2.0, 3.0 / 2.0, 2.0 / 3.0, 2.0 / 3.0}

// Radii weight the circles; thirds at half radius per the standard
// tonal-centroid formulation
var tonnetzRadii = [6]float64{1.0, 1.0, 1.0, 1.0, 0.5, 0.5}

// NewTonnetz creates a tonal-centroid projector
func NewTonnetz() *Tonnetz {
	tn := &Tonnetz{}
	tn.initializeProjection()
	return tn
}

// initializeProjection builds the 6x12 projection matrix
func (tn *Tonnetz) initializeProjection() {
	tn.phi = make([][]float64, 6)

	for i := 0; i < 6; i++ {
		tn.phi[i] = make([]float64, 12)

		for j := 0; j < 12; j++ {
			v := tonnetzScales[i] * float64(j)
			// Even rows are the sin half of each pair:
			// cos(pi*(x - 0.5)) == sin(pi*x)
			if i%2 == 0 {
				v -= 0.5
			}
			tn.phi[i][j] = tonnetzRadii[i] * math.Cos(math.Pi*v)
		}
	}
}

// Project maps one chroma frame to its 6-dimensional tonal centroid.
// The frame is L1-normalized first; an all-zero frame maps to the
// origin.
func (tn *Tonnetz) Project(chromaFrame []float64) []float64 {
	centroid := make([]float64, 6)
	if len(chromaFrame) != 12 {
		return centroid
	}

	total := 0.0
	for _, energy := range chromaFrame {
		total += math.Abs(energy)
	}
	if total < 1e-10 {
		return centroid
	}

	for i := 0; i < 6; i++ {
		sum := 0.0
		for j := 0; j < 12; j++ {
			sum += tn.phi[i][j] * chromaFrame[j]
		}
		centroid[i] = sum / total
	}

	return centroid
}

// ProjectFrames maps every frame of a chromagram into tonal-centroid
// space
func (tn *Tonnetz) ProjectFrames(chromagram [][]float64) [][]float64 {
	if len(chromagram) == 0 {
		return [][]float64{}
	}

	centroids := make([][]float64, len(chromagram))

	for t, chromaFrame := range chromagram {
		centroids[t] = tn.Project(chromaFrame)
	}

	return centroids
}

// FrameNorms returns the Euclidean norm of each frame's tonal centroid
func (tn *Tonnetz) FrameNorms(centroids [][]float64) []float64 {
	norms := make([]float64, len(centroids))

	for t, centroid := range centroids {
		sumSquares := 0.0
		for _, val := range centroid {
			sumSquares += val * val
		}
		norms[t] = math.Sqrt(sumSquares)
	}

	return norms
}
