package quaternions

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// RotationMatrix is a 3x3 orthonormal matrix with determinant +1, stored
// row major.
type RotationMatrix struct {
	mat [9]float64
}

// NewRotationMatrix builds a rotation matrix from 9 row-major values.
func NewRotationMatrix(m []float64) (*RotationMatrix, error) {
	if len(m) != 9 {
		return nil, errors.Errorf("input slice has %d elements, need exactly 9", len(m))
	}
	return &RotationMatrix{[9]float64{m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8]}}, nil
}

// NewRotationMatrixFromMgl converts an mgl64.Mat3 (column major) to a
// RotationMatrix.
func NewRotationMatrixFromMgl(m mgl64.Mat3) *RotationMatrix {
	rm := &RotationMatrix{}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			rm.mat[r*3+c] = m.At(r, c)
		}
	}
	return rm
}

// At returns the value at the given row and column.
func (rm *RotationMatrix) At(row, col int) float64 {
	return rm.mat[row*3+col]
}

// Row returns a matrix row as a vector.
func (rm *RotationMatrix) Row(row int) r3.Vector {
	return r3.Vector{X: rm.mat[row*3], Y: rm.mat[row*3+1], Z: rm.mat[row*3+2]}
}

// Mul returns the matrix-vector product rm * v.
func (rm *RotationMatrix) Mul(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: rm.mat[0]*v.X + rm.mat[1]*v.Y + rm.mat[2]*v.Z,
		Y: rm.mat[3]*v.X + rm.mat[4]*v.Y + rm.mat[5]*v.Z,
		Z: rm.mat[6]*v.X + rm.mat[7]*v.Y + rm.mat[8]*v.Z,
	}
}

// Mgl converts to an mgl64.Mat3.
func (rm *RotationMatrix) Mgl() mgl64.Mat3 {
	var out mgl64.Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out.Set(r, c, rm.At(r, c))
		}
	}
	return out
}

// RotationMatrix returns the 3x3 rotation matrix representing the same
// rotation as q, consistent with the stored Q^op convention.
func (q Quaternion) RotationMatrix() *RotationMatrix {
	qr, qi, qj, qk := q.q.Real, q.q.Imag, q.q.Jmag, q.q.Kmag
	return &RotationMatrix{[9]float64{
		qr*qr + qi*qi - qj*qj - qk*qk, 2 * (qi*qj + qr*qk), 2 * (qi*qk - qr*qj),
		2 * (qi*qj - qr*qk), qr*qr - qi*qi + qj*qj - qk*qk, 2 * (qj*qk + qr*qi),
		2 * (qi*qk + qr*qj), 2 * (qj*qk - qr*qi), qr*qr - qi*qi - qj*qj + qk*qk,
	}}
}

// Basis returns the three rows of the rotation matrix of q.
func (q Quaternion) Basis() (r3.Vector, r3.Vector, r3.Vector) {
	m := q.RotationMatrix()
	return m.Row(0), m.Row(1), m.Row(2)
}

// Mgl returns the coordinates of q as an mgl64.Quat. Only the coordinates
// carry over: mgl64 composes and rotates in the Hamilton convention, the
// reverse of this package's.
func (q Quaternion) Mgl() mgl64.Quat {
	return mgl64.Quat{W: q.q.Real, V: mgl64.Vec3{q.q.Imag, q.q.Jmag, q.q.Kmag}}
}

// NewFromMgl builds a Quaternion from the coordinates of an mgl64.Quat,
// normalizing them.
func NewFromMgl(mq mgl64.Quat) (Quaternion, error) {
	return New(mq.W, mq.X(), mq.Y(), mq.Z())
}

// NewFromRotationMatrix returns the unit quaternion corresponding to the
// rotation matrix m, using Shepperd's method: recover the squared magnitude
// of each coordinate from the trace and diagonal, pick the largest to avoid
// dividing by a near-zero component, and read the relative signs off the
// off-diagonal terms.
func NewFromRotationMatrix(m *RotationMatrix) (Quaternion, error) {
	tr := m.At(0, 0) + m.At(1, 1) + m.At(2, 2)
	qsq := [4]float64{
		(1 + tr) / 4,
		(1 + 2*m.At(0, 0) - tr) / 4,
		(1 + 2*m.At(1, 1) - tr) / 4,
		(1 + 2*m.At(2, 2) - tr) / 4,
	}
	maxIdx := 0
	for i := range qsq {
		if qsq[i] < 0 { // absorb floating-point error
			qsq[i] = 0
		}
		if qsq[i] > qsq[maxIdx] {
			maxIdx = i
		}
	}

	// Symmetric sign table: entry (a, b) is the sign of the product of
	// coordinates a and b, read off the off-diagonal differences and sums.
	s01 := sign(m.At(1, 2) - m.At(2, 1))
	s02 := sign(m.At(2, 0) - m.At(0, 2))
	s03 := sign(m.At(0, 1) - m.At(1, 0))
	s12 := sign(m.At(0, 1) + m.At(1, 0))
	s13 := sign(m.At(2, 0) + m.At(0, 2))
	s23 := sign(m.At(1, 2) + m.At(2, 1))
	signs := [4][4]float64{
		{1, s01, s02, s03},
		{s01, 1, s12, s13},
		{s02, s12, 1, s23},
		{s03, s13, s23, 1},
	}

	q, err := New(
		math.Sqrt(qsq[0])*signs[maxIdx][0],
		math.Sqrt(qsq[1])*signs[maxIdx][1],
		math.Sqrt(qsq[2])*signs[maxIdx][2],
		math.Sqrt(qsq[3])*signs[maxIdx][3],
	)
	if err != nil {
		// The input is far from orthonormal and Shepperd extraction
		// collapsed; solve for the nearest rotation instead.
		return NewNearestRotation(m)
	}
	return q, nil
}

// NewNearestRotation returns the unit quaternion whose rotation matrix is
// closest to m in the least-squares sense. It makes no orthonormality
// assumption, so unlike NewFromRotationMatrix it suits noisy or estimated
// matrices: it solves Wahba's problem between the identity basis and the
// columns of m, through the same eigensolver as Average and NewFromQMethod.
func NewNearestRotation(m *RotationMatrix) (Quaternion, error) {
	return NewFromQMethod(identityBasis(), m.dense(), nil)
}

// dense copies the matrix into a gonum Dense for linear-algebra use.
func (rm *RotationMatrix) dense() *mat.Dense {
	out := mat.NewDense(3, 3, nil)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out.Set(r, c, rm.At(r, c))
		}
	}
	return out
}

func identityBasis() *mat.Dense {
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
