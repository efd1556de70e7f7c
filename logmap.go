package quaternions

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Log returns the quaternion logarithm of q as a base-algebra value. The
// imaginary part is the half-angle axis-angle vector of the rotation.
//
// When the imaginary part vanishes the rotation is by 0 or 2pi and the axis
// is undefined; that case takes an explicit branch returning (ln|q|, 0, 0, 0)
// for qr > 0 and (ln|q|, pi, 0, 0) otherwise.
func (q Quaternion) Log() quat.Number {
	norm := quat.Abs(q.q)
	imag := r3.Vector{X: q.q.Imag / norm, Y: q.q.Jmag / norm, Z: q.q.Kmag / norm}
	imagNorm := imag.Norm()
	if imagNorm == 0 {
		iPart := 0.
		if q.q.Real <= 0 {
			iPart = math.Pi
		}
		return quat.Number{Real: math.Log(norm), Imag: iPart}
	}
	axis := imag.Mul(math.Atan2(imagNorm, q.q.Real/norm) / imagNorm)
	return quat.Number{Real: math.Log(norm), Imag: axis.X, Jmag: axis.Y, Kmag: axis.Z}
}

// RotationVector returns the axis-angle vector of q: direction is the
// rotation axis, norm is the angle in radians. It is twice the imaginary
// part of Log.
func (q Quaternion) RotationVector() r3.Vector {
	l := q.Log()
	return r3.Vector{X: 2 * l.Imag, Y: 2 * l.Jmag, Z: 2 * l.Kmag}
}

// RotationAxis returns the unit rotation axis of q.
func (q Quaternion) RotationAxis() r3.Vector {
	return q.RotationVector().Normalize()
}

// RotationAngle returns the rotation angle of q in radians.
func (q Quaternion) RotationAngle() float64 {
	return q.RotationVector().Norm()
}

// NewFromRotationVector returns the rotation about the axis v by an angle of
// |v| radians, i.e. the exponential of the pure quaternion (0, v/2). The
// zero vector yields the identity quaternion.
func NewFromRotationVector(v r3.Vector) Quaternion {
	half := v.Mul(0.5)
	return fromUnit(quat.Exp(quat.Number{Imag: half.X, Jmag: half.Y, Kmag: half.Z}))
}

// IntegrateFromVelocityVectors treats each 3-vector as an incremental
// rotation and returns the rotation vector of their net effect under
// chronological application. With the stored Q^op convention that means
// composing the exponentials in reverse input order, starting from the
// identity.
func IntegrateFromVelocityVectors(vectors []r3.Vector) r3.Vector {
	prod := Identity()
	for i := len(vectors) - 1; i >= 0; i-- {
		prod = prod.Compose(NewFromRotationVector(vectors[i]))
	}
	return prod.RotationVector()
}
