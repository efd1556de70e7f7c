// Package quaternions represents rotations of 3D Euclidean space as unit
// quaternions (versors), the double-cover parametrization of SO(3).
//
// A Quaternion here stores Q^op, following the Schaub-Jenkins attitude
// convention: composition order is the reverse of the Hamilton textbook one.
// q and -q denote the identical rotation, and all comparison and distance
// operations respect that double cover.
package quaternions

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"
)

// DefaultTolerance bounds both the normalization stability gate and the
// default coordinate comparisons.
const DefaultTolerance = 1e-8

// ErrNumericalInstability is returned when an input's norm is too close to
// zero to be normalized meaningfully. Match with errors.Is.
var ErrNumericalInstability = errors.New("numerically unstable input: norm too close to zero")

// Quaternion is an immutable unit quaternion. The zero value is not valid;
// use a constructor. Coordinate order is (qr, qi, qj, qk), scalar first.
type Quaternion struct {
	q quat.Number
}

// New returns the unit quaternion obtained by normalizing the given
// coordinates. It returns an error wrapping ErrNumericalInstability if the
// norm of the input is below DefaultTolerance; no partial value is produced.
func New(qr, qi, qj, qk float64) (Quaternion, error) {
	q := quat.Number{Real: qr, Imag: qi, Jmag: qj, Kmag: qk}
	norm := quat.Abs(q)
	if norm < DefaultTolerance {
		return Quaternion{}, errors.Wrapf(ErrNumericalInstability,
			"cannot normalize (%g, %g, %g, %g)", qr, qi, qj, qk)
	}
	return Quaternion{quat.Scale(1/norm, q)}, nil
}

// fromUnit wraps a quat.Number already known to have norm ~1, renormalizing
// to keep error from compounding across chained products.
func fromUnit(q quat.Number) Quaternion {
	return Quaternion{quat.Scale(1/quat.Abs(q), q)}
}

// Identity returns the identity rotation (1, 0, 0, 0).
func Identity() Quaternion {
	return Quaternion{quat.Number{Real: 1}}
}

// OpticalAxisFirst returns the change-of-basis quaternion between the two
// usual camera frames: with R pointing right along the sensor plane, D down,
// and P outward along the optical axis, it maps [R, D, P] coordinates to
// [P, -R, -D] coordinates.
func OpticalAxisFirst() Quaternion {
	return Quaternion{quat.Number{Real: 0.5, Imag: 0.5, Jmag: -0.5, Kmag: 0.5}}
}

// Quat returns the underlying base-algebra value.
func (q Quaternion) Quat() quat.Number {
	return q.q
}

// Coordinates returns (qr, qi, qj, qk) as a 4-element array.
func (q Quaternion) Coordinates() [4]float64 {
	return [4]float64{q.q.Real, q.q.Imag, q.q.Jmag, q.q.Kmag}
}

// Neg returns the antipodal quaternion -q, representing the same rotation.
func (q Quaternion) Neg() Quaternion {
	return Quaternion{quat.Scale(-1, q.q)}
}

// Conjugate returns the inverse rotation. For unit quaternions the conjugate
// and the inverse coincide.
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{quat.Conj(q.q)}
}

// Compose returns the quaternion product q*p in the Q^op (Schaub-Jenkins)
// convention, renormalized. In that convention products compose in the same
// order as attitude matrices, which under gonum's Hamilton Mul means the
// operands are swapped: q*p here is quat.Mul(p, q). As a consequence
// q1.Compose(q2).Apply(v) == q1.Apply(q2.Apply(v)).
func (q Quaternion) Compose(p Quaternion) Quaternion {
	return fromUnit(quat.Mul(p.q, q.q))
}

// ScaleBy returns the base-algebra product q*s. Scaling breaks the unit-norm
// invariant, so the result is not a Quaternion.
func (q Quaternion) ScaleBy(s float64) quat.Number {
	return quat.Scale(s, q.q)
}

// MulQuat returns the base-algebra product q*p, in the same Q^op operand
// order as Compose, for an arbitrary, not necessarily unit, right operand.
// The result is not renormalized.
func (q Quaternion) MulQuat(p quat.Number) quat.Number {
	return quat.Mul(p, q.q)
}

// Apply rotates the vector v, i.e. multiplies it by the rotation matrix of q.
func (q Quaternion) Apply(v r3.Vector) r3.Vector {
	return q.RotationMatrix().Mul(v)
}

// QuaternionAlmostEqual compares two base-algebra quaternions coordinatewise,
// with no sign folding.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	return quat.Abs(quat.Sub(a, b)) <= tol
}

// ApproxEqual is the structural equality for the type: coordinates match
// within DefaultTolerance, sign included. Use RepresentsSameRotation to
// compare as rotations.
func (q Quaternion) ApproxEqual(p Quaternion) bool {
	return q.ApproxEqualThreshold(p, DefaultTolerance)
}

// ApproxEqualThreshold is ApproxEqual with a caller-supplied tolerance.
func (q Quaternion) ApproxEqualThreshold(p Quaternion, tol float64) bool {
	return QuaternionAlmostEqual(q.q, p.q, tol)
}

// RepresentsSameRotation reports whether q and p denote the same element of
// SO(3), i.e. whether their coordinates match up to global sign within
// DefaultTolerance.
func (q Quaternion) RepresentsSameRotation(p Quaternion) bool {
	return q.RepresentsSameRotationThreshold(p, DefaultTolerance)
}

// RepresentsSameRotationThreshold is RepresentsSameRotation with a
// caller-supplied tolerance.
func (q Quaternion) RepresentsSameRotationThreshold(p Quaternion, tol float64) bool {
	return QuaternionAlmostEqual(q.q, p.q, tol) || QuaternionAlmostEqual(q.q, quat.Scale(-1, p.q), tol)
}

// Distance returns the angular closeness of two unit quaternions as the
// minimum of the Euclidean coordinate distances to p and to -p. Not a metric
// in the raw Euclidean sense, but monotonic with rotation-angle difference.
func (q Quaternion) Distance(p Quaternion) float64 {
	return math.Min(quat.Abs(quat.Sub(q.q, p.q)), quat.Abs(quat.Add(q.q, p.q)))
}

// PositiveRepresentant returns q or -q, whichever has its first nonzero
// coordinate positive, scanning in (qr, qi, qj, qk) order. This fixes a
// canonical sign out of the double cover.
func (q Quaternion) PositiveRepresentant() Quaternion {
	for _, c := range q.Coordinates() {
		if c > 0 {
			return q
		}
		if c < 0 {
			return q.Neg()
		}
	}
	// unreachable for unit quaternions
	return q
}
