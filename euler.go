package quaternions

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

const (
	radToDeg = 180 / math.Pi
	degToRad = math.Pi / 180
)

// RaDecRoll returns the right ascension, declination and roll of q in
// degrees. The angles are the Tait-Bryan XYZ angles, see
// https://en.wikipedia.org/wiki/Euler_angles#Tait-Bryan_angles
func (q Quaternion) RaDecRoll() (ra, dec, roll float64) {
	m := q.RotationMatrix()
	ra = math.Atan2(-m.At(0, 1), m.At(0, 0)) * radToDeg
	dec = math.Atan2(m.At(0, 2), math.Hypot(m.At(1, 2), m.At(2, 2))) * radToDeg
	roll = math.Atan2(-m.At(1, 2), m.At(2, 2)) * radToDeg
	return ra, dec, roll
}

// AstrometryRaDecRoll returns ra/dec/roll in degrees as astrometry tools
// report them: extracted in the optical-axis-first frame, with ra negated
// and 180 degrees subtracted from the roll. Roll conventions vary between
// plate solvers, so this is not a fixed standard.
func (q Quaternion) AstrometryRaDecRoll() (ra, dec, roll float64) {
	twisted := OpticalAxisFirst().Compose(q)
	ra, dec, roll = twisted.RaDecRoll()
	return -ra, dec, roll - 180
}

// NewFromRaDecRoll builds the rotation with the given right ascension,
// declination and roll, all in degrees, as Tait-Bryan XYZ angles. ra usually
// lies in [0, 360], dec in [-90, 90] and roll in [0, 360].
func NewFromRaDecRoll(ra, dec, roll float64) Quaternion {
	raq := fromUnit(quat.Exp(quat.Number{Kmag: -ra * degToRad / 2}))
	decq := fromUnit(quat.Exp(quat.Number{Jmag: -dec * degToRad / 2}))
	rollq := fromUnit(quat.Exp(quat.Number{Imag: -roll * degToRad / 2}))
	return rollq.Compose(decq).Compose(raq)
}
