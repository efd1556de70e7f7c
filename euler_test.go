package quaternions

import (
	"testing"

	"go.viam.com/test"
)

func TestRaDecRollZero(t *testing.T) {
	q := NewFromRaDecRoll(0, 0, 0)
	test.That(t, q.RepresentsSameRotation(Identity()), test.ShouldBeTrue)

	ra, dec, roll := q.RaDecRoll()
	test.That(t, ra, test.ShouldAlmostEqual, 0)
	test.That(t, dec, test.ShouldAlmostEqual, 0)
	test.That(t, roll, test.ShouldAlmostEqual, 0)
}

func TestRaDecRollRoundTrip(t *testing.T) {
	// angles kept inside atan2's principal range so they compare directly
	cases := [][3]float64{
		{30, 10, 40},
		{-120, -45, 160},
		{60, 80, -90},
		{179, -89, 1},
	}
	for _, c := range cases {
		ra, dec, roll := NewFromRaDecRoll(c[0], c[1], c[2]).RaDecRoll()
		test.That(t, ra, test.ShouldAlmostEqual, c[0], 1e-9)
		test.That(t, dec, test.ShouldAlmostEqual, c[1], 1e-9)
		test.That(t, roll, test.ShouldAlmostEqual, c[2], 1e-9)
	}
}

func TestRaDecRollSingleAngles(t *testing.T) {
	ra, dec, roll := NewFromRaDecRoll(25, 0, 0).RaDecRoll()
	test.That(t, ra, test.ShouldAlmostEqual, 25, 1e-9)
	test.That(t, dec, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, roll, test.ShouldAlmostEqual, 0, 1e-9)

	ra, dec, roll = NewFromRaDecRoll(0, -40, 0).RaDecRoll()
	test.That(t, ra, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, dec, test.ShouldAlmostEqual, -40, 1e-9)
	test.That(t, roll, test.ShouldAlmostEqual, 0, 1e-9)

	ra, dec, roll = NewFromRaDecRoll(0, 0, 120).RaDecRoll()
	test.That(t, ra, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, dec, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, roll, test.ShouldAlmostEqual, 120, 1e-9)
}

func TestAstrometryRaDecRollIdentity(t *testing.T) {
	// the identity attitude seen through the optical-axis-first frame points
	// at dec=90 with the astrometry roll offset
	ra, dec, roll := Identity().AstrometryRaDecRoll()
	test.That(t, ra, test.ShouldAlmostEqual, 0)
	test.That(t, dec, test.ShouldAlmostEqual, 90)
	test.That(t, roll, test.ShouldAlmostEqual, -180)
}

func TestAstrometryRaDecRollTwist(t *testing.T) {
	q := NewFromRaDecRoll(25, -40, 70)
	ra, dec, roll := q.AstrometryRaDecRoll()
	tra, tdec, troll := OpticalAxisFirst().Compose(q).RaDecRoll()
	test.That(t, ra, test.ShouldAlmostEqual, -tra, 1e-9)
	test.That(t, dec, test.ShouldAlmostEqual, tdec, 1e-9)
	test.That(t, roll, test.ShouldAlmostEqual, troll-180, 1e-9)
}
