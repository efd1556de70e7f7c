package quaternions

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Average returns the quaternion whose rotation matrix minimizes the sum of
// weighted squared distances to the rotation matrices of the given
// quaternions, following Markley, Cheng, Crassidis and Oschman, "Averaging
// Quaternions". A nil weights slice weighs every quaternion 1.
//
// The result is the scalar-sign-fixed principal eigenvector of the weighted
// sum of coordinate outer products, so averaging n copies of q returns q up
// to global sign.
func Average(quaternions []Quaternion, weights []float64) (Quaternion, error) {
	if len(quaternions) == 0 {
		return Quaternion{}, errors.New("cannot average an empty set of quaternions")
	}
	if weights != nil && len(weights) != len(quaternions) {
		return Quaternion{}, errors.Errorf("got %d weights for %d quaternions", len(weights), len(quaternions))
	}
	m := mat.NewSymDense(4, nil)
	for i, q := range quaternions {
		w := 1.
		if weights != nil {
			w = weights[i]
		}
		c := q.Coordinates()
		m.SymRankOne(m, w, mat.NewVecDense(4, c[:]))
	}
	return firstEigenvector(m)
}

// NewFromQMethod solves Wahba's problem with Davenport's q-method: it
// returns the quaternion whose rotation matrix best sends the columns of
// source onto the matching columns of target in the weighted least-squares
// sense. source and target are 3xn matrices of corresponding observations;
// a nil weights slice weighs every observation 1.
//
// Swapping source and target yields the inverse rotation, so the same call
// also produces change-of-basis quaternions: feed it the coordinates of the
// same vectors in two frames.
//
// See: Closed-form solution of absolute orientation using unit quaternions,
// Berthold K. P. Horn, J. Opt. Soc. Am. A, Vol. 4, No. 4, April 1987.
func NewFromQMethod(source, target *mat.Dense, weights []float64) (Quaternion, error) {
	sr, sc := source.Dims()
	tr, tc := target.Dims()
	if sr != 3 || tr != 3 {
		return Quaternion{}, errors.Errorf("observation matrices must have 3 rows, got %dx%d and %dx%d", sr, sc, tr, tc)
	}
	if sc != tc {
		return Quaternion{}, errors.Errorf("source has %d observations but target has %d", sc, tc)
	}
	if weights != nil && len(weights) != sc {
		return Quaternion{}, errors.Errorf("got %d weights for %d observations", len(weights), sc)
	}

	var b mat.Dense
	if weights == nil {
		b.Mul(source, target.T())
	} else {
		b.Product(source, mat.NewDiagDense(sc, weights), target.T())
	}

	sigma := mat.Trace(&b)
	z := [3]float64{
		b.At(2, 1) - b.At(1, 2),
		b.At(0, 2) - b.At(2, 0),
		b.At(1, 0) - b.At(0, 1),
	}
	k := mat.NewSymDense(4, nil)
	k.SetSym(0, 0, sigma)
	for i, zi := range z {
		k.SetSym(0, i+1, zi)
	}
	// lower-right block is B + B^T - sigma*I
	for r := 0; r < 3; r++ {
		for c := r; c < 3; c++ {
			v := b.At(r, c) + b.At(c, r)
			if r == c {
				v -= sigma
			}
			k.SetSym(r+1, c+1, v)
		}
	}
	return firstEigenvector(k)
}
