package quaternions

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// firstEigenvector returns the eigenvector of the symmetric 4x4 matrix m
// associated with its algebraically largest eigenvalue, wrapped as a unit
// quaternion. The eigensolver's sign ambiguity is fixed canonically: if the
// scalar (first) component is negative the whole vector is negated.
//
// This is the single numerical kernel shared by matrix-conversion fallback,
// Average and NewFromQMethod, so they all inherit identical tie-breaking.
func firstEigenvector(m *mat.SymDense) (Quaternion, error) {
	var eig mat.EigenSym
	if ok := eig.Factorize(m, true); !ok {
		return Quaternion{}, errors.New("failed to factorize symmetric 4x4 matrix")
	}
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	// eigenvalues come out ascending, so the last column is the one
	last := 3
	q := [4]float64{vecs.At(0, last), vecs.At(1, last), vecs.At(2, last), vecs.At(3, last)}
	if q[0] < 0 {
		for i := range q {
			q[i] = -q[i]
		}
	}
	return New(q[0], q[1], q[2], q[3])
}
