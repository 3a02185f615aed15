package dcf

import "github.com/ibarrond/funshade/internal/ring"

// SelfTest re-derives Beta*[xHat<alpha] from a freshly generated key pair for
// one (alpha, xHat) pair, returning the reconstructed output and whether it
// matches the expected value. It is a package-test convenience only (see
// SPEC_FULL.md §9's "Verify-style self-check", supplementing a feature
// present as an inline sanity loop in
// _examples/original_source/funshade/c/test_fss.c) — production callers use
// Gen/Eval directly.
func SelfTest(alpha, xHat ring.Elem) (sum ring.Elem, expected ring.Elem, ok bool, err error) {
	k0, k1, err := Gen(alpha)
	if err != nil {
		return 0, 0, false, err
	}
	o0, err := Eval(0, k0, xHat)
	if err != nil {
		return 0, 0, false, err
	}
	o1, err := Eval(1, k1, xHat)
	if err != nil {
		return 0, 0, false, err
	}
	sum = o0 + o1
	expected = ring.BoolElem(ring.Less(xHat, alpha)) * Beta
	return sum, expected, sum == expected, nil
}
