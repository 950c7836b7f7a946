package vec3

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewZeroFills(t *testing.T) {
	require.Equal(t, Vec3{0, 0, 0}, New())
	require.Equal(t, Vec3{1, 0, 0}, New(1))
	require.Equal(t, Vec3{1, 2, 0}, New(1, 2))
	require.Equal(t, Vec3{1, 2, 3}, New(1, 2, 3))

	// Values beyond the third coordinate are ignored, not an error.
	require.Equal(t, Vec3{1, 2, 3}, New(1, 2, 3, 4, 5))
}

func TestAdd(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{-3, 0, 5}
	c := Vec3{0.5, 0.25, -1}

	t.Run("componentwise", func(t *testing.T) {
		require.Equal(t, Vec3{-2, 2, 8}, a.Add(b))
	})

	t.Run("no operands returns receiver", func(t *testing.T) {
		require.Equal(t, a, a.Add())
	})

	t.Run("fold equals chained calls", func(t *testing.T) {
		require.Equal(t, a.Add(b).Add(c), a.Add(b, c))
	})

	t.Run("commutative under reordering", func(t *testing.T) {
		require.Equal(t, a.Add(b, c), c.Add(b, a))
		require.Equal(t, a.Add(b, c), b.Add(a, c))
	})
}

// Subtraction folds left to right: v - v1 - v2, not v - (v1 + v2) with
// re-associated rounding.
func TestSubFoldOrder(t *testing.T) {
	tcs := []struct {
		name    string
		v       Vec3
		operand []Vec3
		want    Vec3
	}{
		{"no operands", Vec3{1, 2, 3}, nil, Vec3{1, 2, 3}},
		{"single", Vec3{1, 2, 3}, []Vec3{{-3, 0, 5}}, Vec3{4, 2, -2}},
		{"two in turn", Vec3{10, 8, 6}, []Vec3{{1, 2, 3}, {4, 0, -1}}, Vec3{5, 6, 4}},
		{"three in turn", Vec3{0, 0, 0}, []Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, Vec3{-1, -1, -1}},
	}

	for _, tc := range tcs {
		got := tc.v.Sub(tc.operand...)
		if got != tc.want {
			t.Fatalf("%s: Sub got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestSubAddRoundTrip(t *testing.T) {
	// Exactly representable components keep the round trip bit-exact.
	a := Vec3{1.5, -2.25, 8}
	b := Vec3{0.5, 4, -3.75}
	require.Equal(t, a, a.Sub(b).Add(b))
}

func TestScale(t *testing.T) {
	require.Equal(t, Vec3{2, -4, 6}, Vec3{1, -2, 3}.Scale(2))
	require.Equal(t, Vec3{0, 0, 0}, Vec3{1, -2, 3}.Scale(0))
	require.Equal(t, Vec3{-0.5, 1, -1.5}, Vec3{1, -2, 3}.Scale(-0.5))
}

func TestDot(t *testing.T) {
	a := Vec3{2, 3, 5}
	b := Vec3{7, 11, 13}
	require.Equal(t, 2*7+3*11+5*13.0, a.Dot(b))

	require.Equal(t, 0.0, Vec3{1, 0, 0}.Dot(Vec3{0, 1, 0}))
	require.Equal(t, 1.0, Vec3{1, 0, 0}.Dot(Vec3{1, 0, 0}))
}

// The z terms must contribute to the product; a dot that drops z (or counts
// y twice) collapses pure-z vectors to zero.
func TestDotUsesZComponent(t *testing.T) {
	require.Equal(t, 1.0, Vec3{0, 0, 1}.Dot(Vec3{0, 0, 1}))
	require.Equal(t, 6.0, Vec3{0, 2, 3}.Dot(Vec3{5, 0, 2}))

	a := Vec3{2, 3, 5}
	b := Vec3{7, 11, 13}
	yTwice := a[0]*b[0] + a[1]*b[1] + a[1]*b[1]
	require.NotEqual(t, yTwice, a.Dot(b))
}

func TestCross(t *testing.T) {
	require.Equal(t, Vec3{0, 0, 1}, Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0}))

	a := Vec3{1, 2, 3}
	b := Vec3{-4, 5, 6}

	t.Run("anti-commutative", func(t *testing.T) {
		require.Equal(t, a.Cross(b), b.Cross(a).Scale(-1))
	})

	t.Run("orthogonal to both operands", func(t *testing.T) {
		require.InDelta(t, 0, a.Dot(a.Cross(b)), 1e-12)
		require.InDelta(t, 0, b.Dot(a.Cross(b)), 1e-12)
	})
}

func TestLen(t *testing.T) {
	require.Equal(t, 5.0, New(3, 4, 0).Len())
	require.Equal(t, 0.0, Vec3{}.Len())

	for _, v := range []Vec3{{1, 0, 0}, {0, -2, 0}, {1e-9, 0, 1e-9}, {-3, 7, 0.5}} {
		require.Greater(t, v.Len(), 0.0, "nonzero vector %v", v)
	}
}
