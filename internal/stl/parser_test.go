package stl

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"vecgeom/vec3"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

func appendVec(b []byte, v vec3.Vec3) []byte {
	for i := 0; i < 3; i++ {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(float32(v[i])))
	}
	return b
}

func binarySTL(header string, facets []Facet) []byte {
	b := make([]byte, headerSize)
	copy(b, header)
	b = binary.LittleEndian.AppendUint32(b, uint32(len(facets)))
	for _, f := range facets {
		b = appendVec(b, f.Normal)
		for _, v := range f.Verts {
			b = appendVec(b, v)
		}
		b = binary.LittleEndian.AppendUint16(b, 0)
	}
	return b
}

func TestParseBinary(t *testing.T) {
	want := []Facet{
		{
			Normal: vec3.Vec3{0, 0, 1},
			Verts:  [3]vec3.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		},
		{
			Normal: vec3.Vec3{0, 0, 1},
			Verts:  [3]vec3.Vec3{{1, 0, 0}, {1.5, 0.25, 0}, {0, 1, 0}},
		},
	}
	p := writeTemp(t, "wedge.stl", binarySTL("wedge", want))

	m, err := Parse(p)
	require.NoError(t, err)
	require.Equal(t, "wedge", m.Name)
	require.Equal(t, want, m.Facets)
}

func TestParseBinarySolidHeader(t *testing.T) {
	// A binary file whose 80-byte header starts with "solid" must still be
	// read as binary when the facet count matches the file size.
	facets := []Facet{{
		Normal: vec3.Vec3{0, 0, 1},
		Verts:  [3]vec3.Vec3{{0, 0, 0}, {2, 0, 0}, {0, 2, 0}},
	}}
	p := writeTemp(t, "trap.stl", binarySTL("solid exported by cad", facets))

	m, err := Parse(p)
	require.NoError(t, err)
	require.Len(t, m.Facets, 1)
	require.Equal(t, facets[0], m.Facets[0])
}

func TestParseASCII(t *testing.T) {
	src := `solid plate
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
  facet normal 0 0 1
    outer loop
      vertex 1 0 0
      vertex 1 1 0
      vertex 0 1 0
    endloop
  endfacet
endsolid plate
`
	p := writeTemp(t, "plate.stl", []byte(src))

	m, err := Parse(p)
	require.NoError(t, err)
	require.Equal(t, "plate", m.Name)
	require.Len(t, m.Facets, 2)
	require.Equal(t, vec3.Vec3{0, 0, 1}, m.Facets[0].Normal)
	require.Equal(t, [3]vec3.Vec3{{1, 0, 0}, {1, 1, 0}, {0, 1, 0}}, m.Facets[1].Verts)
}

func TestParseASCIIExponents(t *testing.T) {
	src := `solid tiny
facet normal 0.0e0 0e0 1e0
outer loop
vertex 2.5e-1 0 0
vertex 0 2.5e-1 0
vertex 0 0 5e-1
endloop
endfacet
endsolid
`
	p := writeTemp(t, "tiny.stl", []byte(src))

	m, err := Parse(p)
	require.NoError(t, err)
	require.Len(t, m.Facets, 1)
	require.Equal(t, vec3.Vec3{0.25, 0, 0}, m.Facets[0].Verts[0])
	require.Equal(t, vec3.Vec3{0, 0, 0.5}, m.Facets[0].Verts[2])
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
		want string
	}{
		{
			name: "unrecognized",
			data: "not a mesh at all",
			want: "unrecognized format",
		},
		{
			name: "short facet",
			data: "solid x\n  facet normal 0 0 1\n  vertex 0 0 0\n  vertex 1 0 0\n  endfacet\nendsolid\n",
			want: "facet has 2 vertices",
		},
		{
			name: "bad coordinate",
			data: "solid x\n  facet normal 0 0 1\n  vertex zero 0 0\n  endfacet\nendsolid\n",
			want: "bad coordinate",
		},
		{
			name: "vertex outside facet",
			data: "solid x\n  vertex 0 0 0\nendsolid\n",
			want: "unexpected vertex",
		},
		{
			name: "malformed facet line",
			data: "solid x\n  facet 0 0 1\n  endfacet\nendsolid\n",
			want: "malformed facet",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := writeTemp(t, "bad.stl", []byte(tc.data))
			_, err := Parse(p)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "absent.stl"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "stl: read")
}

func TestParseTruncatedBinary(t *testing.T) {
	// Header claims two facets but carries none. The size check fails and
	// the header does not open an ASCII solid either.
	b := make([]byte, headerSize)
	copy(b, "bin")
	b = binary.LittleEndian.AppendUint32(b, 2)
	p := writeTemp(t, "trunc.stl", b)

	_, err := Parse(p)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unrecognized format")
}
