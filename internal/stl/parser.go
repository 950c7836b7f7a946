package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"vecgeom/vec3"
)

const (
	headerSize = 80
	facetSize  = 50 // normal + 3 vertices as float32, then uint16 attribute
)

// Parse reads an STL file and returns its facets.
// Both binary and ASCII encodings are supported. Binary is detected by the
// declared facet count matching the file size, which also covers binary
// files whose header happens to begin with "solid".
func Parse(filepath string) (*Mesh, error) {
	raw, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("stl: read %s: %w", filepath, err)
	}

	if len(raw) >= headerSize+4 {
		count := int(binary.LittleEndian.Uint32(raw[headerSize:]))
		if headerSize+4+count*facetSize == len(raw) {
			return parseBinary(raw), nil
		}
	}
	if bytes.HasPrefix(bytes.TrimLeft(raw, " \t\r\n"), []byte("solid")) {
		return parseASCII(raw, filepath)
	}
	return nil, fmt.Errorf("stl: unrecognized format in %s", filepath)
}

func parseBinary(raw []byte) *Mesh {
	count := int(binary.LittleEndian.Uint32(raw[headerSize:]))
	m := &Mesh{
		Name:   headerName(raw[:headerSize]),
		Facets: make([]Facet, 0, count),
	}

	off := headerSize + 4
	for i := 0; i < count; i++ {
		f := Facet{Normal: readVec(raw[off:])}
		f.Verts[0] = readVec(raw[off+12:])
		f.Verts[1] = readVec(raw[off+24:])
		f.Verts[2] = readVec(raw[off+36:])
		m.Facets = append(m.Facets, f)
		off += facetSize
	}
	return m
}

func headerName(h []byte) string {
	// Find null terminator
	for i, b := range h {
		if b == 0 {
			h = h[:i]
			break
		}
	}
	return strings.TrimSpace(string(h))
}

func readVec(b []byte) vec3.Vec3 {
	return vec3.Vec3{
		float64(math.Float32frombits(binary.LittleEndian.Uint32(b[0:]))),
		float64(math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))),
		float64(math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))),
	}
}

func parseASCII(raw []byte, filepath string) (*Mesh, error) {
	m := &Mesh{}
	var (
		cur     Facet
		nverts  int
		inFacet bool
	)

	sc := bufio.NewScanner(bytes.NewReader(raw))
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				m.Name = fields[1]
			}
		case "facet":
			if len(fields) < 5 || fields[1] != "normal" {
				return nil, fmt.Errorf("stl: %s line %d: malformed facet", filepath, line)
			}
			n, err := parseTriple(fields[2:5])
			if err != nil {
				return nil, fmt.Errorf("stl: %s line %d: %w", filepath, line, err)
			}
			cur = Facet{Normal: n}
			nverts = 0
			inFacet = true
		case "vertex":
			if !inFacet || nverts >= 3 {
				return nil, fmt.Errorf("stl: %s line %d: unexpected vertex", filepath, line)
			}
			if len(fields) < 4 {
				return nil, fmt.Errorf("stl: %s line %d: short vertex", filepath, line)
			}
			v, err := parseTriple(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("stl: %s line %d: %w", filepath, line, err)
			}
			cur.Verts[nverts] = v
			nverts++
		case "endfacet":
			if nverts != 3 {
				return nil, fmt.Errorf("stl: %s line %d: facet has %d vertices", filepath, line, nverts)
			}
			m.Facets = append(m.Facets, cur)
			inFacet = false
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("stl: scan %s: %w", filepath, err)
	}
	return m, nil
}

func parseTriple(fields []string) (vec3.Vec3, error) {
	var v vec3.Vec3
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return vec3.Vec3{}, fmt.Errorf("bad coordinate %q", f)
		}
		v[i] = x
	}
	return v, nil
}
