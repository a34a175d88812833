package polytri

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

func LoadPLY(fileName string) (*Mesh, UVLayer, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open PLY file %s: %w", fileName, err)
	}
	defer file.Close()

	m, uvs, err := ReadPLY(file)
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing PLY file %s: %w", fileName, err)
	}
	return m, uvs, nil
}

// ReadPLY reads an ASCII PLY mesh. Vertex normals (nx, ny, nz) and texture
// coordinates (s/t, u/v or texture_u/texture_v) are picked up when declared;
// per-vertex UVs are spread into a per-corner layer. The layer is nil when the
// file has no texture coordinates.
func ReadPLY(reader io.Reader) (*Mesh, UVLayer, error) {
	scanner := bufio.NewScanner(reader)

	var (
		vertexCount, faceCount int
		currentElement         string
		numVertexProps         int
	)
	vertexProps := make(map[string]int)

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "ply" {
		return nil, nil, fmt.Errorf("missing ply magic")
	}

header:
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 2 || parts[1] != "ascii" {
				return nil, nil, fmt.Errorf("unsupported PLY format %q", strings.Join(parts[1:], " "))
			}
		case "element":
			if len(parts) != 3 {
				return nil, nil, fmt.Errorf("malformed element line %q", scanner.Text())
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil {
				return nil, nil, fmt.Errorf("invalid %s count: %w", parts[1], err)
			}
			currentElement = parts[1]
			switch currentElement {
			case "vertex":
				vertexCount = count
			case "face":
				faceCount = count
			}
		case "property":
			if currentElement == "vertex" {
				vertexProps[parts[len(parts)-1]] = numVertexProps
				numVertexProps++
			}
		case "end_header":
			break header
		}
	}

	x, hasX := vertexProps["x"]
	y, hasY := vertexProps["y"]
	z, hasZ := vertexProps["z"]
	if !hasX || !hasY || !hasZ {
		return nil, nil, fmt.Errorf("vertex element lacks x, y or z")
	}
	nx, hasNX := vertexProps["nx"]
	ny, hasNY := vertexProps["ny"]
	nz, hasNZ := vertexProps["nz"]
	hasNormals := hasNX && hasNY && hasNZ
	u, v, hasUV := plyUVProps(vertexProps)

	m := NewMesh()
	m.Positions = make([]mgl64.Vec3, 0, vertexCount)
	var vertexUVs []mgl64.Vec2

	for i := 0; i < vertexCount; i++ {
		if !scanner.Scan() {
			return nil, nil, fmt.Errorf("unexpected end of file while reading vertices")
		}
		values, err := parseFloats(strings.Fields(scanner.Text()))
		if err != nil {
			return nil, nil, fmt.Errorf("invalid vertex data on vertex %d: %w", i, err)
		}
		if len(values) < numVertexProps {
			return nil, nil, fmt.Errorf("vertex %d has %d values, want %d", i, len(values), numVertexProps)
		}

		m.Positions = append(m.Positions, mgl64.Vec3{values[x], values[y], values[z]})
		if hasNormals {
			m.Normals = append(m.Normals, mgl64.Vec3{values[nx], values[ny], values[nz]})
		}
		if hasUV {
			vertexUVs = append(vertexUVs, mgl64.Vec2{values[u], values[v]})
		}
	}

	for i := 0; i < faceCount; i++ {
		if !scanner.Scan() {
			return nil, nil, fmt.Errorf("unexpected end of file while reading faces")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			return nil, nil, fmt.Errorf("empty face line for face %d", i)
		}
		numFaceVerts, err := strconv.Atoi(parts[0])
		if err != nil || numFaceVerts < 0 || len(parts) < numFaceVerts+1 {
			return nil, nil, fmt.Errorf("invalid face data on face %d", i)
		}

		face := make([]int, numFaceVerts)
		for j := range face {
			if face[j], err = strconv.Atoi(parts[j+1]); err != nil {
				return nil, nil, fmt.Errorf("invalid vertex index on face %d: %w", i, err)
			}
		}
		m.Faces = append(m.Faces, face)
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("error reading from PLY source: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, nil, err
	}

	if !hasUV {
		return m, nil, nil
	}
	uvs := make(UVLayer, 0, m.CornerCount())
	for _, face := range m.Faces {
		for _, idx := range face {
			uvs = append(uvs, vertexUVs[idx])
		}
	}
	return m, uvs, nil
}

func plyUVProps(props map[string]int) (int, int, bool) {
	for _, names := range [][2]string{{"s", "t"}, {"u", "v"}, {"texture_u", "texture_v"}} {
		u, hasU := props[names[0]]
		v, hasV := props[names[1]]
		if hasU && hasV {
			return u, v, true
		}
	}
	return 0, 0, false
}

func parseFloats(fields []string) ([]float64, error) {
	values := make([]float64, len(fields))
	for i, f := range fields {
		val, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("could not parse float value '%s': %w", f, err)
		}
		values[i] = val
	}
	return values, nil
}

// WritePLY writes an index-only triangulation as an ASCII PLY mesh.
func WritePLY(w io.Writer, x *Indexed) error {
	writer := bufio.NewWriter(w)

	_, _ = fmt.Fprintln(writer, "ply")
	_, _ = fmt.Fprintln(writer, "format ascii 1.0")
	_, _ = fmt.Fprintln(writer, "comment Generated by polytri")
	_, _ = fmt.Fprintf(writer, "element vertex %d\n", len(x.Vertices))
	_, _ = fmt.Fprintln(writer, "property double x")
	_, _ = fmt.Fprintln(writer, "property double y")
	_, _ = fmt.Fprintln(writer, "property double z")
	_, _ = fmt.Fprintf(writer, "element face %d\n", len(x.Triangles))
	_, _ = fmt.Fprintln(writer, "property list uchar int vertex_indices")
	_, _ = fmt.Fprintln(writer, "end_header")

	for _, p := range x.Vertices {
		_, _ = fmt.Fprintf(writer, "%g %g %g\n", p.X(), p.Y(), p.Z())
	}
	for _, t := range x.Triangles {
		_, _ = fmt.Fprintf(writer, "3 %d %d %d\n", t[0], t[1], t[2])
	}

	return writer.Flush()
}
