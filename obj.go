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

func LoadOBJ(fileName string) (*Mesh, UVLayer, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open OBJ file %s: %w", fileName, err)
	}
	defer file.Close()

	m, uvs, err := ReadOBJ(file)
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing OBJ file %s: %w", fileName, err)
	}
	return m, uvs, nil
}

// objReader accumulates the pools of a Wavefront OBJ file. Normals and texture
// coordinates in OBJ belong to face corners, so they end up in
// Mesh.CornerNormals and the UV layer.
type objReader struct {
	mesh      *Mesh
	normals   []mgl64.Vec3
	texCoords []mgl64.Vec2
	uvs       UVLayer

	cornersWithNormal, cornersWithUV, corners int
}

// ReadOBJ reads polygon faces from a Wavefront OBJ stream. Groups, objects and
// materials are ignored. All corners must agree on whether they carry a normal
// and a texture coordinate.
func ReadOBJ(reader io.Reader) (*Mesh, UVLayer, error) {
	r := &objReader{mesh: NewMesh()}
	scanner := bufio.NewScanner(reader)
	line := 0
	for scanner.Scan() {
		line++
		if err := r.readLine(strings.TrimSpace(scanner.Text())); err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("error reading from OBJ source: %w", err)
	}

	switch r.cornersWithNormal {
	case 0:
		r.mesh.CornerNormals = nil
	case r.corners:
	default:
		return nil, nil, fmt.Errorf("%d of %d face corners have normals", r.cornersWithNormal, r.corners)
	}

	switch r.cornersWithUV {
	case 0:
		return r.mesh, nil, nil
	case r.corners:
		return r.mesh, r.uvs, nil
	default:
		return nil, nil, fmt.Errorf("%d of %d face corners have texture coordinates", r.cornersWithUV, r.corners)
	}
}

func (r *objReader) readLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}

	switch fields[0] {
	case "v":
		v, err := readVector(fields[1:], 3)
		if err != nil {
			return err
		}
		r.mesh.Positions = append(r.mesh.Positions, mgl64.Vec3{v[0], v[1], v[2]})
	case "vn":
		v, err := readVector(fields[1:], 3)
		if err != nil {
			return err
		}
		r.normals = append(r.normals, mgl64.Vec3{v[0], v[1], v[2]})
	case "vt":
		v, err := readVector(fields[1:], 2)
		if err != nil {
			return err
		}
		r.texCoords = append(r.texCoords, mgl64.Vec2{v[0], v[1]})
	case "f":
		return r.readFace(fields[1:])
	}
	return nil
}

func readVector(fields []string, size int) ([]float64, error) {
	if len(fields) < size {
		return nil, fmt.Errorf("invalid vector, expected %d coordinates, found %d", size, len(fields))
	}
	return parseFloats(fields[:size])
}

func (r *objReader) readFace(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("invalid number of face vertices: at least 3 expected, found %d", len(fields))
	}

	face := make([]int, len(fields))
	for i, field := range fields {
		refs := strings.Split(field, "/")
		idx, err := objIndex(refs[0], len(r.mesh.Positions))
		if err != nil {
			return err
		}
		face[i] = idx
		r.corners++

		if len(refs) > 1 && refs[1] != "" {
			t, err := objIndex(refs[1], len(r.texCoords))
			if err != nil {
				return err
			}
			r.uvs = append(r.uvs, r.texCoords[t])
			r.cornersWithUV++
		} else {
			r.uvs = append(r.uvs, mgl64.Vec2{})
		}

		if len(refs) > 2 && refs[2] != "" {
			n, err := objIndex(refs[2], len(r.normals))
			if err != nil {
				return err
			}
			r.mesh.CornerNormals = append(r.mesh.CornerNormals, r.normals[n])
			r.cornersWithNormal++
		} else {
			r.mesh.CornerNormals = append(r.mesh.CornerNormals, mgl64.Vec3{})
		}
	}
	r.mesh.Faces = append(r.mesh.Faces, face)
	return nil
}

// objIndex resolves a 1-based or negative, relative OBJ reference into a pool
// of size entries.
func objIndex(ref string, size int) (int, error) {
	i, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", ref, err)
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += size
	default:
		return 0, fmt.Errorf("0 vertex index")
	}
	if i < 0 || i >= size {
		return 0, fmt.Errorf("index %s out of range for %d entries", ref, size)
	}
	return i, nil
}
