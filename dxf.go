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

func LoadDXF(fileName string) (*Mesh, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open DXF file %s: %w", fileName, err)
	}
	defer file.Close()

	m, err := ReadDXF(file)
	if err != nil {
		return nil, fmt.Errorf("error parsing DXF file %s: %w", fileName, err)
	}
	return m, nil
}

// ReadDXF reads the 3DFACE entities of a DXF file. Coincident corners are
// shared between faces, and a face whose fourth corner repeats its third
// becomes a triangle.
func ReadDXF(reader io.Reader) (*Mesh, error) {
	m := NewMesh()
	scanner := bufio.NewScanner(reader)

	// next reads one group code and value pair; ok is false at end of input.
	next := func() (int, string, bool, error) {
		if !scanner.Scan() {
			return 0, "", false, scanner.Err()
		}
		code, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			return 0, "", false, fmt.Errorf("invalid group code %q: %w", scanner.Text(), err)
		}
		if !scanner.Scan() {
			return 0, "", false, fmt.Errorf("unexpected end of file after group code %d", code)
		}
		return code, strings.TrimSpace(scanner.Text()), true, nil
	}

	var (
		inFace  bool
		corners [4]mgl64.Vec3
		seen    int
	)
	finishFace := func() error {
		if !inFace {
			return nil
		}
		inFace = false
		if seen != 0xfff {
			return fmt.Errorf("3DFACE %d is missing corner coordinates", len(m.Faces))
		}
		count := 4
		if corners[3] == corners[2] {
			count = 3
		}
		face := make([]int, count)
		for i := range face {
			face[i] = m.AddPoint(corners[i])
		}
		m.Faces = append(m.Faces, face)
		return nil
	}

	for {
		code, value, ok, err := next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		if code == 0 {
			if err := finishFace(); err != nil {
				return nil, err
			}
			if value == "3DFACE" {
				inFace, seen = true, 0
			}
			continue
		}
		if !inFace {
			continue
		}

		// 10..13 are the X of corners 1..4, 20..23 Y and 30..33 Z.
		axis, vertex := code/10-1, code%10
		if code < 10 || code > 33 || vertex > 3 {
			continue
		}
		coord, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("could not parse float value '%s': %w", value, err)
		}
		corners[vertex][axis] = coord
		seen |= 1 << (axis*4 + vertex)
	}

	if err := finishFace(); err != nil {
		return nil, err
	}
	return m, nil
}
