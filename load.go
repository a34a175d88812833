package polytri

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Load reads a mesh snapshot, choosing the reader from the file extension
// (.ply, .obj or .dxf). The UV layer is nil when the file has none.
func Load(fileName string) (*Mesh, UVLayer, error) {
	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ".ply":
		return LoadPLY(fileName)
	case ".obj":
		return LoadOBJ(fileName)
	case ".dxf":
		m, err := LoadDXF(fileName)
		return m, nil, err
	default:
		return nil, nil, fmt.Errorf("unsupported mesh file type %q", ext)
	}
}
