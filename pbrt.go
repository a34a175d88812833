package polytri

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteTriangleMesh writes unwelded output as a pbrt trianglemesh shape with
// point, normal, uv and index parameters.
func WriteTriangleMesh(w io.Writer, u *Unwelded) error {
	writer := bufio.NewWriter(w)

	_, _ = fmt.Fprintln(writer, `Shape "trianglemesh"`)
	writeParam(writer, `"point P"`, len(u.Positions), func(i int, buf []byte) []byte {
		return appendVec(buf, u.Positions[i][:]...)
	})
	writeParam(writer, `"normal N"`, len(u.Normals), func(i int, buf []byte) []byte {
		return appendVec(buf, u.Normals[i][:]...)
	})
	writeParam(writer, `"float uv"`, len(u.UVs), func(i int, buf []byte) []byte {
		return appendVec(buf, u.UVs[i][:]...)
	})
	writeParam(writer, `"integer indices"`, len(u.Indices), func(i int, buf []byte) []byte {
		return strconv.AppendInt(buf, int64(u.Indices[i]), 10)
	})

	return writer.Flush()
}

// WriteIndexedTriangleMesh writes index-only output as a pbrt trianglemesh
// shape sharing vertices between triangles.
func WriteIndexedTriangleMesh(w io.Writer, x *Indexed) error {
	writer := bufio.NewWriter(w)
	indices := x.Indices()

	_, _ = fmt.Fprintln(writer, `Shape "trianglemesh"`)
	writeParam(writer, `"point P"`, len(x.Vertices), func(i int, buf []byte) []byte {
		return appendVec(buf, x.Vertices[i][:]...)
	})
	writeParam(writer, `"integer indices"`, len(indices), func(i int, buf []byte) []byte {
		return strconv.AppendInt(buf, int64(indices[i]), 10)
	})

	return writer.Flush()
}

// writeParam writes one indented `"type name" [ ... ]` parameter, one element
// per line.
func writeParam(writer *bufio.Writer, name string, n int, element func(i int, buf []byte) []byte) {
	_, _ = fmt.Fprintf(writer, "    %s [\n", name)
	buf := make([]byte, 0, 64)
	for i := 0; i < n; i++ {
		buf = append(buf[:0], "        "...)
		buf = element(i, buf)
		buf = append(buf, '\n')
		_, _ = writer.Write(buf)
	}
	_, _ = fmt.Fprintln(writer, "    ]")
}

func appendVec(buf []byte, values ...float64) []byte {
	for i, v := range values {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
	}
	return buf
}
