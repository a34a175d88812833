package polytri

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minFacesPerChunk keeps tiny meshes from being split into more chunks than
// there is work.
const minFacesPerChunk = 64

// faceChunks splits n faces into at most workers contiguous [from, to) ranges.
func faceChunks(n, workers int) [][2]int {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	size := (n + workers - 1) / workers
	if size < minFacesPerChunk {
		size = minFacesPerChunk
	}

	var chunks [][2]int
	for from := 0; from < n; from += size {
		chunks = append(chunks, [2]int{from, min(from+size, n)})
	}
	return chunks
}

// TriangulateMeshParallel is TriangulateMesh spread over Options.Workers
// goroutines. Each worker fills its own buffer for a contiguous run of faces;
// buffers are joined in face order, so the result equals the sequential one.
func TriangulateMeshParallel(ctx context.Context, m *Mesh, opts ...Option) (*Indexed, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	chunks := faceChunks(len(m.Faces), o.Workers)
	parts := make([]*Indexed, len(chunks))
	errs := make([]error, len(chunks))
	g, ctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			parts[i], errs[i] = triangulateIndexed(m, chunk[0], chunk[1], o)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := firstChunkError(errs); err != nil {
		return nil, err
	}

	out := &Indexed{Vertices: m.Positions}
	for _, part := range parts {
		out.Triangles = append(out.Triangles, part.Triangles...)
		out.Skipped = append(out.Skipped, part.Skipped...)
	}
	return out, nil
}

// TriangulateMeshWithUVParallel is the concurrent form of
// TriangulateMeshWithUV.
func TriangulateMeshWithUVParallel(ctx context.Context, m *Mesh, uvs UVLayer, opts ...Option) (*Unwelded, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	offsets := m.cornerOffsets()
	chunks := faceChunks(len(m.Faces), o.Workers)
	parts := make([]*Unwelded, len(chunks))
	errs := make([]error, len(chunks))
	g, ctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			parts[i], errs[i] = triangulateUnwelded(m, uvs, offsets, chunk[0], chunk[1], o)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := firstChunkError(errs); err != nil {
		return nil, err
	}

	out := &Unwelded{}
	for _, part := range parts {
		out.merge(part)
	}
	return out, nil
}

// firstChunkError returns the error of the earliest failing chunk. Chunks are
// contiguous and each stops at its first bad face, so this is the error the
// sequential call would have returned.
func firstChunkError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
