// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package features

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"
)

// Member names written by scipy.sparse.save_npz.
const (
	memberData    = "data.npy"
	memberIndices = "indices.npy"
	memberIndptr  = "indptr.npy"
	memberShape   = "shape.npy"
	memberFormat  = "format.npy"
)

// LoadNPZ reads a CSR matrix from a scipy .npz artifact on disk.
func LoadNPZ(path string) (*Matrix, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("open feature artifact: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat feature artifact: %w", err)
	}
	m, err := ReadNPZ(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ReadNPZ decodes a CSR matrix from an .npz archive. Both deflated
// (savez_compressed) and stored (savez) members are accepted.
func ReadNPZ(r io.ReaderAt, size int64) (*Matrix, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("read npz archive: %w", err)
	}

	members := make(map[string]*npyArray, 5)
	for _, f := range zr.File {
		switch f.Name {
		case memberData, memberIndices, memberIndptr, memberShape, memberFormat:
		default:
			continue
		}
		arr, err := readMember(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		members[f.Name] = arr
	}
	for _, name := range []string{memberData, memberIndices, memberIndptr, memberShape} {
		if members[name] == nil {
			return nil, fmt.Errorf("%w: archive has no %s", ErrMalformedMatrix, name)
		}
	}

	if fa := members[memberFormat]; fa != nil {
		format, err := fa.text()
		if err != nil {
			return nil, err
		}
		if format != "csr" {
			return nil, fmt.Errorf("%w: sparse format %q, want csr", ErrMalformedMatrix, format)
		}
	}

	shape, err := members[memberShape].ints()
	if err != nil {
		return nil, err
	}
	if len(shape) != 2 {
		return nil, fmt.Errorf("%w: shape has %d dimensions", ErrMalformedMatrix, len(shape))
	}
	data, err := members[memberData].floats()
	if err != nil {
		return nil, err
	}
	rawIndices, err := members[memberIndices].ints()
	if err != nil {
		return nil, err
	}
	indptr, err := members[memberIndptr].ints()
	if err != nil {
		return nil, err
	}

	indices := make([]int32, len(rawIndices))
	for i, idx := range rawIndices {
		if idx < 0 || idx >= shape[1] {
			return nil, fmt.Errorf("%w: column index %d outside [0,%d)", ErrMalformedMatrix, idx, shape[1])
		}
		indices[i] = int32(idx) //nolint:gosec // G115: bounded by shape[1]
	}
	return NewMatrix(shape[0], shape[1], indptr, indices, data)
}

func readMember(f *zip.File) (*npyArray, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	limit := int64(math.MaxInt64)
	if f.UncompressedSize64 < math.MaxInt64 {
		limit = int64(f.UncompressedSize64)
	}
	return readNpy(rc, limit)
}

// WriteNPZ encodes m as a deflated scipy-compatible .npz archive.
func WriteNPZ(w io.Writer, m *Matrix) error {
	indptr, indices, data := m.compact()

	zw := zip.NewWriter(w)
	members := []struct {
		name  string
		descr string
		shape []int
		body  []byte
	}{
		{memberIndices, "<i4", []int{len(indices)}, encodeInt32s(indices)},
		{memberIndptr, "<i8", []int{len(indptr)}, encodeInt64s(indptr)},
		{memberFormat, "|S3", nil, []byte("csr")},
		{memberShape, "<i8", []int{2}, encodeInt64s([]int{m.rows, m.cols})},
		{memberData, "<f8", []int{len(data)}, encodeFloat64s(data)},
	}
	for _, mem := range members {
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: mem.name, Method: zip.Deflate})
		if err != nil {
			return fmt.Errorf("create %s: %w", mem.name, err)
		}
		if err := writeNpy(fw, mem.descr, mem.shape, mem.body); err != nil {
			return fmt.Errorf("write %s: %w", mem.name, err)
		}
	}
	return zw.Close()
}

// SaveNPZ writes m to path atomically via a temporary file in the same directory.
func SaveNPZ(path string, m *Matrix) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".features-*.npz")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()
	if err := WriteNPZ(tmp, m); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp artifact: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace feature artifact: %w", err)
	}
	return nil
}
