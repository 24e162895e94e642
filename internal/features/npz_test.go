// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package features

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
)

func TestNPZ_WriteThenLoad(t *testing.T) {
	m := testMatrix(t, [][]float64{
		{0.5, 0, 0, 0.25},
		{0, 0, 0, 0},
		{0, 1.5, 0, 0},
	})

	path := filepath.Join(t.TempDir(), "features.npz")
	if err := SaveNPZ(path, m); err != nil {
		t.Fatalf("SaveNPZ() error = %v", err)
	}
	got, err := LoadNPZ(path)
	if err != nil {
		t.Fatalf("LoadNPZ() error = %v", err)
	}

	if got.Rows() != 3 || got.Cols() != 4 || got.NNZ() != 3 {
		t.Fatalf("shape = (%d,%d) nnz %d, want (3,4) nnz 3", got.Rows(), got.Cols(), got.NNZ())
	}
	for i := 0; i < m.Rows(); i++ {
		want := m.Row(i).Dense()
		have := got.Row(i).Dense()
		for j := range want {
			if want[j] != have[j] {
				t.Errorf("row %d = %v, want %v", i, have, want)
				break
			}
		}
	}
}

func TestNPZ_WriteView(t *testing.T) {
	m := testMatrix(t, [][]float64{{1, 0}, {0, 2}, {3, 0}})
	view, err := m.PaperRange(2, 3)
	if err != nil {
		t.Fatalf("PaperRange() error = %v", err)
	}

	var buf bytes.Buffer
	if err := WriteNPZ(&buf, view); err != nil {
		t.Fatalf("WriteNPZ() error = %v", err)
	}
	got, err := ReadNPZ(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("ReadNPZ() error = %v", err)
	}
	if got.Rows() != 2 || got.Row(0).Values[0] != 2 || got.Row(1).Values[0] != 3 {
		t.Errorf("view round trip lost rows: rows=%d", got.Rows())
	}
}

// scipyArchive builds an archive the way scipy.sparse.save_npz(compressed=False)
// lays it out with numpy's default dtypes for a small matrix: float32 data,
// int32 indices/indptr, int64 shape and a unicode format marker.
func scipyArchive(t *testing.T, method uint16, format string) []byte {
	t.Helper()

	f32 := func(vs ...float32) []byte {
		b := make([]byte, 4*len(vs))
		for i, v := range vs {
			binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
		}
		return b
	}
	unicode := func(s string) []byte {
		b := make([]byte, 4*len(s))
		for i, r := range s {
			binary.LittleEndian.PutUint32(b[i*4:], uint32(r))
		}
		return b
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	members := []struct {
		name, descr string
		shape       []int
		body        []byte
	}{
		{"indices.npy", "<i4", []int{3}, encodeInt32s([]int32{2, 0, 1})},
		{"indptr.npy", "<i4", []int{3}, encodeInt32s([]int32{0, 2, 3})},
		{"format.npy", "<U3", nil, unicode(format)},
		{"shape.npy", "<i8", []int{2}, encodeInt64s([]int{2, 3})},
		{"data.npy", "<f4", []int{3}, f32(0.5, 0.25, 2)},
	}
	for _, mem := range members {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: mem.name, Method: method})
		if err != nil {
			t.Fatalf("CreateHeader() error = %v", err)
		}
		if err := writeNpy(w, mem.descr, mem.shape, mem.body); err != nil {
			t.Fatalf("writeNpy() error = %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return buf.Bytes()
}

func TestReadNPZ_ScipyLayouts(t *testing.T) {
	for _, method := range []uint16{zip.Store, zip.Deflate} {
		raw := scipyArchive(t, method, "csr")
		m, err := ReadNPZ(bytes.NewReader(raw), int64(len(raw)))
		if err != nil {
			t.Fatalf("method %d: ReadNPZ() error = %v", method, err)
		}
		row0 := m.Row(0)
		// Row 0 was written with columns [2, 0] and comes back sorted.
		if row0.Indices[0] != 0 || row0.Values[0] != 0.25 || row0.Indices[1] != 2 || row0.Values[1] != 0.5 {
			t.Errorf("method %d: row 0 = %v/%v", method, row0.Indices, row0.Values)
		}
		if m.Row(1).Values[0] != 2 {
			t.Errorf("method %d: row 1 = %v", method, m.Row(1).Values)
		}
	}
}

func TestReadNPZ_RejectsOtherFormats(t *testing.T) {
	raw := scipyArchive(t, zip.Store, "csc")
	_, err := ReadNPZ(bytes.NewReader(raw), int64(len(raw)))
	if !errors.Is(err, ErrMalformedMatrix) {
		t.Errorf("ReadNPZ() error = %v, want ErrMalformedMatrix", err)
	}
}

func TestReadNPZ_MissingMember(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("data.npy")
	_ = writeNpy(w, "<f8", []int{0}, nil)
	_ = zw.Close()

	_, err := ReadNPZ(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if !errors.Is(err, ErrMalformedMatrix) {
		t.Errorf("ReadNPZ() error = %v, want ErrMalformedMatrix", err)
	}
}

func TestReadNPZ_OversizedShape(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	members := []struct {
		name, descr string
		shape       []int
		body        []byte
	}{
		{"indices.npy", "<i4", []int{1}, encodeInt32s([]int32{0})},
		{"indptr.npy", "<i8", []int{2}, encodeInt64s([]int{0, 1})},
		{"shape.npy", "<i8", []int{2}, encodeInt64s([]int{1, 1})},
		{"data.npy", "<f8", []int{1 << 61}, encodeFloat64s([]float64{1})},
	}
	for _, mem := range members {
		w, err := zw.Create(mem.name)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if err := writeNpy(w, mem.descr, mem.shape, mem.body); err != nil {
			t.Fatalf("writeNpy() error = %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	_, err := ReadNPZ(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if !errors.Is(err, ErrMalformedMatrix) {
		t.Errorf("ReadNPZ() error = %v, want ErrMalformedMatrix", err)
	}
}

func TestReadNpy_HeaderAlignment(t *testing.T) {
	var buf bytes.Buffer
	if err := writeNpy(&buf, "<f8", []int{2}, encodeFloat64s([]float64{1, 2})); err != nil {
		t.Fatalf("writeNpy() error = %v", err)
	}
	if (buf.Len()-16)%npyAlign != 0 {
		t.Errorf("header length %d not aligned to %d", buf.Len()-16, npyAlign)
	}

	arr, err := readNpy(&buf, int64(buf.Len()))
	if err != nil {
		t.Fatalf("readNpy() error = %v", err)
	}
	vs, err := arr.floats()
	if err != nil {
		t.Fatalf("floats() error = %v", err)
	}
	if len(vs) != 2 || vs[0] != 1 || vs[1] != 2 {
		t.Errorf("floats() = %v, want [1 2]", vs)
	}
}

func TestReadNpy_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"bad magic", []byte("NOTNUMPY\x00\x00")},
		{"truncated", []byte(npyMagic)},
		{"big endian", func() []byte {
			var b bytes.Buffer
			_ = writeNpy(&b, ">f8", []int{1}, make([]byte, 8))
			return b.Bytes()
		}()},
		{"shape overflows", func() []byte {
			var b bytes.Buffer
			_ = writeNpy(&b, "<f8", []int{1 << 61}, make([]byte, 8))
			return b.Bytes()
		}()},
		{"shape beyond data", func() []byte {
			var b bytes.Buffer
			_ = writeNpy(&b, "<f8", []int{1 << 20, 1 << 20}, make([]byte, 8))
			return b.Bytes()
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := readNpy(bytes.NewReader(tt.input), int64(len(tt.input))); !errors.Is(err, errNpyFormat) {
				t.Errorf("readNpy() error = %v, want errNpyFormat", err)
			}
		})
	}
}
