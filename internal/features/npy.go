// Paperwise - Academic Paper Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/paperwise

package features

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// npyMagic prefixes every .npy member.
const npyMagic = "\x93NUMPY"

// npyAlign is the header alignment numpy uses when writing.
const npyAlign = 64

var (
	errNpyFormat = fmt.Errorf("%w: invalid npy member", ErrMalformedMatrix)

	descrPattern   = regexp.MustCompile(`'descr'\s*:\s*'([^']*)'`)
	fortranPattern = regexp.MustCompile(`'fortran_order'\s*:\s*(True|False)`)
	shapePattern   = regexp.MustCompile(`'shape'\s*:\s*\(([^)]*)\)`)
)

// npyArray is one decoded .npy member. data holds the raw element bytes.
type npyArray struct {
	descr string
	shape []int
	data  []byte
}

// count returns the number of elements; a 0-d array holds one.
func (a *npyArray) count() int {
	n := 1
	for _, d := range a.shape {
		n *= d
	}
	return n
}

// readNpy decodes a version 1, 2 or 3 .npy stream of at most limit bytes.
// The header and the data length implied by the shape are checked against
// limit before anything is allocated.
func readNpy(r io.Reader, limit int64) (*npyArray, error) {
	var preamble [8]byte
	if _, err := io.ReadFull(r, preamble[:]); err != nil {
		return nil, fmt.Errorf("%w: reading preamble: %v", errNpyFormat, err)
	}
	if string(preamble[:6]) != npyMagic {
		return nil, fmt.Errorf("%w: bad magic", errNpyFormat)
	}

	var headerLen int
	switch major := preamble[6]; major {
	case 1:
		var buf [2]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, fmt.Errorf("%w: reading header length: %v", errNpyFormat, err)
		}
		headerLen = int(binary.LittleEndian.Uint16(buf[:]))
	case 2, 3:
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, fmt.Errorf("%w: reading header length: %v", errNpyFormat, err)
		}
		headerLen = int(binary.LittleEndian.Uint32(buf[:]))
	default:
		return nil, fmt.Errorf("%w: unsupported version %d", errNpyFormat, major)
	}

	if int64(headerLen) > limit {
		return nil, fmt.Errorf("%w: header length %d exceeds member size %d", errNpyFormat, headerLen, limit)
	}
	header := make([]byte, headerLen)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", errNpyFormat, err)
	}

	arr, err := parseNpyHeader(string(header))
	if err != nil {
		return nil, err
	}

	size, err := elementSize(arr.descr)
	if err != nil {
		return nil, err
	}
	n, err := dataLength(arr.shape, size, limit)
	if err != nil {
		return nil, err
	}
	arr.data = make([]byte, n)
	if _, err := io.ReadFull(r, arr.data); err != nil {
		return nil, fmt.Errorf("%w: reading %d data bytes: %v", errNpyFormat, len(arr.data), err)
	}
	return arr, nil
}

// dataLength returns the byte length of an array with the given shape and
// element width, failing when it overflows or exceeds limit.
func dataLength(shape []int, width int, limit int64) (int, error) {
	for _, d := range shape {
		if d == 0 {
			return 0, nil
		}
	}
	n := int64(width)
	for _, d := range shape {
		if n > limit/int64(d) {
			return 0, fmt.Errorf("%w: shape %v exceeds member size %d", errNpyFormat, shape, limit)
		}
		n *= int64(d)
	}
	if n > limit {
		return 0, fmt.Errorf("%w: shape %v exceeds member size %d", errNpyFormat, shape, limit)
	}
	return int(n), nil
}

func parseNpyHeader(header string) (*npyArray, error) {
	descr := descrPattern.FindStringSubmatch(header)
	if descr == nil {
		return nil, fmt.Errorf("%w: header missing descr", errNpyFormat)
	}
	if fo := fortranPattern.FindStringSubmatch(header); fo != nil && fo[1] == "True" {
		return nil, fmt.Errorf("%w: fortran order not supported", errNpyFormat)
	}
	shape := shapePattern.FindStringSubmatch(header)
	if shape == nil {
		return nil, fmt.Errorf("%w: header missing shape", errNpyFormat)
	}

	arr := &npyArray{descr: descr[1]}
	for _, part := range strings.Split(shape[1], ",") {
		part = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(part), "L"))
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("%w: bad shape %q", errNpyFormat, shape[1])
		}
		arr.shape = append(arr.shape, d)
	}
	return arr, nil
}

// elementSize returns the byte width of a supported dtype descriptor.
func elementSize(descr string) (int, error) {
	if len(descr) < 3 {
		return 0, fmt.Errorf("%w: dtype %q", errNpyFormat, descr)
	}
	if descr[0] == '>' {
		return 0, fmt.Errorf("%w: big-endian dtype %q not supported", errNpyFormat, descr)
	}
	width, err := strconv.Atoi(descr[2:])
	if err != nil || width <= 0 {
		return 0, fmt.Errorf("%w: dtype %q", errNpyFormat, descr)
	}
	switch descr[1] {
	case 'f', 'i', 'u', 'S':
		return width, nil
	case 'U':
		return width * 4, nil
	default:
		return 0, fmt.Errorf("%w: dtype %q not supported", errNpyFormat, descr)
	}
}

// floats decodes the array as float64 values.
func (a *npyArray) floats() ([]float64, error) {
	n := a.count()
	out := make([]float64, n)
	switch a.descr[1:] {
	case "f8":
		for i := range out {
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(a.data[i*8:]))
		}
	case "f4":
		for i := range out {
			out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(a.data[i*4:])))
		}
	default:
		return nil, fmt.Errorf("%w: dtype %q is not a float array", errNpyFormat, a.descr)
	}
	return out, nil
}

// ints decodes the array as int values.
func (a *npyArray) ints() ([]int, error) {
	n := a.count()
	out := make([]int, n)
	switch a.descr[1:] {
	case "i8":
		for i := range out {
			out[i] = int(int64(binary.LittleEndian.Uint64(a.data[i*8:]))) //nolint:gosec // G115: values are CSR offsets
		}
	case "i4":
		for i := range out {
			out[i] = int(int32(binary.LittleEndian.Uint32(a.data[i*4:]))) //nolint:gosec // G115: two's complement decode
		}
	case "u4":
		for i := range out {
			out[i] = int(binary.LittleEndian.Uint32(a.data[i*4:]))
		}
	default:
		return nil, fmt.Errorf("%w: dtype %q is not an integer array", errNpyFormat, a.descr)
	}
	return out, nil
}

// text decodes a 0-d string array such as scipy's format marker.
func (a *npyArray) text() (string, error) {
	switch a.descr[1] {
	case 'S':
		return string(bytes.TrimRight(a.data, "\x00")), nil
	case 'U':
		var sb strings.Builder
		for i := 0; i+4 <= len(a.data); i += 4 {
			r := rune(binary.LittleEndian.Uint32(a.data[i:]))
			if r == 0 {
				break
			}
			if !utf8.ValidRune(r) {
				return "", fmt.Errorf("%w: invalid code point in %q array", errNpyFormat, a.descr)
			}
			sb.WriteRune(r)
		}
		return sb.String(), nil
	default:
		return "", fmt.Errorf("%w: dtype %q is not a string array", errNpyFormat, a.descr)
	}
}

// writeNpy encodes a version 1.0 .npy member.
func writeNpy(w io.Writer, descr string, shape []int, data []byte) error {
	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = strconv.Itoa(d)
	}
	shapeText := strings.Join(dims, ", ")
	if len(shape) == 1 {
		shapeText += ","
	}
	header := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': (%s), }", descr, shapeText)

	// magic(6) + version(2) + length(2) + header + '\n' must be a multiple of npyAlign.
	total := 10 + len(header) + 1
	if pad := total % npyAlign; pad != 0 {
		header += strings.Repeat(" ", npyAlign-pad)
	}
	header += "\n"
	if len(header) > math.MaxUint16 {
		return fmt.Errorf("%w: header too long", errNpyFormat)
	}

	var pre [10]byte
	copy(pre[:], npyMagic)
	pre[6], pre[7] = 1, 0
	binary.LittleEndian.PutUint16(pre[8:], uint16(len(header))) //nolint:gosec // G115: checked above
	if _, err := w.Write(pre[:]); err != nil {
		return err
	}
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

func encodeFloat64s(vs []float64) []byte {
	buf := make([]byte, 8*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}

func encodeInt32s(vs []int32) []byte {
	buf := make([]byte, 4*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v)) //nolint:gosec // G115: two's complement encode
	}
	return buf
}

func encodeInt64s(vs []int) []byte {
	buf := make([]byte, 8*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(v)) //nolint:gosec // G115: two's complement encode
	}
	return buf
}
