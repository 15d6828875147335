package npy

import (
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var magicString = []byte("\x93NUMPY")

var (
	ErrBadMagic           = errors.New("npy: bad magic string")
	ErrUnsupportedVersion = errors.New("npy: unsupported format version")
	ErrFortranOrder       = errors.New("npy: fortran order not supported")
)

// header carries the contents of an array's descr dict.
type header struct {
	descr        DType
	fortranOrder bool
	shape        []int
}

// encode renders the full preamble: magic, version 1.0, little-endian
// header length, and the dict padded with spaces so that the preamble
// length including the trailing newline is a multiple of 16.
func (h *header) encode() []byte {
	dims := make([]string, len(h.shape))
	for i, dim := range h.shape {
		dims[i] = strconv.Itoa(dim)
	}
	shape := strings.Join(dims, ", ")
	if len(h.shape) == 1 {
		shape += ","
	}
	order := "False"
	if h.fortranOrder {
		order = "True"
	}
	dict := fmt.Sprintf("{'descr': '<%s', 'fortran_order': %s, 'shape': (%s), }", h.descr, order, shape)

	prefixLen := len(magicString) + 4 // version bytes plus u16 length
	pad := (16 - (prefixLen+len(dict)+1)%16) % 16
	dict += strings.Repeat(" ", pad) + "\n"

	out := make([]byte, 0, prefixLen+len(dict))
	out = append(out, magicString...)
	out = append(out, 1, 0)
	out = append(out, byte(len(dict)), byte(len(dict)>>8))
	out = append(out, dict...)
	return out
}

// readHeader consumes and parses the preamble. Format versions 1.x and
// 2.x are accepted.
func readHeader(r io.Reader) (*header, error) {
	magic := make([]byte, len(magicString)+2)
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, errors.Wrap(err, "npy: error reading magic string")
	}
	if string(magic[:len(magicString)]) != string(magicString) {
		return nil, ErrBadMagic
	}

	var dictLen int
	switch magic[len(magicString)] {
	case 1:
		var buf [2]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, errors.Wrap(err, "npy: error reading header length")
		}
		dictLen = int(binary.LittleEndian.Uint16(buf[:]))
	case 2:
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, errors.Wrap(err, "npy: error reading header length")
		}
		dictLen = int(binary.LittleEndian.Uint32(buf[:]))
	default:
		return nil, ErrUnsupportedVersion
	}
	if dictLen > maxHeaderBytes {
		return nil, errors.Errorf("npy: header length %d exceeds limit", dictLen)
	}

	dict := make([]byte, dictLen)
	if _, err := io.ReadFull(r, dict); err != nil {
		return nil, errors.Wrap(err, "npy: error reading header")
	}
	return parseHeader(string(dict))
}

const maxHeaderBytes = 64 * 1024

// parseHeader picks apart the one-line python dict literal numpy writes,
// e.g. {'descr': '<f8', 'fortran_order': False, 'shape': (2, 2), }.
func parseHeader(dict string) (*header, error) {
	body := strings.TrimSpace(dict)
	body = strings.Trim(body, "{}")

	fields := make(map[string]string)
	for _, part := range splitTopLevel(body) {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			return nil, errors.Errorf("npy: malformed header entry %q", part)
		}
		key := strings.Trim(strings.TrimSpace(kv[0]), "'\"")
		fields[key] = strings.TrimSpace(kv[1])
	}

	descrStr, ok := fields["descr"]
	if !ok {
		return nil, errors.New("npy: header missing descr")
	}
	descr, err := ParseDescr(strings.Trim(descrStr, "'\""))
	if err != nil {
		return nil, err
	}

	fortran := false
	switch fields["fortran_order"] {
	case "", "False":
	case "True":
		fortran = true
	default:
		return nil, errors.Errorf("npy: invalid fortran_order %q", fields["fortran_order"])
	}

	shapeStr, ok := fields["shape"]
	if !ok {
		return nil, errors.New("npy: header missing shape")
	}
	shape, err := parseShape(shapeStr)
	if err != nil {
		return nil, err
	}

	return &header{
		descr:        descr,
		fortranOrder: fortran,
		shape:        shape,
	}, nil
}

// splitTopLevel splits on commas that are not nested inside parentheses.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, c := range s {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if rest := strings.TrimSpace(s[start:]); rest != "" {
		parts = append(parts, rest)
	}
	return parts
}

func parseShape(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return nil, errors.Errorf("npy: invalid shape %q", s)
	}
	s = strings.Trim(s[1:len(s)-1], ", ")
	if s == "" {
		return nil, nil
	}
	var shape []int
	for _, dim := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(dim))
		if err != nil {
			return nil, errors.Wrapf(err, "npy: invalid shape dimension %q", dim)
		}
		if n < 0 {
			return nil, errors.Errorf("npy: negative shape dimension %d", n)
		}
		shape = append(shape, n)
	}
	return shape, nil
}
