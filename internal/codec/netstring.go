package codec

import (
	"strconv"
	"strings"

	errorsmod "cosmossdk.io/errors"
)

// Tokens are built from netstrings: "<len>:<payload>,". Every field carries its
// own length, so fields and whole tokens can be concatenated and still be split
// back apart without guessing at delimiters.

// maxFieldLen bounds a single declared length so a corrupt prefix cannot make a
// reader skip past the end of the input by overflow.
const maxFieldLen = 1 << 30

// AppendField appends payload framed as a netstring.
func AppendField(dst []byte, payload string) []byte {
	dst = strconv.AppendInt(dst, int64(len(payload)), 10)
	dst = append(dst, ':')
	dst = append(dst, payload...)
	return append(dst, ',')
}

// Field frames a single payload.
func Field(payload string) string {
	return string(AppendField(nil, payload))
}

// Join frames every payload and concatenates the results.
func Join(payloads ...string) string {
	var b []byte
	for _, p := range payloads {
		b = AppendField(b, p)
	}
	return string(b)
}

// Reader walks a sequence of netstrings.
type Reader struct {
	s   string
	off int
}

// NewReader returns a reader positioned at the start of s.
func NewReader(s string) *Reader {
	return &Reader{s: s}
}

// Next returns the payload of the next field.
func (r *Reader) Next() (string, error) {
	colon := strings.IndexByte(r.s[r.off:], ':')
	if colon <= 0 {
		return "", errorsmod.Wrapf(ErrMalformed, "missing length prefix at offset %d", r.off)
	}
	digits := r.s[r.off : r.off+colon]
	if digits[0] < '0' || digits[0] > '9' || (len(digits) > 1 && digits[0] == '0') {
		return "", errorsmod.Wrapf(ErrMalformed, "non-canonical length %q at offset %d", digits, r.off)
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 || n > maxFieldLen {
		return "", errorsmod.Wrapf(ErrMalformed, "invalid length %q at offset %d", digits, r.off)
	}
	start := r.off + colon + 1
	end := start + n
	if end >= len(r.s) {
		return "", errorsmod.Wrapf(ErrMalformed, "field of %d bytes at offset %d runs past end of input", n, r.off)
	}
	if r.s[end] != ',' {
		return "", errorsmod.Wrapf(ErrMalformed, "missing terminator at offset %d", end)
	}
	r.off = end + 1
	return r.s[start:end], nil
}

// Done reports whether every byte of the input has been consumed.
func (r *Reader) Done() bool {
	return r.off == len(r.s)
}

// Split decodes s into the payloads of its fields.
func Split(s string) ([]string, error) {
	r := NewReader(s)
	var out []string
	for !r.Done() {
		p, err := r.Next()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// SplitN decodes s and requires exactly n fields.
func SplitN(s string, n int) ([]string, error) {
	fields, err := Split(s)
	if err != nil {
		return nil, err
	}
	if len(fields) != n {
		return nil, errorsmod.Wrapf(ErrMalformed, "expected %d fields, got %d", n, len(fields))
	}
	return fields, nil
}
