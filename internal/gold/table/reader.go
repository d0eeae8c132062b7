package table

import (
	"encoding/binary"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// tagReader decodes the tagged little-endian field stream described in
// §4.1: every field is preceded by a one-byte tag identifying its Go type,
// except inside a string's UTF-16 code unit run. offset tracks the byte
// position of the next unread byte, for LoadError reporting.
type tagReader struct {
	data   []byte
	offset int
}

func newTagReader(data []byte) *tagReader {
	return &tagReader{data: data}
}

func (r *tagReader) atEOF() bool {
	return r.offset >= len(r.data)
}

func (r *tagReader) need(n int) error {
	if r.offset+n > len(r.data) {
		return newLoadError(Truncated, r.offset, "need %d more byte(s), have %d", n, len(r.data)-r.offset)
	}
	return nil
}

// rawByte reads a single untagged raw byte: a field tag, the 'M' record
// marker, or a one-byte field payload.
func (r *tagReader) rawByte() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	b := r.data[r.offset]
	r.offset++
	return b, nil
}

// tag reads the one-byte field-type tag preceding every field.
func (r *tagReader) tag() (byte, error) {
	return r.rawByte()
}

// Bool reads a 'B' field: a tag byte ('B') followed by one payload byte,
// zero/nonzero.
func (r *tagReader) Bool() (bool, error) {
	t, err := r.tag()
	if err != nil {
		return false, err
	}
	if t != 'B' {
		return false, newLoadError(MalformedRecord, r.offset-1, "expected tag 'B', got %q", t)
	}
	b, err := r.rawByte()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

// UInt16 reads an 'I' field: a tag byte ('I') followed by a little-endian
// uint16 payload.
func (r *tagReader) UInt16() (uint16, error) {
	t, err := r.tag()
	if err != nil {
		return 0, err
	}
	if t != 'I' {
		return 0, newLoadError(MalformedRecord, r.offset-1, "expected tag 'I', got %q", t)
	}
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.data[r.offset:])
	r.offset += 2
	return v, nil
}

// RawByteField reads a 'b' field: a tag byte ('b') followed by one payload byte.
// Used for the record-type discriminator that begins every Multi record.
func (r *tagReader) RawByteField() (byte, error) {
	t, err := r.tag()
	if err != nil {
		return 0, err
	}
	if t != 'b' {
		return 0, newLoadError(MalformedRecord, r.offset-1, "expected tag 'b', got %q", t)
	}
	return r.rawByte()
}

// Empty reads an 'E' field: a tag byte ('E') with no payload. Used for
// unused/reserved fields some record shapes carry.
func (r *tagReader) Empty() error {
	t, err := r.tag()
	if err != nil {
		return err
	}
	if t != 'E' {
		return newLoadError(MalformedRecord, r.offset-1, "expected tag 'E', got %q", t)
	}
	return nil
}

// String reads an 'S' field: a tag byte ('S') followed by a run of
// little-endian UTF-16 code units terminated by a NUL (0x0000) code unit,
// not included in the decoded string.
func (r *tagReader) String() (string, error) {
	t, err := r.tag()
	if err != nil {
		return "", err
	}
	if t != 'S' {
		return "", newLoadError(MalformedRecord, r.offset-1, "expected tag 'S', got %q", t)
	}
	return r.utf16zBytes()
}

// utf16zBytes reads a raw NUL-terminated UTF-16LE run (used both for 'S'
// fields and for the file header string) and decodes it with
// golang.org/x/text/encoding/unicode rather than hand-rolling surrogate
// pair handling.
func (r *tagReader) utf16zBytes() (string, error) {
	start := r.offset
	for {
		if err := r.need(2); err != nil {
			return "", err
		}
		unit := binary.LittleEndian.Uint16(r.data[r.offset:])
		r.offset += 2
		if unit == 0 {
			break
		}
	}
	raw := r.data[start : r.offset-2]
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	out, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return "", newLoadError(MalformedRecord, start, "invalid UTF-16: %v", err)
	}
	return string(out), nil
}
