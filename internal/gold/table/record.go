package table

// Record type discriminators: the first field of every Multi record is a
// raw byte naming what kind of record follows (§4.1).
const (
	recParameter     = 'P' // v1: grammar metadata, fixed fields
	recProperty      = 'p' // v5: grammar metadata, name/value pairs
	recTableCountsV1 = 'T'
	recTableCountsV5 = 't'
	recInitialStates = 'I'
	recCharsetV1     = 'C' // enumerated
	recCharsetV5     = 'c' // codepage + ranges
	recSymbol        = 'S'
	recDFAState      = 'D'
	recLALRState     = 'L'
	recRule          = 'R'
	recGroup         = 'g' // v5 only
	recReserved      = 'n' // unused/reserved, skipped
)

// multiRecord is one "M"-marked record: a declared field count followed by
// that many tagged fields. Callers pull fields off in order with the
// typed helpers below; skipRest() lets a record's trailing reserved
// fields be skipped without the caller needing to know their exact tags.
type multiRecord struct {
	r         *tagReader
	total     int
	consumed  int
	recOffset int
}

// nextRecord reads the 'M' marker and field count starting a record. It
// returns (nil, nil) at clean end of stream.
func nextRecord(r *tagReader) (*multiRecord, error) {
	if r.atEOF() {
		return nil, nil
	}
	recOffset := r.offset
	marker, err := r.rawByte()
	if err != nil {
		return nil, err
	}
	if marker != 'M' {
		return nil, newLoadError(MalformedRecord, recOffset, "expected record marker 'M', got %q", marker)
	}
	count, err := r.UInt16()
	if err != nil {
		return nil, err
	}
	return &multiRecord{r: r, total: int(count), recOffset: recOffset}, nil
}

func (m *multiRecord) kind() (byte, error) {
	b, err := m.r.RawByteField()
	if err != nil {
		return 0, err
	}
	m.consumed++
	return b, nil
}

func (m *multiRecord) bool_() (bool, error) {
	v, err := m.r.Bool()
	if err != nil {
		return false, err
	}
	m.consumed++
	return v, nil
}

func (m *multiRecord) uint16() (uint16, error) {
	v, err := m.r.UInt16()
	if err != nil {
		return 0, err
	}
	m.consumed++
	return v, nil
}

func (m *multiRecord) int_() (int, error) {
	v, err := m.uint16()
	return int(v), err
}

func (m *multiRecord) string_() (string, error) {
	v, err := m.r.String()
	if err != nil {
		return "", err
	}
	m.consumed++
	return v, nil
}

func (m *multiRecord) empty() error {
	if err := m.r.Empty(); err != nil {
		return err
	}
	m.consumed++
	return nil
}

// skipRest consumes and discards any fields the caller didn't need,
// tolerating any tag, so that additive future field-level extensions to a
// known record type don't need a format bump to stay loadable.
func (m *multiRecord) skipRest() error {
	for m.consumed < m.total {
		tag, err := m.r.tag()
		if err != nil {
			return err
		}
		switch tag {
		case 'B':
			if _, err := m.r.rawByte(); err != nil {
				return err
			}
		case 'I':
			if err := m.r.need(2); err != nil {
				return err
			}
			m.r.offset += 2
		case 'b':
			if _, err := m.r.rawByte(); err != nil {
				return err
			}
		case 'E':
			// no payload
		case 'S':
			if _, err := m.r.utf16zBytes(); err != nil {
				return err
			}
		default:
			return newLoadError(MalformedRecord, m.r.offset-1, "unknown field tag %q", tag)
		}
		m.consumed++
	}
	return nil
}

func (m *multiRecord) checkExact() error {
	if m.consumed != m.total {
		return newLoadError(MalformedRecord, m.recOffset, "record declared %d fields, consumed %d", m.total, m.consumed)
	}
	return nil
}
