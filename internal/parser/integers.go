package parser

import (
	"github.com/cwbudde/symdecode/internal/synerr"
	"github.com/cwbudde/symdecode/internal/token"
)

// parseUnsignedInteger implements the two-form unsigned-integer encoding
// (spec §4.3.8): a single digit encodes its value plus one; otherwise an
// alphanumeric magnitude of 'A'-'P' nibbles, high-nibble first, terminated
// by '@'. 'A@', 'AA@', 'AAA@' all canonicalise to zero.
func (p *parser) parseUnsignedInteger() (int, error) {
	tok := p.cur()
	if tok.Class == token.Digit {
		v, _ := tok.DigitValue()
		if err := p.advanceOrEnd(); err != nil {
			return 0, err
		}
		return v + 1, nil
	}
	value := 0
	sawNibble := false
	for {
		ch := p.cur().Ch
		if ch == '@' {
			if err := p.advanceOrEnd(); err != nil {
				return 0, err
			}
			break
		}
		if ch < 'A' || ch > 'P' {
			return 0, p.errf(synerr.InvalidDataEncoding, "malformed integer magnitude")
		}
		value = value*16 + int(ch-'A')
		sawNibble = true
		if _, err := p.advance(); err != nil {
			return 0, err
		}
	}
	if !sawNibble {
		return 0, p.errf(synerr.InvalidDataEncoding, "empty integer magnitude")
	}
	return value, nil
}

// parseSignedInteger reads an optional '?' negation sign followed by an
// unsigned-integer magnitude.
func (p *parser) parseSignedInteger() (int64, error) {
	neg := false
	if p.cur().Ch == '?' {
		neg = true
		if _, err := p.advance(); err != nil {
			return 0, err
		}
	}
	v, err := p.parseUnsignedInteger()
	if err != nil {
		return 0, err
	}
	if neg {
		return -int64(v), nil
	}
	return int64(v), nil
}
