package parser

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyLine        = errors.New("empty line")
	ErrNotPrintable     = errors.New("line must be printable ASCII only")
	ErrMissingMarker    = errors.New("sentence must start with '$'")
	ErrTooFewFields     = errors.New("too few fields")
	ErrInvalidNumber    = errors.New("invalid number")
	ErrInvalidTime      = errors.New("invalid time value")
	ErrInvalidDate      = errors.New("invalid date value")
	ErrInvalidFixType   = errors.New("invalid fix type")
	ErrInvalidSatellite = errors.New("invalid satellite id")
	ErrNoEnumMatch      = errors.New("no enum value matches")
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

const sentenceMarker = '$'

// Sentence is the raw form of one NMEA line: the text between '$' and the
// optional "*HH" suffix, split on commas. Field 0 is the sentence type code.
type Sentence struct {
	typeCode        string
	body            string
	fields          []string
	checksumPresent bool
	checksumValid   bool
	checksum        byte
}

func newSentence(line string) Sentence {
	present, valid, value := VerifyChecksum(line)
	body := line[1:]
	if present {
		body = body[:len(body)-3]
	}
	fields := strings.Split(body, ",")
	return Sentence{
		typeCode:        fields[0],
		body:            body,
		fields:          fields,
		checksumPresent: present,
		checksumValid:   valid,
		checksum:        value,
	}
}

// Type returns the sentence type code, for example "GPGGA".
func (s Sentence) Type() string { return s.typeCode }

// Talker returns the satellite system named by the first two characters of
// the type code.
func (s Sentence) Talker() Talker { return talkerFromCode(s.typeCode) }

// Fields returns a copy of the comma separated fields, type code included.
func (s Sentence) Fields() []string {
	out := make([]string, len(s.fields))
	copy(out, s.fields)
	return out
}

// Body returns the sentence text without the leading '$' and checksum suffix.
func (s Sentence) Body() string { return s.body }

func (s Sentence) ChecksumPresent() bool { return s.checksumPresent }

// ChecksumValid is always false when no checksum was present.
func (s Sentence) ChecksumValid() bool { return s.checksumValid }

// Checksum is zero when no checksum was present.
func (s Sentence) Checksum() byte { return s.checksum }

// field returns field i, or "" when the sentence is shorter.
func (s Sentence) field(i int) string {
	if i < 0 || i >= len(s.fields) {
		return ""
	}
	return s.fields[i]
}

func (s Sentence) requireFields(n int) error {
	if len(s.fields) < n {
		return fmt.Errorf("%s: %w: got %d, want at least %d", s.typeCode, ErrTooFewFields, len(s.fields), n)
	}
	return nil
}

func (s Sentence) fieldError(i int, err error) error {
	return fmt.Errorf("%s field %d: %w", s.typeCode, i, err)
}

// Parse decodes one NMEA line. Unknown but well formed sentences decode to
// *Unknown. Surrounding whitespace is ignored.
func Parse(line string) (Message, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, ErrEmptyLine
	}
	for i := 0; i < len(line); i++ {
		if line[i] < 0x20 || line[i] > 0x7e {
			return nil, ErrNotPrintable
		}
	}
	if line[0] != sentenceMarker {
		return nil, ErrMissingMarker
	}
	return decode(newSentence(line))
}

func decode(s Sentence) (Message, error) {
	switch Classify(s.typeCode) {
	case KindGGA:
		return asMessage(decodeGGA(s))
	case KindGSA:
		return asMessage(decodeGSA(s))
	case KindGSV:
		return asMessage(decodeGSV(s))
	case KindRMC:
		return asMessage(decodeRMC(s))
	case KindGLL:
		return asMessage(decodeGLL(s))
	default:
		return &Unknown{Sentence: s}, nil
	}
}

func asMessage[M Message](m M, err error) (Message, error) {
	if err != nil {
		return nil, err
	}
	return m, nil
}
