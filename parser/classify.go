package parser

// Kind identifies which decoder handles a sentence type.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindGGA
	KindGSA
	KindGSV
	KindRMC
	KindGLL
)

// kindTable is matched in order. The first two characters of a type code are
// the talker id and match anything.
var kindTable = []struct {
	suffix string
	kind   Kind
}{
	{"GGA", KindGGA},
	{"GSA", KindGSA},
	{"GSV", KindGSV},
	{"RMC", KindRMC},
	{"GLL", KindGLL},
}

// Classify maps a five character sentence type code, for example "GPGGA", to
// its Kind. Codes of any other length are KindUnknown.
func Classify(typeCode string) Kind {
	if len(typeCode) != 5 {
		return KindUnknown
	}
	suffix := typeCode[2:]
	for _, e := range kindTable {
		if suffix == e.suffix {
			return e.kind
		}
	}
	return KindUnknown
}

func (k Kind) String() string {
	for _, e := range kindTable {
		if e.kind == k {
			return e.suffix
		}
	}
	return "Unknown"
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
