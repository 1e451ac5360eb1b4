package parser

// Message is a decoded sentence. Every message carries the raw Sentence it
// was decoded from.
type Message interface {
	Kind() Kind
	Type() string
	Talker() Talker
	Fields() []string
	ChecksumPresent() bool
	ChecksumValid() bool
	Checksum() byte
	// Valid reports whether the decoded data is usable. Void fixes decode
	// fine but are not valid.
	Valid() bool
	String() string
	Encode() string
}
