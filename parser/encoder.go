package parser

// Encode renders the sentence back to wire text. A checksum that arrived
// invalid is forwarded unchanged; otherwise a fresh one is computed.
func (s Sentence) Encode() string {
	if s.checksumPresent && !s.checksumValid {
		return formatSentence(s.body, s.checksum)
	}
	return AppendChecksum(s.body)
}

// Encode renders any decoded message back to wire text.
func Encode(m Message) string {
	return m.Encode()
}
