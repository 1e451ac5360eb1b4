package parser

// Unknown is a well formed sentence of a type no decoder handles. It keeps
// the raw text so it can be forwarded.
type Unknown struct {
	Sentence
}

func (m *Unknown) Kind() Kind { return KindUnknown }

func (m *Unknown) Valid() bool { return true }

// String renders the sentence back to wire text.
func (m *Unknown) String() string { return m.Encode() }
