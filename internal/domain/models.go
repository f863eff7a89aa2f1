package domain

// Document is the content handed to the extraction client. Exactly one
// of Text or Raw is populated, depending on the configured extraction
// mode: Text carries plain text pulled from the PDF, Raw carries the
// original PDF bytes for inline submission.
type Document struct {
	Text string
	Raw  []byte
}

// Inline reports whether the document carries raw PDF bytes rather
// than extracted text.
func (d Document) Inline() bool {
	return len(d.Raw) > 0
}
