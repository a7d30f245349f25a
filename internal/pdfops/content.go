package pdfops

import (
	"bytes"
	"fmt"

	"seehuhn.de/go/pdf"
)

// AppendContent adds overlay content after a page's existing content.
// The original streams are bracketed with a graphics-state save/restore
// so whatever state they leave open cannot displace the overlay.
func AppendContent(doc *pdf.Data, pageRef pdf.Reference, ops []byte) error {
	obj, err := doc.Get(pageRef, true)
	if err != nil {
		return fmt.Errorf("read page object: %w", err)
	}
	dict, ok := obj.(pdf.Dict)
	if !ok {
		return fmt.Errorf("page object is not a dictionary")
	}

	var contents pdf.Array
	switch v := dict["Contents"].(type) {
	case pdf.Array:
		contents = v
	case nil:
	default:
		contents = pdf.Array{v}
	}

	preRef, err := writeStream(doc, []byte("q\n"))
	if err != nil {
		return err
	}
	post := append([]byte("Q\n"), ops...)
	postRef, err := writeStream(doc, post)
	if err != nil {
		return err
	}

	merged := make(pdf.Array, 0, len(contents)+2)
	merged = append(merged, preRef)
	merged = append(merged, contents...)
	merged = append(merged, postRef)
	dict["Contents"] = merged
	return doc.Put(pageRef, dict)
}

func writeStream(doc *pdf.Data, data []byte) (pdf.Reference, error) {
	ref := doc.Alloc()
	w, err := doc.OpenStream(ref, pdf.Dict{})
	if err != nil {
		return ref, fmt.Errorf("open content stream: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return ref, fmt.Errorf("write content stream: %w", err)
	}
	if err := w.Close(); err != nil {
		return ref, fmt.Errorf("close content stream: %w", err)
	}
	return ref, nil
}

// escapeString escapes a text string for a PDF string literal.
func escapeString(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '(', ')', '\\':
			buf.WriteByte('\\')
			buf.WriteRune(r)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		default:
			if r < 0x20 || r > 0x7e {
				// Stamp text is free-form; anything outside the
				// printable ASCII range is dropped rather than
				// mis-encoded in the standard font.
				continue
			}
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
