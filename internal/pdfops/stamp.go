package pdfops

import (
	"bytes"
	"fmt"

	"seehuhn.de/go/pdf"

	"github.com/kenny1934/tutoring-management-system-sub003/internal/types"
)

// Stamp layout constants, shared with the print pathway so screen and
// paper output match.
const (
	stampFontName = pdf.Name("TMSStamp")
	stampFontSize = 9.0
	stampLeading  = 11.0
	stampMargin   = 18.0
)

// stampPages burns the stamp text into each page. One shared Type1
// Helvetica font object backs all stamped pages.
func stampPages(doc *pdf.Data, pageRefs []pdf.Reference, stamp *types.StampInfo) error {
	lines := stamp.Lines()
	if len(lines) == 0 {
		return nil
	}

	fontRef := doc.Alloc()
	err := doc.Put(fontRef, pdf.Dict{
		"Type":     pdf.Name("Font"),
		"Subtype":  pdf.Name("Type1"),
		"BaseFont": pdf.Name("Helvetica"),
	})
	if err != nil {
		return err
	}

	for _, ref := range pageRefs {
		obj, err := doc.Get(ref, true)
		if err != nil {
			return fmt.Errorf("read page: %w", err)
		}
		dict, ok := obj.(pdf.Dict)
		if !ok {
			return fmt.Errorf("page object is not a dictionary")
		}

		if err := addPageFont(doc, dict, fontRef); err != nil {
			return err
		}
		if err := doc.Put(ref, dict); err != nil {
			return err
		}

		space, err := PageSpace(doc, dict)
		if err != nil {
			return err
		}
		ops := stampContent(lines, space.OriginX+stampMargin,
			space.OriginY+space.HeightPts-stampMargin)
		if err := AppendContent(doc, ref, ops); err != nil {
			return err
		}
	}
	return nil
}

// addPageFont registers the stamp font under the page's own Resources.
// Inherited or shared resource dicts are cloned first so other pages
// are unaffected.
func addPageFont(doc *pdf.Data, pageDict pdf.Dict, fontRef pdf.Reference) error {
	resObj := pageDict["Resources"]
	resolved, err := pdf.GetDict(doc, resObj)
	if err != nil {
		return fmt.Errorf("resolve page resources: %w", err)
	}
	res := pdf.Dict{}
	for k, v := range resolved {
		res[k] = v
	}

	fonts, err := pdf.GetDict(doc, res["Font"])
	if err != nil {
		return fmt.Errorf("resolve font resources: %w", err)
	}
	merged := pdf.Dict{}
	for k, v := range fonts {
		merged[k] = v
	}
	merged[stampFontName] = fontRef
	res["Font"] = merged
	pageDict["Resources"] = res
	return nil
}

// stampContent emits the text operators for the stamp block, top line
// at (x, y) in PDF user space.
func stampContent(lines []string, x, y float64) []byte {
	var buf bytes.Buffer
	buf.WriteString("q\nBT\n")
	fmt.Fprintf(&buf, "/%s %g Tf\n", stampFontName, stampFontSize)
	fmt.Fprintf(&buf, "%g TL\n", stampLeading)
	buf.WriteString("0.25 0.25 0.25 rg\n")
	fmt.Fprintf(&buf, "1 0 0 1 %.2f %.2f Tm\n", x, y-stampFontSize)
	for i, line := range lines {
		if i > 0 {
			buf.WriteString("T*\n")
		}
		fmt.Fprintf(&buf, "(%s) Tj\n", escapeString(line))
	}
	buf.WriteString("ET\nQ\n")
	return buf.Bytes()
}
