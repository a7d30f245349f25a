// Package pdfops manipulates PDF documents at the object level:
// page-subset extraction, stamp burn-in and appending overlay content
// to existing pages.
package pdfops

import (
	"bytes"
	"fmt"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"

	"github.com/kenny1934/tutoring-management-system-sub003/internal/coords"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/types"
)

// inheritable page attributes per the PDF page tree model.
var inheritedKeys = []pdf.Name{"Resources", "MediaBox", "CropBox", "Rotate"}

// ExtractPages builds a new document containing only the given
// 1-indexed pages of src, in the given order, with the stamp (if any)
// burned into each kept page. An empty pageNumbers keeps all pages.
// The source buffer is never modified.
func ExtractPages(src []byte, pageNumbers []int, stamp *types.StampInfo) ([]byte, error) {
	doc, err := pdf.Read(bytes.NewReader(src), nil)
	if err != nil {
		return nil, fmt.Errorf("read source document: %w", err)
	}

	refs, err := pagetree.FindPages(doc)
	if err != nil {
		return nil, fmt.Errorf("walk page tree: %w", err)
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("document has no pages")
	}

	selected := make([]pdf.Reference, 0, len(refs))
	if len(pageNumbers) == 0 {
		selected = append(selected, refs...)
	} else {
		for _, n := range pageNumbers {
			if n < 1 || n > len(refs) {
				return nil, fmt.Errorf("page %d out of range (document has %d pages)", n, len(refs))
			}
			selected = append(selected, refs[n-1])
		}
	}

	keep := make(map[pdf.Reference]bool, len(selected))
	for _, ref := range selected {
		keep[ref] = true
	}

	// Page dicts inherit attributes from the tree being replaced, so
	// resolve them onto each kept page before reparenting.
	pagesRef := doc.Alloc()
	kids := make(pdf.Array, 0, len(selected))
	for _, ref := range selected {
		dict, err := pdf.GetDict(doc, ref)
		if err != nil {
			return nil, fmt.Errorf("read page dict: %w", err)
		}
		for _, key := range inheritedKeys {
			if _, ok := dict[key]; ok {
				continue
			}
			val, err := inheritedAttr(doc, dict, key)
			if err != nil {
				return nil, err
			}
			if val != nil {
				dict[key] = val
			}
		}
		dict["Parent"] = pagesRef
		if err := doc.Put(ref, dict); err != nil {
			return nil, err
		}
		kids = append(kids, ref)
	}

	// Drop the page dicts that were not selected. Shared resources stay
	// behind; only the pages themselves go.
	for _, ref := range refs {
		if !keep[ref] {
			if err := doc.Put(ref, nil); err != nil {
				return nil, err
			}
		}
	}

	err = doc.Put(pagesRef, pdf.Dict{
		"Type":  pdf.Name("Pages"),
		"Count": pdf.Integer(len(kids)),
		"Kids":  kids,
	})
	if err != nil {
		return nil, err
	}
	doc.GetMeta().Catalog.Pages = pagesRef

	if !stamp.IsZero() {
		if err := stampPages(doc, selected, stamp); err != nil {
			return nil, fmt.Errorf("stamp pages: %w", err)
		}
	}

	var out bytes.Buffer
	if err := doc.Write(&out); err != nil {
		return nil, fmt.Errorf("write extracted document: %w", err)
	}
	return out.Bytes(), nil
}

// inheritedAttr walks the original parent chain looking for an
// inheritable attribute.
func inheritedAttr(doc *pdf.Data, dict pdf.Dict, key pdf.Name) (pdf.Object, error) {
	cur := dict
	for depth := 0; depth < 32; depth++ {
		parentRef, ok := cur["Parent"].(pdf.Reference)
		if !ok {
			return nil, nil
		}
		parent, err := pdf.GetDict(doc, parentRef)
		if err != nil {
			return nil, fmt.Errorf("resolve page parent: %w", err)
		}
		if parent == nil {
			return nil, nil
		}
		if val, ok := parent[key]; ok {
			return val, nil
		}
		cur = parent
	}
	return nil, fmt.Errorf("page tree parent chain too deep")
}

// PageSpace reads one page's geometry from its (possibly inherited)
// MediaBox. Pages without a MediaBox fall back to US Letter.
func PageSpace(doc *pdf.Data, pageDict pdf.Dict) (coords.PageSpace, error) {
	box := pageDict["MediaBox"]
	if box == nil {
		val, err := inheritedAttr(doc, pageDict, "MediaBox")
		if err != nil {
			return coords.PageSpace{}, err
		}
		box = val
	}
	if box == nil {
		return coords.PageSpace{WidthPts: 612, HeightPts: 792}, nil
	}
	rect, err := pdf.GetRectangle(doc, box)
	if err != nil {
		return coords.PageSpace{}, fmt.Errorf("read MediaBox: %w", err)
	}
	if rect == nil {
		return coords.PageSpace{WidthPts: 612, HeightPts: 792}, nil
	}
	return coords.PageSpace{
		OriginX:   rect.LLx,
		OriginY:   rect.LLy,
		WidthPts:  rect.URx - rect.LLx,
		HeightPts: rect.URy - rect.LLy,
	}, nil
}

// NumPages returns the page count of a raw document.
func NumPages(src []byte) (int, error) {
	doc, err := pdf.Read(bytes.NewReader(src), nil)
	if err != nil {
		return 0, fmt.Errorf("read document: %w", err)
	}
	refs, err := pagetree.FindPages(doc)
	if err != nil {
		return 0, err
	}
	return len(refs), nil
}
