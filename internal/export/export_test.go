package export

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"

	"github.com/kenny1934/tutoring-management-system-sub003/internal/annotations"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/logger"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/types"
)

func writeTestPDF(t *testing.T, numPages int) string {
	t.Helper()
	doc := pdf.NewData(pdf.V1_7)

	pagesRef := doc.Alloc()
	kids := make(pdf.Array, 0, numPages)
	for i := 0; i < numPages; i++ {
		contentRef := doc.Alloc()
		w, err := doc.OpenStream(contentRef, pdf.Dict{})
		if err != nil {
			t.Fatalf("OpenStream: %v", err)
		}
		if _, err := w.Write([]byte("q Q\n")); err != nil {
			t.Fatalf("write content: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("close content: %v", err)
		}

		pageRef := doc.Alloc()
		err = doc.Put(pageRef, pdf.Dict{
			"Type":   pdf.Name("Page"),
			"Parent": pagesRef,
			"MediaBox": pdf.Array{
				pdf.Integer(0), pdf.Integer(0),
				pdf.Integer(612 + i), pdf.Integer(792),
			},
			"Contents":  contentRef,
			"Resources": pdf.Dict{},
		})
		if err != nil {
			t.Fatalf("put page: %v", err)
		}
		kids = append(kids, pageRef)
	}
	err := doc.Put(pagesRef, pdf.Dict{
		"Type":  pdf.Name("Pages"),
		"Count": pdf.Integer(numPages),
		"Kids":  kids,
	})
	if err != nil {
		t.Fatalf("put pages: %v", err)
	}
	doc.GetMeta().Catalog.Pages = pagesRef

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		t.Fatalf("write document: %v", err)
	}
	path := filepath.Join(t.TempDir(), "exercise.pdf")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func inked() types.PageAnnotations {
	return types.PageAnnotations{
		0: {
			{
				Samples: []types.StrokeSample{
					{X: 30, Y: 40, Pressure: 0.5},
					{X: 90, Y: 60, Pressure: 0.5},
					{X: 150, Y: 50, Pressure: 0.5},
				},
				Color: "#ff0000",
				Size:  6,
			},
		},
	}
}

func pageContents(t *testing.T, data []byte) []string {
	t.Helper()
	doc, err := pdf.Read(bytes.NewReader(data), nil)
	if err != nil {
		t.Fatalf("read exported document: %v", err)
	}
	refs, err := pagetree.FindPages(doc)
	if err != nil {
		t.Fatalf("find pages: %v", err)
	}
	out := make([]string, len(refs))
	for i, ref := range refs {
		dict, err := pdf.GetDict(doc, ref)
		if err != nil {
			t.Fatalf("read page dict: %v", err)
		}
		var parts pdf.Array
		switch v := dict["Contents"].(type) {
		case pdf.Array:
			parts = v
		case nil:
		default:
			parts = pdf.Array{v}
		}
		var sb strings.Builder
		for _, part := range parts {
			obj, err := pdf.Resolve(doc, part)
			if err != nil {
				t.Fatalf("resolve content: %v", err)
			}
			stream, ok := obj.(*pdf.Stream)
			if !ok {
				t.Fatalf("content part is not a stream: %T", obj)
			}
			stm, err := pdf.DecodeStream(doc, stream, 0)
			if err != nil {
				t.Fatalf("decode content: %v", err)
			}
			raw, err := io.ReadAll(stm)
			if err != nil {
				t.Fatalf("read content: %v", err)
			}
			sb.Write(raw)
			sb.WriteByte('\n')
		}
		out[i] = sb.String()
	}
	return out
}

func TestExportExercise_InkBecomesVectorContent(t *testing.T) {
	src := writeTestPDF(t, 2)
	e := NewExporter(logger.NewNop())

	ex := Exercise{SourcePath: src, DisplayName: "Algebra Worksheet", Annotations: inked()}
	filename, data, err := e.ExportExercise(ex, nil)
	if err != nil {
		t.Fatalf("ExportExercise: %v", err)
	}
	if filename != "annotated-Algebra-Worksheet.pdf" {
		t.Fatalf("filename = %q", filename)
	}

	contents := pageContents(t, data)
	if len(contents) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(contents))
	}
	// The annotated page carries filled bezier paths in the ink color.
	for _, want := range []string{"1.000 0.000 0.000 rg", " c\n", "f\n"} {
		if !strings.Contains(contents[0], want) {
			t.Fatalf("page 1 missing %q:\n%s", want, contents[0])
		}
	}
	// The clean page does not.
	if strings.Contains(contents[1], "rg") {
		t.Fatalf("page 2 unexpectedly carries ink:\n%s", contents[1])
	}
}

func pageWidths(t *testing.T, data []byte) []float64 {
	t.Helper()
	doc, err := pdf.Read(bytes.NewReader(data), nil)
	if err != nil {
		t.Fatalf("read exported document: %v", err)
	}
	refs, err := pagetree.FindPages(doc)
	if err != nil {
		t.Fatalf("find pages: %v", err)
	}
	out := make([]float64, len(refs))
	for i, ref := range refs {
		dict, err := pdf.GetDict(doc, ref)
		if err != nil {
			t.Fatalf("read page dict: %v", err)
		}
		box, err := pdf.GetRectangle(doc, dict["MediaBox"])
		if err != nil {
			t.Fatalf("read media box: %v", err)
		}
		out[i] = box.URx - box.LLx
	}
	return out
}

// A tutor opens only page 2 of a three-page worksheet, draws a stroke,
// undoes it, redoes it, and saves. The export must contain exactly that
// source page with the redone ink on it.
func TestExportExercise_PageSubsetRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := writeTestPDF(t, 3)
	e := NewExporter(logger.NewNop())

	store, err := annotations.NewStore(ctx, logger.NewNop(), annotations.NewMemoryPersistence(), "sess-1")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	stroke := inked()[0]
	if err := store.SetPageStrokes(ctx, src, 0, stroke); err != nil {
		t.Fatalf("SetPageStrokes: %v", err)
	}
	if _, err := store.UndoLastStroke(ctx, src, 0); err != nil {
		t.Fatalf("UndoLastStroke: %v", err)
	}
	if _, redone, err := store.RedoLastStroke(ctx, src, 0); err != nil || !redone {
		t.Fatalf("RedoLastStroke: redone=%v err=%v", redone, err)
	}

	ex := Exercise{
		SourcePath:  src,
		DisplayName: "Geometry",
		PageNumbers: []int{2},
		Annotations: store.GetAnnotations(src),
	}
	_, data, err := e.ExportExercise(ex, nil)
	if err != nil {
		t.Fatalf("ExportExercise: %v", err)
	}

	widths := pageWidths(t, data)
	if len(widths) != 1 {
		t.Fatalf("expected exactly 1 page in the export, got %d", len(widths))
	}
	// Source pages are 612, 613, 614 pts wide; page 2 is 613.
	if widths[0] != 613 {
		t.Fatalf("exported the wrong source page: width %f pts", widths[0])
	}
	content := pageContents(t, data)[0]
	if !strings.Contains(content, "1.000 0.000 0.000 rg") {
		t.Fatalf("redone ink missing from the exported page:\n%s", content)
	}
}

func TestExportExercise_StampUnderTheInk(t *testing.T) {
	src := writeTestPDF(t, 1)
	e := NewExporter(logger.NewNop())

	stamp := &types.StampInfo{
		StudentID:   "CS-7",
		StudentName: "Dana Ip",
		SessionDate: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
	}
	_, data, err := e.ExportExercise(Exercise{SourcePath: src, DisplayName: "hw", Annotations: inked()}, stamp)
	if err != nil {
		t.Fatalf("ExportExercise: %v", err)
	}
	content := pageContents(t, data)[0]
	stampAt := strings.Index(content, "CS-7 Dana Ip")
	inkAt := strings.Index(content, "1.000 0.000 0.000 rg")
	if stampAt < 0 || inkAt < 0 {
		t.Fatalf("missing stamp (%d) or ink (%d):\n%s", stampAt, inkAt, content)
	}
	if stampAt > inkAt {
		t.Fatalf("expected the stamp drawn before the ink overlay")
	}
}

func TestExportExercise_MissingSource(t *testing.T) {
	e := NewExporter(logger.NewNop())
	_, _, err := e.ExportExercise(Exercise{SourcePath: "/nonexistent.pdf", Annotations: inked()}, nil)
	if err == nil {
		t.Fatalf("expected an error for a missing source file")
	}
}

func TestExportAll_SkipsCleanAndBrokenExercises(t *testing.T) {
	src := writeTestPDF(t, 1)
	e := NewExporter(logger.NewNop())

	exercises := []Exercise{
		{SourcePath: src, DisplayName: "With Ink", Annotations: inked()},
		{SourcePath: src, DisplayName: "No Ink", Annotations: types.PageAnnotations{}},
		{SourcePath: "/nonexistent.pdf", DisplayName: "Gone", Annotations: inked()},
	}
	stamp := &types.StampInfo{
		StudentID:   "CS-1024",
		StudentName: "Alice Wong",
		SessionDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		SessionTime: "16:00-17:30",
	}
	filename, data, err := e.ExportAll(exercises, stamp)
	if err != nil {
		t.Fatalf("ExportAll: %v", err)
	}
	if filename != "Annotations_CS-1024_Alice-Wong_2026-03-14_1600-1730.zip" {
		t.Fatalf("archive name = %q", filename)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(zr.File) != 1 {
		t.Fatalf("expected 1 file in archive, got %d", len(zr.File))
	}
	if zr.File[0].Name != "annotated-With-Ink.pdf" {
		t.Fatalf("archive entry = %q", zr.File[0].Name)
	}
}

func TestExportAll_NothingToExport(t *testing.T) {
	e := NewExporter(logger.NewNop())
	if _, _, err := e.ExportAll([]Exercise{{SourcePath: "x", Annotations: types.PageAnnotations{}}}, nil); err == nil {
		t.Fatalf("expected an error when no exercise has ink")
	}
}
