package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"strings"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"

	"github.com/kenny1934/tutoring-management-system-sub003/internal/logger"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/pdfops"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/types"
)

// Exercise is one annotated document to export: the source PDF on
// disk, the name shown to the tutor, the 1-indexed source pages the
// exercise consists of (empty = all pages), and the ink drawn on each
// page. Annotation page indexes count within the subset, matching what
// the tutor saw on screen.
type Exercise struct {
	SourcePath  string
	DisplayName string
	PageNumbers []int
	Annotations types.PageAnnotations
}

// Exporter turns exercises plus their ink into downloadable PDFs. The
// ink becomes real vector content in the page streams, not a raster
// overlay.
type Exporter struct {
	log *logger.Logger
}

func NewExporter(log *logger.Logger) *Exporter {
	return &Exporter{log: log.With("service", "Exporter")}
}

// ExportExercise produces an annotated copy of one exercise. The stamp
// is burned first so it sits under the ink, matching what was on
// screen while annotating.
func (e *Exporter) ExportExercise(ex Exercise, stamp *types.StampInfo) (string, []byte, error) {
	data, err := e.annotate(ex, stamp)
	if err != nil {
		return "", nil, err
	}
	return exerciseFilename(ex.DisplayName), data, nil
}

// ExportAll bundles every annotated exercise of a session into a zip
// archive. Exercises without ink, and exercises whose source file is
// gone, are skipped rather than failing the batch.
func (e *Exporter) ExportAll(exercises []Exercise, stamp *types.StampInfo) (string, []byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	count := 0
	for _, ex := range exercises {
		if !ex.Annotations.HasInk() {
			continue
		}
		data, err := e.annotate(ex, stamp)
		if err != nil {
			e.log.Warn("skipping exercise in batch export", "name", ex.DisplayName, "error", err)
			continue
		}
		w, err := zw.Create(exerciseFilename(ex.DisplayName))
		if err != nil {
			zw.Close()
			return "", nil, fmt.Errorf("failed to add %s to archive: %w", ex.DisplayName, err)
		}
		if _, err := w.Write(data); err != nil {
			zw.Close()
			return "", nil, fmt.Errorf("failed to write %s to archive: %w", ex.DisplayName, err)
		}
		count++
	}
	if err := zw.Close(); err != nil {
		return "", nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	if count == 0 {
		return "", nil, fmt.Errorf("no annotated exercises to export")
	}
	return archiveFilename(stamp), buf.Bytes(), nil
}

func (e *Exporter) annotate(ex Exercise, stamp *types.StampInfo) ([]byte, error) {
	src, err := os.ReadFile(ex.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("source document unavailable: %w", err)
	}
	pageNumbers := ex.PageNumbers
	if len(pageNumbers) == 0 {
		n, err := pdfops.NumPages(src)
		if err != nil {
			return nil, fmt.Errorf("failed to open source document: %w", err)
		}
		pageNumbers = make([]int, n)
		for i := range pageNumbers {
			pageNumbers[i] = i + 1
		}
	}
	prepared, err := pdfops.ExtractPages(src, pageNumbers, stamp)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare document: %w", err)
	}

	doc, err := pdf.Read(bytes.NewReader(prepared), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to reopen prepared document: %w", err)
	}
	refs, err := pagetree.FindPages(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to walk page tree: %w", err)
	}
	for i, ref := range refs {
		strokes := ex.Annotations[i]
		if len(strokes) == 0 {
			continue
		}
		pageDict, err := pdf.GetDict(doc, ref)
		if err != nil {
			return nil, fmt.Errorf("failed to load page %d: %w", i+1, err)
		}
		space, err := pdfops.PageSpace(doc, pageDict)
		if err != nil {
			return nil, fmt.Errorf("failed to measure page %d: %w", i+1, err)
		}
		ops := pdfops.StrokeContent(strokes, space)
		if len(ops) == 0 {
			continue
		}
		if err := pdfops.AppendContent(doc, ref, ops); err != nil {
			return nil, fmt.Errorf("failed to draw ink on page %d: %w", i+1, err)
		}
	}

	var out bytes.Buffer
	if err := doc.Write(&out); err != nil {
		return nil, fmt.Errorf("failed to write annotated document: %w", err)
	}
	return out.Bytes(), nil
}

func exerciseFilename(displayName string) string {
	name := safeName(displayName)
	if name == "" {
		name = "exercise"
	}
	name = strings.TrimSuffix(name, ".pdf")
	return "annotated-" + name + ".pdf"
}

// archiveFilename builds Annotations_<id>_<name>_<date>_<time>.zip,
// dropping segments the stamp does not carry.
func archiveFilename(stamp *types.StampInfo) string {
	parts := []string{"Annotations"}
	if stamp != nil {
		if v := safeName(stamp.StudentID); v != "" {
			parts = append(parts, v)
		}
		if v := safeName(stamp.StudentName); v != "" {
			parts = append(parts, v)
		}
		if !stamp.SessionDate.IsZero() {
			parts = append(parts, stamp.SessionDate.Format("2006-01-02"))
		}
		if v := safeName(stamp.SessionTime); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, "_") + ".zip"
}

// safeName makes a string usable as a filename segment: spaces become
// hyphens and path separators are stripped.
func safeName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return -1
		}
		return r
	}, s)
	return s
}
