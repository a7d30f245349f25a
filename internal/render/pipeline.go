package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/converter"
	"seehuhn.de/go/pdf/pagetree"

	"github.com/kenny1934/tutoring-management-system-sub003/internal/coords"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/logger"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/pdfops"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/types"
	"github.com/kenny1934/tutoring-management-system-sub003/internal/utils"
)

var (
	// ErrNoSource means the exercise's source document could not be read.
	ErrNoSource = errors.New("source document unavailable")
	// ErrSuperseded means a newer render for the same exercise started
	// while this one was in flight; its output was discarded.
	ErrSuperseded = errors.New("render superseded by a newer request")
)

const (
	// zoomDebounce is how long zoom input must stay quiet before a
	// hi-res re-render is scheduled.
	zoomDebounce = 300 * time.Millisecond
	// zoomTolerance skips re-rendering for zoom changes under 10%.
	zoomTolerance = 1.10
	// rasterWorkers bounds concurrent page rasterizations per render.
	rasterWorkers = 4
)

// Result is one rendered exercise view: page images plus the
// coordinate space of each page. Indexes are positions within the
// requested page subset, matching how annotations are keyed. Slots for
// pages that failed to rasterize carry Failed=true and a nil handle.
type Result struct {
	Pages  []types.RenderedPage
	Spaces []coords.PageSpace
}

// Pipeline turns exercise PDFs into displayable page images.
type Pipeline interface {
	// Render rasterizes the pages of the document at sourcePath at the
	// base display scale, burning stamp into each page first when
	// present. pageNumbers is an ordered list of 1-indexed source pages;
	// empty means all pages. Each (source, subset) view is cached
	// independently.
	Render(ctx context.Context, sourcePath string, pageNumbers []int, stamp *types.StampInfo, deviceScale float64) (Result, error)
	// RequestZoom schedules a debounced hi-res re-render of an already
	// rendered view. Changes under 10% are ignored.
	RequestZoom(sourcePath string, pageNumbers []int, deviceScale, zoom float64)
	// Image looks up the encoded PNG for a live page handle.
	Image(id uuid.UUID) ([]byte, bool)
	// Invalidate drops every cached view of sourcePath, freeing their
	// page images.
	Invalidate(sourcePath string)
	// Close cancels pending zooms and frees every cached render.
	Close()
}

// viewKey names one cached (source, page subset) combination.
func viewKey(sourcePath string, pageNumbers []int) string {
	if len(pageNumbers) == 0 {
		return sourcePath + "|all"
	}
	parts := make([]string, len(pageNumbers))
	for i, n := range pageNumbers {
		parts[i] = strconv.Itoa(n)
	}
	return sourcePath + "|" + strings.Join(parts, ",")
}

type pipeline struct {
	log      *logger.Logger
	registry *Registry
	cache    *Cache

	mu         sync.Mutex
	gens       map[string]int
	zoomTimers map[string]*time.Timer
	closed     bool
}

func NewPipeline(log *logger.Logger) Pipeline {
	p := &pipeline{
		log:        log.With("service", "RenderPipeline"),
		registry:   NewRegistry(),
		gens:       map[string]int{},
		zoomTimers: map[string]*time.Timer{},
	}
	capacity := utils.GetEnvAsInt("RENDER_CACHE_CAPACITY", DefaultCacheCapacity, p.log)
	p.cache = NewCache(capacity, p.releaseEntry)
	return p
}

func (p *pipeline) releaseEntry(e Entry) {
	for _, page := range e.Pages {
		if page.Handle != uuid.Nil {
			p.registry.Release(page.Handle)
		}
	}
}

func (p *pipeline) Render(ctx context.Context, sourcePath string, pageNumbers []int, stamp *types.StampInfo, deviceScale float64) (Result, error) {
	key := viewKey(sourcePath, pageNumbers)
	if e, ok := p.cache.Get(key); ok {
		return Result{Pages: e.Pages, Spaces: e.Spaces}, nil
	}

	src, err := os.ReadFile(sourcePath)
	if err != nil {
		p.log.Warn("source document missing", "path", sourcePath, "error", err)
		return Result{}, ErrNoSource
	}

	gen := p.bumpGeneration(key)

	prepared, spaces, err := p.prepare(src, pageNumbers, stamp)
	if err != nil {
		return Result{}, err
	}

	pages, err := p.rasterize(ctx, prepared, len(spaces), deviceScale, 1.0)
	if err != nil {
		return Result{}, err
	}

	entry := Entry{
		Pages:  pages,
		Spaces: spaces,
		Scale:  1.0,
		doc:    prepared,
	}
	if !p.publish(key, gen, entry) {
		for _, page := range pages {
			if page.Handle != uuid.Nil {
				p.registry.Release(page.Handle)
			}
		}
		return Result{}, ErrSuperseded
	}
	return Result{Pages: pages, Spaces: spaces}, nil
}

func (p *pipeline) bumpGeneration(key string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gens[key]++
	return p.gens[key]
}

// publish inserts a finished render, but only if no newer run for the
// same view started in the meantime. The generation check and the cache
// insert share one critical section so a stale run can never clobber a
// newer run's entry.
func (p *pipeline) publish(key string, gen int, e Entry) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.gens[key] != gen {
		return false
	}
	p.cache.Put(key, e)
	return true
}

// prepare extracts the requested pages of src, burns the stamp into
// each one, and reports every extracted page's coordinate space. The
// returned bytes are what both the rasterizer and the annotated export
// see, so the stamp appears identically in both.
func (p *pipeline) prepare(src []byte, pageNumbers []int, stamp *types.StampInfo) ([]byte, []coords.PageSpace, error) {
	if len(pageNumbers) == 0 {
		n, err := pdfops.NumPages(src)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open source document: %w", err)
		}
		pageNumbers = make([]int, n)
		for i := range pageNumbers {
			pageNumbers[i] = i + 1
		}
	}
	prepared, err := pdfops.ExtractPages(src, pageNumbers, stamp)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to prepare document: %w", err)
	}

	doc, err := pdf.Read(bytes.NewReader(prepared), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reopen prepared document: %w", err)
	}
	refs, err := pagetree.FindPages(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to walk page tree: %w", err)
	}
	spaces := make([]coords.PageSpace, len(refs))
	for i, ref := range refs {
		pageDict, err := pdf.GetDict(doc, ref)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load page %d: %w", i+1, err)
		}
		spaces[i], err = pdfops.PageSpace(doc, pageDict)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to measure page %d: %w", i+1, err)
		}
	}
	return prepared, spaces, nil
}

// rasterize renders every page of doc in parallel. Pages that fail to
// rasterize are logged and published as Failed slots rather than
// failing the whole document, keeping indexes aligned with the page
// subset. Each worker opens its own reader: a shared one is not safe
// for concurrent stream reads.
func (p *pipeline) rasterize(ctx context.Context, doc []byte, numPages int, deviceScale, zoom float64) ([]types.RenderedPage, error) {
	dpi := coords.DPI(deviceScale) * zoom
	pages := make([]types.RenderedPage, numPages)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(rasterWorkers)
	for i := 0; i < numPages; i++ {
		pageNum := i + 1
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := pdf.Read(bytes.NewReader(doc), nil)
			if err != nil {
				return fmt.Errorf("failed to open document for page %d: %w", pageNum, err)
			}
			img, err := converter.NewConverter(r).RenderPageToImage(pageNum, dpi)
			if err != nil {
				p.log.Warn("page failed to rasterize", "page", pageNum, "error", err)
				pages[pageNum-1] = types.RenderedPage{Failed: true}
				return nil
			}
			var buf bytes.Buffer
			if err := png.Encode(&buf, img); err != nil {
				p.log.Warn("page failed to encode", "page", pageNum, "error", err)
				pages[pageNum-1] = types.RenderedPage{Failed: true}
				return nil
			}
			id := p.registry.Put(buf.Bytes())
			bounds := img.Bounds()
			// Page-local units: pixels divided by the device scale.
			pages[pageNum-1] = types.RenderedPage{
				Handle: id,
				URL:    "/api/images/" + id.String(),
				Width:  float64(bounds.Dx()) / (deviceScale * zoom),
				Height: float64(bounds.Dy()) / (deviceScale * zoom),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, page := range pages {
			if page.Handle != uuid.Nil {
				p.registry.Release(page.Handle)
			}
		}
		return nil, err
	}
	return pages, nil
}

func (p *pipeline) RequestZoom(sourcePath string, pageNumbers []int, deviceScale, zoom float64) {
	key := viewKey(sourcePath, pageNumbers)
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if t, ok := p.zoomTimers[key]; ok {
		t.Stop()
	}
	p.zoomTimers[key] = time.AfterFunc(zoomDebounce, func() {
		p.mu.Lock()
		delete(p.zoomTimers, key)
		closed := p.closed
		p.mu.Unlock()
		if !closed {
			p.rerender(key, deviceScale, zoom)
		}
	})
}

// rerender swaps a view's pages for a hi-res set rendered at the
// requested zoom. The old images are released only after the swap so
// the exercise never displays a gap; if a newer swap won the race the
// fresh images are released instead.
func (p *pipeline) rerender(key string, deviceScale, zoom float64) {
	e, ok := p.cache.Get(key)
	if !ok {
		return
	}
	ratio := zoom / e.Scale
	if ratio < zoomTolerance && ratio > 1/zoomTolerance {
		return
	}

	pages, err := p.rasterize(context.Background(), e.doc, len(e.Spaces), deviceScale, zoom)
	if err != nil {
		p.log.Warn("zoom re-render failed", "view", key, "error", err)
		return
	}

	old, swapped := p.cache.Swap(key, e.rev, pages, zoom)
	if !swapped {
		old = pages
	}
	for _, page := range old {
		if page.Handle != uuid.Nil {
			p.registry.Release(page.Handle)
		}
	}
}

func (p *pipeline) Image(id uuid.UUID) ([]byte, bool) {
	return p.registry.Get(id)
}

func (p *pipeline) Invalidate(sourcePath string) {
	prefix := sourcePath + "|"
	p.mu.Lock()
	for key, t := range p.zoomTimers {
		if strings.HasPrefix(key, prefix) {
			t.Stop()
			delete(p.zoomTimers, key)
		}
	}
	for key := range p.gens {
		if strings.HasPrefix(key, prefix) {
			p.gens[key]++
		}
	}
	p.mu.Unlock()
	p.cache.RemovePrefix(prefix)
}

func (p *pipeline) Close() {
	p.mu.Lock()
	p.closed = true
	for key, t := range p.zoomTimers {
		t.Stop()
		delete(p.zoomTimers, key)
	}
	p.mu.Unlock()
	p.cache.Clear()
}
