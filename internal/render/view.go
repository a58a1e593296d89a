package render

import (
	"context"
	"errors"
	"image"
	"sync"

	"github.com/kpauljoseph/pdfmarkup/internal/annotation"
	"github.com/kpauljoseph/pdfmarkup/pkg/logger"
)

// Frame is a finished render of one page with its annotations painted on top.
type Frame struct {
	Page       int
	Scale      float64
	Image      *image.RGBA
	Generation uint64
}

// View runs the asynchronous render loop. Every request cancels the one in
// flight and bumps a generation counter; a completion only delivers its frame
// if its generation is still current, so a stale render can never paint over
// newer state. Cancellations are expected and never reported; any other
// render error is logged and swallowed so one bad render cannot take the
// loop down.
type View struct {
	r       Renderer
	log     *logger.Logger
	onFrame func(Frame)

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewView creates a view over a renderer. onFrame receives each frame that
// survives the generation check; it may be nil. onFrame runs with the view
// locked and must not call back into it.
func NewView(r Renderer, log *logger.Logger, onFrame func(Frame)) *View {
	return &View{r: r, log: log, onFrame: onFrame}
}

// Request starts rendering a page at a scale with the given annotations
// (already filtered to that page) painted over it, superseding any render
// still in flight.
func (v *View) Request(page int, scale float64, annots []annotation.Annotation) {
	v.mu.Lock()
	if v.cancel != nil {
		v.cancel()
	}
	v.gen++
	gen := v.gen
	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	v.mu.Unlock()

	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		defer cancel()
		v.render(ctx, gen, page, scale, annots)
	}()
}

// Snapshot renders a page synchronously, outside the supersede protocol.
// Used for one-shot output such as preview files.
func (v *View) Snapshot(ctx context.Context, page int, scale float64, annots []annotation.Annotation) (Frame, error) {
	img, err := v.r.RenderPage(ctx, page, scale)
	if err != nil {
		return Frame{}, err
	}
	PaintAnnotations(img, annots, scale)
	return Frame{Page: page, Scale: scale, Image: img}, nil
}

// Wait blocks until any in-flight render goroutine has finished. Tests and
// shutdown paths use it; the interactive path never needs to.
func (v *View) Wait() {
	v.wg.Wait()
}

func (v *View) render(ctx context.Context, gen uint64, page int, scale float64, annots []annotation.Annotation) {
	img, err := v.r.RenderPage(ctx, page, scale)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			v.log.Debug("render of page %d superseded before completion", page)
			return
		}
		v.log.Error("render of page %d failed: %v", page, err)
		return
	}

	// Do not paint annotations onto a buffer that no longer matches the
	// current page/scale.
	if !v.current(gen) {
		v.log.Debug("dropping stale render of page %d (gen %d)", page, gen)
		return
	}

	PaintAnnotations(img, annots, scale)

	// The final check and the delivery must be one atomic step: a frame that
	// passed a separate check could otherwise land after a newer generation's
	// frame. Holding the lock here also blocks Request, so generations are
	// delivered strictly in order.
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.gen != gen {
		v.log.Debug("dropping stale render of page %d (gen %d)", page, gen)
		return
	}

	if v.onFrame != nil {
		v.onFrame(Frame{Page: page, Scale: scale, Image: img, Generation: gen})
	}
}

func (v *View) current(gen uint64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.gen == gen
}
