// Package render turns composed resume HTML into a print-ready A4 PDF using
// a headless Chromium driven over the DevTools protocol.
package render

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/ysmood/gson"

	apperrors "resumeapi/internal/errors"
	"resumeapi/internal/logger"
)

// Renderer converts an HTML document into PDF bytes.
type Renderer interface {
	Render(ctx context.Context, document string, page PageConfig) ([]byte, error)
}

// Timeouts bound each stage of a render.
type Timeouts struct {
	Content time.Duration
	Image   time.Duration
	Font    time.Duration
}

// DefaultTimeouts returns the stage limits used when none are configured.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Content: 60 * time.Second,
		Image:   10 * time.Second,
		Font:    5 * time.Second,
	}
}

var (
	renderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pdf_render_duration_seconds",
		Help:    "Time spent rendering a resume PDF.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 60, 90},
	}, []string{"result"})
	renderFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pdf_render_failures_total",
		Help: "Failed PDF renders, by stage.",
	}, []string{"stage"})
	imageFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pdf_render_image_failures_total",
		Help: "Images that failed or timed out while rendering.",
	})
)

// chromeFlags keep Chromium usable inside small containers and make text
// rasterization deterministic.
var chromeFlags = []flags.Flag{
	"disable-dev-shm-usage",
	"disable-accelerated-2d-canvas",
	"disable-gpu",
	"no-first-run",
	"no-zygote",
	"disable-font-subpixel-positioning",
}

// RodRenderer launches a fresh browser for every render and tears it down
// before returning.
type RodRenderer struct {
	bin      string
	timeouts Timeouts
}

// NewRodRenderer creates a renderer. An empty bin lets the launcher find or
// download a browser.
func NewRodRenderer(bin string, timeouts Timeouts) *RodRenderer {
	def := DefaultTimeouts()
	if timeouts.Content <= 0 {
		timeouts.Content = def.Content
	}
	if timeouts.Image <= 0 {
		timeouts.Image = def.Image
	}
	if timeouts.Font <= 0 {
		timeouts.Font = def.Font
	}
	return &RodRenderer{bin: bin, timeouts: timeouts}
}

type imageResult struct {
	Src    string `json:"src"`
	Loaded bool   `json:"loaded"`
	Error  string `json:"error"`
}

const waitImagesJS = `(timeoutMs) => Promise.all(Array.from(document.images).map((img) => {
	if (img.complete) {
		return Promise.resolve({ src: img.src, loaded: img.naturalWidth > 0, error: img.naturalWidth > 0 ? "" : "load_error" });
	}
	return new Promise((resolve) => {
		const timer = setTimeout(() => resolve({ src: img.src, loaded: false, error: "timeout" }), timeoutMs);
		img.onload = () => { clearTimeout(timer); resolve({ src: img.src, loaded: true, error: "" }); };
		img.onerror = () => { clearTimeout(timer); resolve({ src: img.src, loaded: false, error: "load_error" }); };
	});
}))`

const waitFontsJS = `() => document.fonts.ready.then(() => true)`

// Render prints document to PDF. The request context is only consulted
// before the browser starts; once launched the render runs to completion
// within its stage timeouts.
func (r *RodRenderer) Render(ctx context.Context, document string, page PageConfig) (pdf []byte, err error) {
	start := time.Now()
	defer func() {
		result := "success"
		if err != nil {
			result = "failure"
		}
		renderDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	}()

	if err := ctx.Err(); err != nil {
		return nil, r.fail("launch", err)
	}

	log := logger.Get()

	l := launcher.New().Headless(true).NoSandbox(true).Set("font-render-hinting", "none")
	for _, f := range chromeFlags {
		l = l.Set(f)
	}
	if r.bin != "" {
		l = l.Bin(r.bin)
	}
	// Cleanup waits for the process to exit, so it must run after Kill.
	defer l.Cleanup()
	defer l.Kill()

	controlURL, err := l.Launch()
	if err != nil {
		return nil, r.fail("launch", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, r.fail("connect", err)
	}
	defer func() {
		if cerr := browser.Close(); cerr != nil {
			log.Debugw("browser close failed", "error", cerr)
		}
	}()

	p, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, r.fail("page", err)
	}

	if err := p.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             page.ViewportWidth(),
		Height:            page.ViewportHeight(),
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, r.fail("viewport", err)
	}

	if err := p.Timeout(r.timeouts.Content).SetDocumentContent(document); err != nil {
		return nil, r.fail("content", err)
	}

	r.waitImages(p)

	if _, err := p.Timeout(r.timeouts.Font).Eval(waitFontsJS); err != nil {
		log.Warnw("fonts not ready before timeout, printing anyway", "error", err)
	}

	stream, err := p.Timeout(r.timeouts.Content).PDF(&proto.PagePrintToPDF{
		PrintBackground:   page.PrintBackground,
		PaperWidth:        gson.Num(page.WidthInches()),
		PaperHeight:       gson.Num(page.HeightInches()),
		MarginTop:         gson.Num(page.MarginInches()),
		MarginBottom:      gson.Num(page.MarginInches()),
		MarginLeft:        gson.Num(page.MarginInches()),
		MarginRight:       gson.Num(page.MarginInches()),
		Scale:             gson.Num(page.Scale),
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, r.fail("print", err)
	}

	pdf, err = io.ReadAll(stream)
	if err != nil {
		return nil, r.fail("print", err)
	}

	log.Infow("pdf rendered", "bytes", len(pdf), "duration", time.Since(start))
	return pdf, nil
}

// waitImages blocks until every image loaded, failed or hit its own
// timeout. Image failures never fail the render.
func (r *RodRenderer) waitImages(p *rod.Page) {
	log := logger.Get()

	res, err := p.Timeout(r.timeouts.Image+5*time.Second).Eval(waitImagesJS, r.timeouts.Image.Milliseconds())
	if err != nil {
		log.Warnw("waiting for images failed, printing anyway", "error", err)
		return
	}

	var results []imageResult
	if err := res.Value.Unmarshal(&results); err != nil {
		log.Warnw("could not decode image load results", "error", err)
		return
	}

	loaded := 0
	for _, img := range results {
		if img.Loaded {
			loaded++
			continue
		}
		imageFailures.Inc()
		log.Warnw("image did not load", "src", img.Src, "reason", img.Error)
	}
	log.Debugw("images settled", "total", len(results), "loaded", loaded)
}

func (r *RodRenderer) fail(stage string, err error) error {
	renderFailures.WithLabelValues(stage).Inc()
	logger.Get().Errorw("pdf render failed", "stage", stage, "error", err)
	return apperrors.Wrap(apperrors.ErrRender, fmt.Errorf("%s: %w", stage, err))
}
