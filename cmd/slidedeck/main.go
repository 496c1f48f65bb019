// Command slidedeck renders the slides of a deck file to PNG images.
//
// Each slide is rendered -frames times through the same renderer, so the
// logged tile statistics show how much of every frame after the first came
// from the cache. With -watch the deck is reloaded and re-rendered whenever
// the file changes; only objects whose fingerprint changed are redrawn.
//
// Usage:
//
//	slidedeck -deck talk.toml -width 1920 -out build/ -select 0:title,logo
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/gogpu/gg"
	"github.com/gogpu/slide"
	"github.com/gogpu/slide/deck"
	"github.com/gogpu/slide/imageobj"
	"github.com/gogpu/slide/model"
	"github.com/gogpu/slide/textobj"
)

func main() {
	var (
		deckPath = flag.String("deck", "", "deck file (.toml, .yaml)")
		width    = flag.Int("width", 1280, "target width in pixels")
		outDir   = flag.String("out", ".", "output directory")
		frames   = flag.Int("frames", 1, "frames to render per slide")
		selectF  = flag.String("select", "", "selection overlay as slide:id,id,...")
		verbose  = flag.Bool("v", false, "log every frame")
		watch    = flag.Bool("watch", false, "re-render when the deck changes")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slide.SetLogger(logger)

	if *deckPath == "" {
		fmt.Fprintln(os.Stderr, "slidedeck: -deck is required")
		flag.Usage()
		os.Exit(2)
	}

	app, err := newApp(*deckPath, *outDir, *width, *frames, *selectF)
	if err != nil {
		logger.Error("setup failed", "err", err)
		os.Exit(1)
	}
	if err := app.renderAll(); err != nil {
		logger.Error("render failed", "err", err)
		os.Exit(1)
	}

	if *watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := app.watch(ctx); err != nil {
			logger.Error("watch failed", "err", err)
			os.Exit(1)
		}
	}
}

// selectionFlag is a parsed -select value.
type selectionFlag struct {
	slide int
	ids   []string
}

func parseSelection(s string) (*selectionFlag, error) {
	if s == "" {
		return nil, nil
	}
	idx, ids, ok := strings.Cut(s, ":")
	if !ok {
		return nil, fmt.Errorf("invalid -select %q: want slide:id,id", s)
	}
	n, err := strconv.Atoi(idx)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("invalid -select slide %q", idx)
	}
	return &selectionFlag{slide: n, ids: strings.Split(ids, ",")}, nil
}

type app struct {
	path   string
	outDir string
	width  int
	frames int
	sel    *selectionFlag

	pres     *model.Presentation
	renderer *slide.Renderer
	overlay  *slide.SelectionRenderer
}

func newApp(path, outDir string, width, frames int, sel string) (*app, error) {
	selection, err := parseSelection(sel)
	if err != nil {
		return nil, err
	}
	pres, err := deck.Load(path)
	if err != nil {
		return nil, err
	}
	fonts, err := textobj.NewFontLibrary()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	images := imageobj.NewLoader(imageobj.FSSource{FS: os.DirFS(filepath.Dir(path))})
	reg := slide.NewRegistry()
	reg.Register(model.KindBox, slide.BoxRenderer{})
	textobj.Register(reg, textobj.New(fonts))
	imageobj.Register(reg, imageobj.New(images))

	return &app{
		path:   path,
		outDir: outDir,
		width:  width,
		frames: max(1, frames),
		sel:    selection,
		pres:   pres,
		renderer: slide.New(
			slide.WithRegistry(reg),
			slide.WithBackgroundPainter(&slide.ThemePainter{Images: images}),
		),
		overlay: slide.NewSelectionRenderer(slide.DefaultSelectionStyle()),
	}, nil
}

// renderAll renders every slide and writes the last frame of each.
// Object failures are logged; the slide image is still written.
func (a *app) renderAll() error {
	res := slide.NewResolution(a.pres.Resolution, a.width)
	height := res.TargetHeight()
	if height <= 0 {
		return fmt.Errorf("target height %d for width %d", height, a.width)
	}

	for i, s := range a.pres.Slides {
		dc := gg.NewContext(a.width, height)
		for frame := range a.frames {
			rerender := false
			err := a.renderer.Render(dc, a.pres, s, func() { rerender = true })
			if err != nil {
				var oe *slide.ObjectError
				if !errors.As(err, &oe) {
					_ = dc.Close()
					return fmt.Errorf("slide %d: %w", i, err)
				}
				slide.Logger().Warn("objects failed", "slide", i, "frame", frame, "rerender", rerender, "err", err)
			}
		}

		if a.sel != nil && a.sel.slide == i {
			a.overlay.Render(dc, res, deck.Select(s, a.sel.ids...), s.Objects, slide.SelectionOptions{})
		}

		out := filepath.Join(a.outDir, fmt.Sprintf("slide-%02d.png", i+1))
		err := dc.SavePNG(out)
		_ = dc.Close()
		if err != nil {
			return err
		}
	}

	st := a.renderer.Tiles().Stats()
	slide.Logger().Info("rendered",
		"slides", len(a.pres.Slides),
		"width", a.width,
		"height", height,
		"hits", st.Hits,
		"misses", st.Misses,
		"hitRate", fmt.Sprintf("%.2f", st.HitRate),
		"draws", st.Draws,
		"failures", st.Failures)
	a.renderer.Tiles().ResetStats()
	return nil
}

// reload re-reads the deck and moves its content into the presentation
// being rendered. Deleted slides are dropped from the renderer.
func (a *app) reload() error {
	next, err := deck.Load(a.path)
	if err != nil {
		return err
	}
	for _, id := range deck.Refresh(a.pres, next) {
		a.renderer.Forget(id)
	}
	return nil
}

// watch re-renders after every change of the deck file until ctx is done.
// The directory is watched since editors often replace files on save.
func (a *app) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(a.path)); err != nil {
		return err
	}
	target := filepath.Clean(a.path)
	slide.Logger().Info("watching", "deck", target)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if err := a.reload(); err != nil {
				slide.Logger().Warn("reload failed", "err", err)
				continue
			}
			if err := a.renderAll(); err != nil {
				slide.Logger().Warn("render failed", "err", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slide.Logger().Warn("watcher error", "err", err)
		}
	}
}
