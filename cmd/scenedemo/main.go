// Command scenedemo renders a demonstration scene to a PNG file.
//
// Fonts are read from -fonts (every .ttf, .otf and .ttc file); the Go fonts
// are used when the directory is empty or unset. With -watch the scene is
// rendered again whenever a font file in that directory changes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/vscene"
	"github.com/gogpu/vscene/backend"
	_ "github.com/gogpu/vscene/backend/software"
	"github.com/gogpu/vscene/canvas"
)

type config struct {
	width, height int
	output        string
	backend       string
	fonts         string
}

func main() {
	var (
		cfg     config
		watch   = flag.Bool("watch", false, "re-render when font files in -fonts change")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.IntVar(&cfg.width, "width", 800, "image width")
	flag.IntVar(&cfg.height, "height", 600, "image height")
	flag.StringVar(&cfg.output, "output", "scene.png", "output file")
	flag.StringVar(&cfg.backend, "backend", backend.Software, "backend name")
	flag.StringVar(&cfg.fonts, "fonts", "", "directory of font files")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	vscene.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := renderOnce(cfg); err != nil {
		log.Fatalf("render: %v", err)
	}
	log.Printf("Scene saved to %s (%dx%d)\n", cfg.output, cfg.width, cfg.height)

	if !*watch {
		return
	}
	if cfg.fonts == "" {
		log.Fatal("-watch needs -fonts")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := watchFonts(ctx, cfg); err != nil {
		log.Fatalf("watch: %v", err)
	}
}

// snapshotter is implemented by backends that keep the frame in memory.
type snapshotter interface {
	Snapshot() *image.RGBA
}

func renderOnce(cfg config) error {
	fonts, err := loadFonts(cfg.fonts)
	if err != nil {
		return err
	}
	b, err := backend.Open(cfg.backend)
	if err != nil {
		return err
	}
	c, err := canvas.New(b, cfg.width, cfg.height,
		canvas.WithFonts(fonts...),
		canvas.WithClearColor(vscene.RGB(24, 26, 38)),
	)
	if err != nil {
		_ = b.Close()
		return err
	}
	defer c.Close()

	if err := c.UpdateObjects(func(s *vscene.Scene) {
		s.Set(demoScene(float64(cfg.width), float64(cfg.height))...)
	}); err != nil {
		return err
	}

	snap, ok := b.(snapshotter)
	if !ok {
		return fmt.Errorf("backend %q cannot be saved to a file", cfg.backend)
	}
	return savePNG(cfg.output, snap.Snapshot())
}

// watchDebounce collapses the burst of events an editor or copy produces.
const watchDebounce = 300 * time.Millisecond

func watchFonts(ctx context.Context, cfg config) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(cfg.fonts); err != nil {
		return err
	}
	log.Printf("Watching %s for font changes", cfg.fonts)

	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isFontFile(ev.Name) || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) {
				continue
			}
			vscene.Logger().Debug("scenedemo: font change", "file", ev.Name, "op", ev.Op.String())
			timer.Reset(watchDebounce)
		case <-timer.C:
			if err := renderOnce(cfg); err != nil {
				log.Printf("render: %v", err)
				continue
			}
			log.Printf("Scene re-rendered to %s", cfg.output)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", err)
		}
	}
}

// loadFonts reads every font file in dir, falling back to the Go fonts.
func loadFonts(dir string) ([][]byte, error) {
	var fonts [][]byte
	if dir != "" {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() || !isFontFile(e.Name()) {
				continue
			}
			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				return nil, err
			}
			fonts = append(fonts, data)
		}
	}
	if len(fonts) == 0 {
		fonts = [][]byte{goregular.TTF, gobold.TTF, goitalic.TTF, gomono.TTF}
	}
	return fonts, nil
}

func isFontFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ttf", ".otf", ".ttc":
		return true
	}
	return false
}

func savePNG(path string, img *image.RGBA) (err error) {
	if img == nil {
		return errors.New("no frame rendered")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}

func demoScene(w, h float64) []vscene.Object {
	objs := []vscene.Object{
		vscene.NewRectangle().Position(40, 40).Size(220, 150).Color(50, 0, 100, 1),
		vscene.NewRectangle().Position(300, 40).Size(220, 150).
			RoundedCorners(24, 24, 8, 8).
			Color(255, 200, 0, 1).
			Border(6, 255, 255, 255, 0.9),
		vscene.NewCircle().Center(w-140, 115).Radius(75).
			Color(80, 180, 255, 0.8).
			Border(4, 255, 255, 255, 1),
	}

	// Wave polyline across the middle.
	var pts []vscene.Point
	for x := 40.0; x <= w-40; x += 8 {
		pts = append(pts, vscene.Pt(x, 260+30*math.Sin(x/40)))
	}
	objs = append(objs, vscene.NewLine().Points(pts...).Width(4).Color(255, 120, 40, 1))

	// Star outline.
	star := make([]vscene.Point, 0, 11)
	for i := range 11 {
		r := 60.0
		if i%2 == 1 {
			r = 26
		}
		a := float64(i)*math.Pi/5 - math.Pi/2
		star = append(star, vscene.Pt(w-140+r*math.Cos(a), 400+r*math.Sin(a)))
	}
	objs = append(objs, vscene.NewLine().Points(star...).Width(3).Color(255, 255, 0, 1))

	objs = append(objs,
		vscene.NewText().Content("vscene").Position(40, 320).Size(w-280, 60).
			FontSize(40).Weight(vscene.WeightBold).Color(255, 255, 255, 1),
		vscene.NewText().
			Content("Rectangles, circles, polylines and wrapped text share one scene. "+
				"Shapes paint in order; text is composited above them.\nA new paragraph starts here.").
			Position(40, 380).Size(w-280, h-420).
			FontSize(18).LineHeight(1.4).Color(220, 220, 230, 1),
		vscene.NewText().Content("monospace 0123456789").Position(40, h-40).Size(w-80, 30).
			Family(vscene.Monospace).FontSize(16).Color(160, 255, 160, 1),
	)
	return objs
}
