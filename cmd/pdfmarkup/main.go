package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/kpauljoseph/pdfmarkup/internal/config"
	"github.com/kpauljoseph/pdfmarkup/internal/export"
	"github.com/kpauljoseph/pdfmarkup/internal/render"
	"github.com/kpauljoseph/pdfmarkup/internal/script"
	"github.com/kpauljoseph/pdfmarkup/internal/session"
	"github.com/kpauljoseph/pdfmarkup/pkg/logger"
	"github.com/kpauljoseph/pdfmarkup/pkg/models"
	"github.com/kpauljoseph/pdfmarkup/pkg/utils"
	"github.com/kpauljoseph/pdfmarkup/pkg/version"
)

func main() {
	inputPath := flag.String("input", "", "PDF file to annotate")
	scriptPath := flag.String("script", "", "YAML gesture script to replay")
	outputPath := flag.String("output", "", "output file (default: <input>_annotated.pdf)")
	configPath := flag.String("config", "", "path to config file (optional)")
	previewDir := flag.String("preview-dir", "", "write PNG previews of annotated pages to this directory")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	debug := flag.Bool("debug", false, "enable debug mode with trace logging")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Print(version.GetDetailedVersionInfo())
		return
	}

	log := logger.New(logger.WithPrefix("[pdfmarkup] "))
	log.SetVerbose(*verbose)
	if *debug {
		log.SetLevel(logger.LevelTrace)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal("Error loading config: %v", err)
		}
	}

	if *inputPath == "" {
		log.Fatal("No input file given (use -input)")
	}

	doc, err := render.Open(*inputPath)
	if err != nil {
		switch {
		case errors.Is(err, render.ErrInvalidInput):
			log.Fatal("Only PDF files are supported: %s", *inputPath)
		case errors.Is(err, render.ErrUnreadable):
			log.Fatal("Could not read %s: %v", *inputPath, err)
		default:
			log.Fatal("Could not load %s: %v", *inputPath, err)
		}
	}
	defer doc.Close()

	log.Info("Loaded %s (%d pages)", *inputPath, doc.PageCount())

	defaultColor, err := models.ParseHexColor(cfg.DefaultColor)
	if err != nil {
		log.Fatal("Invalid default_color in config: %v", err)
	}

	options := []session.Option{
		session.WithColor(defaultColor),
		session.WithFontSize(cfg.DefaultFontSize),
	}

	var view *render.View
	if *previewDir != "" {
		view = render.NewView(doc, log, nil)
		options = append(options, session.WithView(view))
	}

	sess, err := session.New(doc.PageSizes(), log, options...)
	if err != nil {
		log.Fatal("Error creating session: %v", err)
	}
	sess.SetViewport(cfg.Viewport.Width, cfg.Viewport.Height)

	if *scriptPath != "" {
		sc, err := script.Load(*scriptPath)
		if err != nil {
			log.Fatal("Error loading script: %v", err)
		}
		if err := sc.Apply(sess); err != nil {
			log.Fatal("Error replaying script: %v", err)
		}
		log.Info("Replayed %d events, %d annotations", len(sc.Events), len(sess.Annotations()))
	}

	if view != nil {
		view.Wait()
		if err := writePreviews(view, sess, *previewDir); err != nil {
			log.Fatal("Error writing previews: %v", err)
		}
	}

	outPath := *outputPath
	if outPath == "" {
		outPath = utils.AnnotatedOutputPath(*inputPath)
	}

	exporter := export.New(log, export.NewFontSource(cfg.FontURL, log))
	if err := exporter.ExportToFile(doc.Path(), outPath, sess.Annotations()); err != nil {
		log.Fatal("Export failed: %v", err)
	}

	log.Info("Annotated PDF written to %s", outPath)
}

// writePreviews snapshots every page that carries annotations at the
// session's current scale and saves it as a PNG.
func writePreviews(view *render.View, sess *session.Session, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create preview directory: %w", err)
	}

	for page := 1; page <= sess.PageCount(); page++ {
		annots := sess.PageAnnotations(page)
		if len(annots) == 0 {
			continue
		}

		frame, err := view.Snapshot(context.Background(), page, sess.Scale(), annots)
		if err != nil {
			return fmt.Errorf("failed to render preview of page %d: %w", page, err)
		}

		path := filepath.Join(dir, fmt.Sprintf("page_%d.png", page))
		if err := savePNG(frame.Image, path); err != nil {
			return fmt.Errorf("failed to save preview of page %d: %w", page, err)
		}
	}
	return nil
}

func savePNG(img *image.RGBA, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}
