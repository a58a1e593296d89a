// Package export bakes a session's annotations into a new PDF. Every source
// page is imported as a template at its native size, and each committed
// annotation is drawn over it as page content using the document-space
// geometry derived from its authoring scale.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/phpdave11/gofpdf"
	"github.com/phpdave11/gofpdf/contrib/gofpdi"

	"github.com/kpauljoseph/pdfmarkup/internal/annotation"
	"github.com/kpauljoseph/pdfmarkup/internal/coords"
	"github.com/kpauljoseph/pdfmarkup/pkg/logger"
	"github.com/kpauljoseph/pdfmarkup/pkg/models"
)

// ErrExport wraps every failure mode of the export pipeline. No output is
// ever written on failure.
var ErrExport = errors.New("export failed")

const (
	annotationFontFamily = "annotationfont"
	fallbackFontFamily   = "Helvetica"

	// Display-space stroke width annotations are drawn with; converted
	// per annotation so borders stay visible at any authoring scale.
	strokeWidthDisplay = 2.0
)

// Exporter owns the font resource and produces annotated documents.
type Exporter struct {
	log   *logger.Logger
	fonts *FontSource
}

func New(log *logger.Logger, fonts *FontSource) *Exporter {
	return &Exporter{log: log, fonts: fonts}
}

// Export re-loads the source document, draws every committed annotation onto
// its page, and returns the serialized result. Annotations addressing pages
// the document does not have are skipped, not errors.
func (e *Exporter) Export(srcPath string, annots []annotation.Annotation) (out []byte, err error) {
	// The page importer reports malformed input by panicking.
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("%w: reloading %s: %v", ErrExport, srcPath, r)
		}
	}()

	dims, err := api.PageDimsFile(srcPath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading page sizes of %s: %v", ErrExport, srcPath, err)
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	// The font is only worth fetching when something will be typeset.
	family := fallbackFontFamily
	if hasText(annots) {
		family = e.setupFont(pdf)
	}

	imp := gofpdi.NewImporter()
	for page := 1; page <= len(dims); page++ {
		tplID := imp.ImportPage(pdf, srcPath, page, "/MediaBox")

		pageDims := models.PageDimensions{Width: dims[page-1].Width, Height: dims[page-1].Height}
		if w, h, ok := importedSize(imp, page); ok {
			pageDims = models.PageDimensions{Width: w, Height: h}
		}

		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: pageDims.Width, Ht: pageDims.Height})
		imp.UseImportedTemplate(pdf, tplID, 0, 0, pageDims.Width, pageDims.Height)

		for _, a := range annots {
			if a.Meta().Page != page || a.Meta().Drawing {
				continue
			}
			e.draw(pdf, a, pageDims.Height, family)
		}
	}

	for _, a := range annots {
		if a.Meta().Page > len(dims) {
			e.log.Debug("skipping annotation %s: page %d beyond document", a.Meta().ID, a.Meta().Page)
		}
	}

	if pdf.Err() {
		return nil, fmt.Errorf("%w: %v", ErrExport, pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: serializing: %v", ErrExport, err)
	}
	return buf.Bytes(), nil
}

// ExportToFile writes the annotated document to outPath. The file is only
// touched after the whole export succeeded; partial output is never emitted.
func (e *Exporter) ExportToFile(srcPath, outPath string, annots []annotation.Annotation) error {
	data, err := e.Export(srcPath, annots)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrExport, outPath, err)
	}
	return nil
}

func hasText(annots []annotation.Annotation) bool {
	for _, a := range annots {
		if _, ok := a.(*annotation.Text); ok && !a.Meta().Drawing {
			return true
		}
	}
	return false
}

// setupFont embeds the fetched annotation font, or falls back to the
// built-in font when the fetch failed or the bytes don't parse. A missing
// custom font never aborts an export.
func (e *Exporter) setupFont(pdf *gofpdf.Fpdf) string {
	data, err := e.fonts.Bytes()
	if err != nil {
		return fallbackFontFamily
	}
	if !fontParses(data) {
		e.log.Debug("fetched font does not parse, falling back to built-in font")
		return fallbackFontFamily
	}
	pdf.AddUTF8FontFromBytes(annotationFontFamily, "", data)
	return annotationFontFamily
}

// fontParses probes the font bytes against a throwaway document so a corrupt
// font cannot poison the real one's error state. The parser panics on some
// malformed inputs, which counts as not parsing.
func fontParses(data []byte) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	probe := gofpdf.New("P", "pt", "A4", "")
	probe.AddUTF8FontFromBytes(annotationFontFamily, "", data)
	return !probe.Err()
}

func importedSize(imp *gofpdi.Importer, page int) (w, h float64, ok bool) {
	sizes := imp.GetPageSizes()
	dims, ok := sizes[page]
	if !ok {
		return 0, 0, false
	}
	mb, ok := dims["/MediaBox"]
	if !ok || mb["w"] == 0 || mb["h"] == 0 {
		return 0, 0, false
	}
	return mb["w"], mb["h"], true
}

// draw renders one annotation in gofpdf's user space (top-left origin,
// points). Geometry goes display space -> document space via the authoring
// scale, then the document-space Y flips into gofpdf's.
func (e *Exporter) draw(pdf *gofpdf.Fpdf, a annotation.Annotation, pageHeight float64, family string) {
	meta := a.Meta()
	scale := meta.Scale
	pdf.SetDrawColor(int(meta.Color.R), int(meta.Color.G), int(meta.Color.B))
	pdf.SetLineWidth(coords.StrokeWidthDoc(strokeWidthDisplay, scale))

	switch t := a.(type) {
	case *annotation.Rect:
		d := coords.RectToDoc(models.Rect{X: t.X, Y: t.Y, W: t.W, H: t.H}, scale, pageHeight)
		top := pageHeight - (d.Y + d.H)
		pdf.Rect(d.X, top, d.W, d.H, "D")
	case *annotation.Circle:
		d := coords.RectToDoc(models.Rect{X: t.X, Y: t.Y, W: t.W, H: t.H}, scale, pageHeight)
		top := pageHeight - (d.Y + d.H)
		radius := coords.LengthToDoc(t.Radius, scale)
		pdf.Circle(d.X+d.W/2, top+d.H/2, radius, "D")
	case *annotation.Text:
		baseline, size := coords.BaselineToDoc(t.Y, t.FontSize, scale, pageHeight)
		pdf.SetFont(family, "", size)
		pdf.SetTextColor(int(meta.Color.R), int(meta.Color.G), int(meta.Color.B))
		pdf.Text(coords.LengthToDoc(t.X, scale), pageHeight-baseline, t.Value)
	}
}
