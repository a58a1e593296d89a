package coords_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pdfmarkup/internal/coords"
	"github.com/kpauljoseph/pdfmarkup/pkg/models"
)

const tolerance = 1e-9

var _ = Describe("Coordinate transform", func() {
	Context("point round trip", func() {
		DescribeTable("ToDisplay(ToDoc(p)) returns p",
			func(x, y, scale, pageHeight float64) {
				p := models.Point{X: x, Y: y}
				doc := coords.ToDoc(p, scale, pageHeight)
				back := coords.ToDisplay(doc, scale, pageHeight)
				Expect(back.X).To(BeNumerically("~", p.X, tolerance))
				Expect(back.Y).To(BeNumerically("~", p.Y, tolerance))
			},
			Entry("origin at scale 1", 0.0, 0.0, 1.0, 792.0),
			Entry("interior point at scale 1", 150.0, 300.0, 1.0, 792.0),
			Entry("interior point zoomed in", 150.0, 300.0, 1.5, 792.0),
			Entry("interior point zoomed out", 37.5, 512.25, 0.25, 792.0),
			Entry("A4 page height", 210.0, 99.0, 2.0, 841.89),
			Entry("maximum zoom", 512.0, 640.0, 5.0, 792.0),
			Entry("minimum zoom", 12.0, 7.0, 0.1, 792.0),
		)

		It("flips the Y axis", func() {
			// A point at the display top maps to the document top
			// (Y-up), and vice versa.
			top := coords.ToDoc(models.Point{X: 0, Y: 0}, 1.0, 792)
			Expect(top.Y).To(BeNumerically("~", 792, tolerance))

			bottom := coords.ToDoc(models.Point{X: 0, Y: 792}, 1.0, 792)
			Expect(bottom.Y).To(BeNumerically("~", 0, tolerance))
		})
	})

	Context("rectangle inversion", func() {
		It("matches the US Letter example exactly", func() {
			// Display (150, 300, 60x30) at scale 1.5 over a 792pt page.
			d := coords.RectToDoc(models.Rect{X: 150, Y: 300, W: 60, H: 30}, 1.5, 792)
			Expect(d.X).To(BeNumerically("~", 100, tolerance))
			Expect(d.Y).To(BeNumerically("~", 572, tolerance))
			Expect(d.W).To(BeNumerically("~", 40, tolerance))
			Expect(d.H).To(BeNumerically("~", 20, tolerance))
		})

		It("anchors the document rect at the display rect's far edge", func() {
			// The document Y must come from the bottom display edge,
			// not from a sign flip of the top edge.
			d := coords.RectToDoc(models.Rect{X: 0, Y: 100, W: 10, H: 50}, 1.0, 792)
			Expect(d.Y).To(BeNumerically("~", 792-150, tolerance))
			Expect(d.Y + d.H).To(BeNumerically("~", 792-100, tolerance))
		})
	})

	Context("lengths", func() {
		It("scales lengths uniformly", func() {
			Expect(coords.LengthToDoc(30, 1.5)).To(BeNumerically("~", 20, tolerance))
			Expect(coords.LengthToDoc(30, 0.5)).To(BeNumerically("~", 60, tolerance))
		})

		DescribeTable("stroke widths never fall below the floor",
			func(display, scale, want float64) {
				Expect(coords.StrokeWidthDoc(display, scale)).To(BeNumerically("~", want, tolerance))
			},
			Entry("normal width at scale 1", 2.0, 1.0, 2.0),
			Entry("shrinks with zoom", 2.0, 2.0, 1.0),
			Entry("clamped when authored deeply zoomed in", 2.0, 5.0, coords.MinStrokeWidthDoc),
			Entry("grows when authored zoomed out", 2.0, 0.5, 4.0),
		)
	})

	Context("text baselines", func() {
		It("places the baseline one ascent below the box top", func() {
			baseline, size := coords.BaselineToDoc(300, 21, 1.5, 792)
			Expect(size).To(BeNumerically("~", 14, tolerance))
			Expect(baseline).To(BeNumerically("~", 792-200-14*coords.BaselineRatio, tolerance))
		})
	})
})
