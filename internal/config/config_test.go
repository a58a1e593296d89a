package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pdfmarkup/internal/config"
	"github.com/kpauljoseph/pdfmarkup/internal/export"
)

var _ = Describe("Config", func() {
	It("provides sensible defaults", func() {
		cfg := config.Default()
		Expect(cfg.DefaultColor).To(Equal("#e03131"))
		Expect(cfg.DefaultFontSize).To(Equal(14.0))
		Expect(cfg.FontURL).To(Equal(export.DefaultFontURL))
		Expect(cfg.Viewport.Width).To(BeNumerically(">", 0))
		Expect(cfg.Viewport.Height).To(BeNumerically(">", 0))
	})

	It("loads a file and fills the gaps with defaults", func() {
		path := filepath.Join(GinkgoT().TempDir(), "config.yaml")
		err := os.WriteFile(path, []byte(`
default_color: "#1971c2"
viewport:
  width: 800
`), 0644)
		Expect(err).NotTo(HaveOccurred())

		cfg, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.DefaultColor).To(Equal("#1971c2"))
		Expect(cfg.Viewport.Width).To(Equal(800.0))
		Expect(cfg.Viewport.Height).To(Equal(900.0))
		Expect(cfg.DefaultFontSize).To(Equal(14.0))
	})

	It("rejects a font size outside the discrete set", func() {
		path := filepath.Join(GinkgoT().TempDir(), "config.yaml")
		err := os.WriteFile(path, []byte("default_font_size: 13\n"), 0644)
		Expect(err).NotTo(HaveOccurred())

		_, err = config.Load(path)
		Expect(err).To(MatchError(ContainSubstring("default_font_size")))
	})

	It("accepts a font size from the discrete set", func() {
		path := filepath.Join(GinkgoT().TempDir(), "config.yaml")
		err := os.WriteFile(path, []byte("default_font_size: 20\n"), 0644)
		Expect(err).NotTo(HaveOccurred())

		cfg, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.DefaultFontSize).To(Equal(20.0))
	})

	It("fails on a missing file", func() {
		_, err := config.Load(filepath.Join(GinkgoT().TempDir(), "nope.yaml"))
		Expect(err).To(HaveOccurred())
	})
})
