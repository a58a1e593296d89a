package export_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pdfmarkup/internal/annotation"
	"github.com/kpauljoseph/pdfmarkup/internal/export"
)

var _ = Describe("FontSource", func() {
	It("fetches the font once and serves it from cache afterwards", func() {
		var hits int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			w.Write([]byte("font-bytes"))
		}))
		defer srv.Close()

		fonts := export.NewFontSource(srv.URL, exportTestLogger())

		first, err := fonts.Bytes()
		Expect(err).NotTo(HaveOccurred())
		Expect(first).To(Equal([]byte("font-bytes")))

		second, err := fonts.Bytes()
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(Equal(first))
		Expect(atomic.LoadInt32(&hits)).To(Equal(int32(1)))
	})

	It("remembers a failed fetch instead of retrying", func() {
		var hits int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		fonts := export.NewFontSource(srv.URL, exportTestLogger())

		_, err := fonts.Bytes()
		Expect(err).To(HaveOccurred())
		_, err = fonts.Bytes()
		Expect(err).To(HaveOccurred())
		Expect(atomic.LoadInt32(&hits)).To(Equal(int32(1)))
	})

	It("reports failure without a configured URL", func() {
		fonts := export.NewFontSource("", exportTestLogger())
		_, err := fonts.Bytes()
		Expect(err).To(HaveOccurred())
	})

	It("lets the exporter fall back when the font does not parse", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("definitely not a ttf"))
		}))
		defer srv.Close()

		log := exportTestLogger()
		exporter := export.New(log, export.NewFontSource(srv.URL, log))

		srcPath := GinkgoT().TempDir() + "/font-fallback.pdf"
		Expect(createSourcePDF(srcPath, 1)).To(Succeed())

		text, err := annotation.NewText(meta(1, 1.0), 1, 72, 72, "fallback", 14)
		Expect(err).NotTo(HaveOccurred())

		out, err := exporter.Export(srcPath, []annotation.Annotation{text})
		Expect(err).NotTo(HaveOccurred())
		Expect(len(out)).To(BeNumerically(">", 0))
	})
})
