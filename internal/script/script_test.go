package script_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pdfmarkup/internal/annotation"
	"github.com/kpauljoseph/pdfmarkup/internal/script"
	"github.com/kpauljoseph/pdfmarkup/internal/session"
	"github.com/kpauljoseph/pdfmarkup/pkg/logger"
	"github.com/kpauljoseph/pdfmarkup/pkg/models"
)

func scriptTestSession() *session.Session {
	log := logger.New(
		logger.WithOutput(GinkgoWriter),
		logger.WithPrefix("[script-test] "),
		logger.WithFlags(0),
	)
	letter := models.PageDimensions{Width: 612, Height: 792}
	sess, err := session.New([]models.PageDimensions{letter, letter}, log)
	Expect(err).NotTo(HaveOccurred())
	return sess
}

var _ = Describe("Gesture script", func() {
	It("parses events with points and styling", func() {
		sc, err := script.Parse([]byte(`
events:
  - action: rect
    page: 2
    color: "#1971c2"
    from: {x: 10, y: 20}
    to: {x: 110, y: 80}
  - action: text
    at: {x: 50, y: 60}
    text: approved
    font_size: 16
  - action: zoom-in
`))
		Expect(err).NotTo(HaveOccurred())
		Expect(sc.Events).To(HaveLen(3))
		Expect(sc.Events[0].Page).To(Equal(2))
		Expect(sc.Events[0].From.X).To(Equal(10.0))
		Expect(sc.Events[1].Text).To(Equal("approved"))
	})

	It("replays events through the session state machine", func() {
		sess := scriptTestSession()
		sc, err := script.Parse([]byte(`
events:
  - action: rect
    page: 2
    color: "#1971c2"
    from: {x: 10, y: 20}
    to: {x: 110, y: 80}
  - action: circle
    page: 1
    from: {x: 50, y: 50}
    to: {x: 80, y: 60}
  - action: text
    at: {x: 200, y: 200}
    text: approved
    font_size: 16
`))
		Expect(err).NotTo(HaveOccurred())
		Expect(sc.Apply(sess)).To(Succeed())

		Expect(sess.Annotations()).To(HaveLen(3))

		rects := sess.PageAnnotations(2)
		Expect(rects).To(HaveLen(1))
		r := rects[0].(*annotation.Rect)
		Expect(r.W).To(Equal(100.0))
		Expect(r.Meta().Color).To(Equal(models.RGB{R: 0x19, G: 0x71, B: 0xc2}))

		onPage1 := sess.PageAnnotations(1)
		Expect(onPage1).To(HaveLen(2))
		c := onPage1[0].(*annotation.Circle)
		Expect(c.Radius).To(Equal(15.0))
		t := onPage1[1].(*annotation.Text)
		Expect(t.Value).To(Equal("approved"))
		Expect(t.FontSize).To(Equal(16.0))
	})

	It("replays zoom and page operations", func() {
		sess := scriptTestSession()
		sc, err := script.Parse([]byte(`
events:
  - action: rect
    from: {x: 0, y: 0}
    to: {x: 10, y: 10}
  - action: zoom-in
  - action: goto-page
    page: 2
  - action: clear-page
`))
		Expect(err).NotTo(HaveOccurred())
		Expect(sc.Apply(sess)).To(Succeed())

		Expect(sess.Scale()).To(BeNumerically("~", 1.25, 1e-9))
		Expect(sess.Page()).To(Equal(2))
		// clear-page on page 2 leaves the page 1 rect alone
		Expect(sess.PageAnnotations(1)).To(HaveLen(1))
	})

	DescribeTable("rejects malformed events",
		func(src string) {
			sess := scriptTestSession()
			sc, err := script.Parse([]byte(src))
			Expect(err).NotTo(HaveOccurred())
			Expect(sc.Apply(sess)).NotTo(Succeed())
		},
		Entry("unknown action", "events:\n  - action: scribble\n"),
		Entry("rect without points", "events:\n  - action: rect\n"),
		Entry("text without position", "events:\n  - action: text\n    text: hi\n"),
		Entry("bad color", "events:\n  - action: rect\n    color: red\n    from: {x: 0, y: 0}\n    to: {x: 1, y: 1}\n"),
		Entry("page beyond document", "events:\n  - action: goto-page\n    page: 9\n"),
		Entry("font size outside the set", "events:\n  - action: text\n    at: {x: 0, y: 0}\n    text: hi\n    font_size: 13\n"),
	)
})
