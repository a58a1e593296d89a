package export

import (
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/kpauljoseph/pdfmarkup/pkg/logger"
)

// DefaultFontURL is the TrueType font embedded for text annotations. It
// covers a much wider character set than the built-in core fonts.
const DefaultFontURL = "https://github.com/dejavu-fonts/dejavu-fonts/raw/master/ttf/DejaVuSans.ttf"

const fontFetchTimeout = 15 * time.Second

// FontSource lazily fetches the annotation font and caches the bytes for the
// rest of the process. The fetch happens at most once; both success and
// failure are remembered. A failed fetch is not fatal to callers - the
// exporter falls back to a built-in font.
type FontSource struct {
	client *http.Client
	url    string
	log    *logger.Logger

	once sync.Once
	data []byte
	err  error
}

// NewFontSource creates a source for the given font URL. An empty URL means
// no custom font: Bytes always reports failure and the fallback is used.
func NewFontSource(url string, log *logger.Logger) *FontSource {
	return &FontSource{
		client: &http.Client{
			Timeout: fontFetchTimeout,
		},
		url: url,
		log: log,
	}
}

// Bytes returns the cached font bytes, fetching them on first use.
func (f *FontSource) Bytes() ([]byte, error) {
	f.once.Do(func() {
		f.data, f.err = f.fetch()
		if f.err != nil {
			f.log.Debug("font fetch failed, falling back to built-in font: %v", f.err)
		} else {
			f.log.Debug("fetched annotation font (%d bytes)", len(f.data))
		}
	})
	return f.data, f.err
}

func (f *FontSource) fetch() ([]byte, error) {
	if f.url == "" {
		return nil, fmt.Errorf("no font URL configured")
	}

	resp, err := f.client.Get(f.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch font: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("font server returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read font body: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("font server returned empty body")
	}
	return data, nil
}
