// pageinfo prints the document-space geometry annotations are exported in:
// one line per page with its size in points, and optionally the scale
// auto-fit would resolve for a given viewport.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

func main() {
	input := flag.String("input", "", "PDF file to inspect")
	vw := flag.Float64("viewport-width", 0, "viewport width in pixels for the fit column")
	vh := flag.Float64("viewport-height", 0, "viewport height in pixels for the fit column")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: pageinfo -input file.pdf [-viewport-width W -viewport-height H]")
		os.Exit(1)
	}

	dims, err := api.PageDimsFile(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pageinfo: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s: %d page(s)\n", *input, len(dims))
	for i, dim := range dims {
		line := fmt.Sprintf("page %d: %.3f x %.3f pt", i+1, dim.Width, dim.Height)
		if *vw > 0 && *vh > 0 {
			fit := math.Min(*vw/dim.Width, *vh/dim.Height)
			line += fmt.Sprintf("  fit %.3f", fit)
		}
		fmt.Println(line)
	}
}
