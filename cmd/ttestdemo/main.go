// Command ttestdemo drives the moment package against a synthetic
// two-class trace batch and renders the resulting t-statistic curve as an
// HTML line chart.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"sidechan/internal/fixture"
	"sidechan/moment"
)

func main() {
	ns := flag.Int("ns", 64, "number of trace samples")
	d := flag.Int("order", 2, "t-test order")
	n := flag.Int("traces", 2000, "number of synthetic traces")
	meanGap := flag.Float64("gap", 1.5, "mean gap injected into class 1")
	seedHex := flag.String("seed", "sidechan-ttestdemo", "seed for the synthetic trace generator (hex, or raw text if not valid hex)")
	outPath := flag.String("out", "ttest.html", "output HTML file")
	flag.Parse()

	seed, err := hex.DecodeString(*seedHex)
	if err != nil {
		seed = []byte(*seedHex)
	}

	traces, labels := fixture.TraceBatch(seed, *n, *ns, *meanGap)

	acc, err := moment.New(*ns, *d)
	if err != nil {
		log.Fatalf("moment.New: %v", err)
	}
	if err := acc.Update(traces, labels); err != nil {
		log.Fatalf("Update: %v", err)
	}

	t := acc.GetTTest()
	fmt.Fprintf(os.Stderr, "[ttestdemo] %d traces, ns=%d, order %d max |t| per row:\n", *n, *ns, *d)
	for order, row := range t {
		max := 0.0
		for _, v := range row {
			if v < 0 {
				v = -v
			}
			if v > max {
				max = v
			}
		}
		fmt.Fprintf(os.Stderr, "  order %d: max |t| = %.3f\n", order+1, max)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "t-test statistic by sample index"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "sample"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "t"}),
	)
	xs := make([]int, *ns)
	for i := range xs {
		xs[i] = i
	}
	line.SetXAxis(xs)
	for order, row := range t {
		items := make([]opts.LineData, len(row))
		for i, v := range row {
			items[i] = opts.LineData{Value: v}
		}
		line.AddSeries(fmt.Sprintf("order %d", order+1), items)
	}

	f, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("create %s: %v", *outPath, err)
	}
	defer f.Close()
	if err := line.Render(f); err != nil {
		log.Fatalf("render: %v", err)
	}
	fmt.Fprintf(os.Stderr, "[ttestdemo] wrote %s\n", *outPath)
}
