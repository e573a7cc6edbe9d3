// Command stats-report computes zonal statistics and renders them as a
// standalone HTML bar-chart report: one series per statistic, one bar
// per layer row.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/overlap-data/zonal.report/internal/coverage"
	"github.com/overlap-data/zonal.report/internal/geomio"
	"github.com/overlap-data/zonal.report/internal/rasterio"
	"github.com/overlap-data/zonal.report/internal/zonal"
)

var (
	valuesPath  = flag.String("values", "", "Value raster (.asc, required)")
	weightsPath = flag.String("weights", "", "Optional weight raster (.asc)")
	geojsonPath = flag.String("geojson", "", "Polygon geometry as GeoJSON file (required)")
	statsList   = flag.String("stats", "mean,min,max,stdev", "Comma-separated statistics")
	samples     = flag.Int("samples", coverage.DefaultSamples, "Coverage sampling density per cell axis")
	outPath     = flag.String("out", "zonal-report.html", "Output HTML path")
)

func main() {
	flag.Parse()
	if *valuesPath == "" || *geojsonPath == "" {
		log.Fatal("both -values and -geojson are required")
	}

	values, err := rasterio.ReadASCFile(*valuesPath, "values")
	if err != nil {
		log.Fatalf("reading value raster: %v", err)
	}
	var weights zonal.RasterSource
	if *weightsPath != "" {
		w, err := rasterio.ReadASCFile(*weightsPath, "weights")
		if err != nil {
			log.Fatalf("reading weight raster: %v", err)
		}
		weights = w
	}
	data, err := os.ReadFile(*geojsonPath)
	if err != nil {
		log.Fatalf("reading geometry: %v", err)
	}
	geom, err := geomio.DecodeGeoJSON(data)
	if err != nil {
		log.Fatalf("parsing geometry: %v", err)
	}

	var names []string
	for _, s := range strings.Split(*statsList, ",") {
		if s = strings.TrimSpace(s); s != "" {
			names = append(names, s)
		}
	}
	req, err := zonal.ParseRequest(names, nil, zonal.DefaultMaxCells)
	if err != nil {
		log.Fatalf("invalid request: %v", err)
	}

	res, err := zonal.Stats(values, weights, geom, coverage.NewSampler(*samples), req)
	if err != nil {
		log.Fatalf("statistics failed: %v", err)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Zonal statistics",
			Subtitle: fmt.Sprintf("%s over %s", *valuesPath, *geojsonPath),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	x := make([]string, len(res.Rows))
	for i := range res.Rows {
		x[i] = "layer " + strconv.Itoa(i)
	}
	bar.SetXAxis(x)
	for col, name := range res.Columns {
		series := make([]opts.BarData, len(res.Rows))
		for i, row := range res.Rows {
			v := row[col]
			if math.IsNaN(v) {
				series[i] = opts.BarData{Value: nil}
			} else {
				series[i] = opts.BarData{Value: v}
			}
		}
		bar.AddSeries(name, series)
	}

	f, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("creating output file: %v", err)
	}
	defer f.Close()
	if err := bar.Render(f); err != nil {
		log.Fatalf("rendering report: %v", err)
	}
	log.Printf("wrote %s", *outPath)
}
