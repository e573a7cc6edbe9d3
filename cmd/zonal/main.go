// Command zonal computes zonal statistics or a per-cell extraction
// table for a polygon over one or two ESRI ASCII grid rasters.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/overlap-data/zonal.report/internal/coverage"
	resultdb "github.com/overlap-data/zonal.report/internal/db"
	"github.com/overlap-data/zonal.report/internal/geomio"
	"github.com/overlap-data/zonal.report/internal/rasterio"
	"github.com/overlap-data/zonal.report/internal/version"
	"github.com/overlap-data/zonal.report/internal/zonal"
)

var (
	valuesPath  = flag.String("values", "", "Value raster (.asc, required)")
	weightsPath = flag.String("weights", "", "Optional weight raster (.asc)")
	geojsonPath = flag.String("geojson", "", "Polygon geometry as GeoJSON file")
	wkbHex      = flag.String("wkb", "", "Polygon geometry as hex-encoded WKB")
	statsList   = flag.String("stats", "count,sum,mean,min,max", "Comma-separated statistics")
	quantiles   = flag.String("quantiles", "", "Comma-separated quantile fractions (for the quantile statistic)")
	maxCells    = flag.Int("max-cells", zonal.DefaultMaxCells, "Maximum cells held in memory per window")
	extract     = flag.Bool("extract", false, "Emit per-cell extraction table instead of statistics")
	includeXY   = flag.Bool("xy", false, "Include cell-centre x/y columns in extraction output")
	includeCell = flag.Bool("cell", false, "Include cell-number column in extraction output")
	samples     = flag.Int("samples", coverage.DefaultSamples, "Coverage sampling density per cell axis")
	warnDisagg  = flag.Bool("warn-disaggregate", false, "Warn when values are disaggregated to the weight resolution")
	outPath     = flag.String("out", "", "Write CSV output to this file instead of stdout")
	dbPath      = flag.String("db", "", "Also record results in this sqlite database")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Println(version.String())
		return
	}
	if *valuesPath == "" {
		log.Fatal("missing required -values raster")
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

	geom, err := loadGeometry()
	if err != nil {
		log.Fatalf("reading geometry: %v", err)
	}

	cov := coverage.NewSampler(*samples)
	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("creating output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	meta := resultdb.RunMeta{
		GeometryWKBHex: *wkbHex,
		ValueRaster:    *valuesPath,
		WeightRaster:   *weightsPath,
		Stats:          strings.Split(*statsList, ","),
		MaxCells:       *maxCells,
	}

	if *extract {
		table, err := zonal.Extract(values, weights, geom, cov, zonal.ExtractOptions{
			IncludeXY:          *includeXY,
			IncludeCell:        *includeCell,
			MaxCells:           *maxCells,
			WarnOnDisaggregate: *warnDisagg,
		})
		if err != nil {
			log.Fatalf("extraction failed: %v", err)
		}
		for _, adv := range table.Advisories {
			fmt.Fprintf(os.Stderr, "warning: %s\n", adv)
		}
		if err := writeCSV(out, table.Columns, table.Rows); err != nil {
			log.Fatalf("writing output: %v", err)
		}
		if *dbPath != "" {
			recordExtract(meta, table)
		}
		return
	}

	req, err := zonal.ParseRequest(splitList(*statsList), parseQuantiles(), *maxCells)
	if err != nil {
		log.Fatalf("invalid request: %v", err)
	}
	req.WarnOnDisaggregate = *warnDisagg

	res, err := zonal.Stats(values, weights, geom, cov, req)
	if err != nil {
		log.Fatalf("statistics failed: %v", err)
	}
	for _, adv := range res.Advisories {
		fmt.Fprintf(os.Stderr, "warning: %s\n", adv)
	}
	if err := writeCSV(out, res.Columns, res.Rows); err != nil {
		log.Fatalf("writing output: %v", err)
	}
	if *dbPath != "" {
		recordStats(meta, res)
	}
}

func loadGeometry() (*geomio.Polygon, error) {
	switch {
	case *geojsonPath != "" && *wkbHex != "":
		return nil, fmt.Errorf("use either -geojson or -wkb, not both")
	case *geojsonPath != "":
		data, err := os.ReadFile(*geojsonPath)
		if err != nil {
			return nil, err
		}
		return geomio.DecodeGeoJSON(data)
	case *wkbHex != "":
		return geomio.DecodeWKBHex(*wkbHex)
	}
	return nil, fmt.Errorf("missing geometry: supply -geojson or -wkb")
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseQuantiles() []float64 {
	var out []float64
	for _, p := range splitList(*quantiles) {
		q, err := strconv.ParseFloat(p, 64)
		if err != nil {
			log.Fatalf("invalid quantile %q: %v", p, err)
		}
		out = append(out, q)
	}
	return out
}

func writeCSV(f *os.File, columns []string, rows [][]float64) error {
	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return err
	}
	rec := make([]string, len(columns))
	for _, row := range rows {
		for i, v := range row {
			if math.IsNaN(v) {
				rec[i] = "NA"
			} else {
				rec[i] = strconv.FormatFloat(v, 'g', -1, 64)
			}
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func recordStats(meta resultdb.RunMeta, res *zonal.StatsResult) {
	store, err := resultdb.Open(*dbPath)
	if err != nil {
		log.Fatalf("opening result database: %v", err)
	}
	defer store.Close()
	runID, err := store.RecordStats(meta, res)
	if err != nil {
		log.Fatalf("recording results: %v", err)
	}
	log.Printf("recorded statistics as run %s", runID)
}

func recordExtract(meta resultdb.RunMeta, table *zonal.ExtractTable) {
	store, err := resultdb.Open(*dbPath)
	if err != nil {
		log.Fatalf("opening result database: %v", err)
	}
	defer store.Close()
	runID, err := store.RecordExtract(meta, table)
	if err != nil {
		log.Fatalf("recording results: %v", err)
	}
	log.Printf("recorded extraction as run %s", runID)
}
