// Package zonal computes zonal statistics: per-layer aggregates of
// raster cell values restricted to, and weighted by, their overlap with
// a polygon.
//
// The engine reconciles the value and weight rasters onto a common
// grid, crops it to the polygon's bounding box, and walks it in
// memory-bounded windows. Each window contributes (coverage, value,
// weight) triples to per-output-row accumulators whose merge operation
// is associative and commutative, so results do not depend on window
// order or partitioning.
//
// Raster access and polygon/cell coverage computation are behind the
// RasterSource and CoverageProvider interfaces; this package never
// touches storage formats or rasterization algorithms directly.
package zonal
