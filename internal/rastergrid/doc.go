// Package rastergrid models axis-aligned raster grids: rectangular
// extents divided into uniform cells, with the reconciliation, cropping
// and windowing operations the zonal engine needs to compare two
// independently-gridded rasters and bound its working-set size.
//
// Rows are numbered from the top of the extent (row 0 touches YMax),
// matching the storage order of the raster sources in this module.
package rastergrid
