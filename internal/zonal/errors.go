package zonal

import "errors"

// Error classes. Specific failures wrap one of these so callers can
// dispatch on the class with errors.Is while still seeing the detail in
// the message. All are raised before or during request validation;
// there is no partial-success mode.
var (
	// ErrConfig covers invalid requests: bad max cells, unknown
	// statistic names, missing quantile fractions, incompatible layer
	// counts, weighted statistics without a weight raster.
	ErrConfig = errors.New("invalid request")

	// ErrUnsupported covers statistics that are well-formed but
	// meaningless for the given inputs, such as count or sum when the
	// value raster is implicitly disaggregated to the weight raster's
	// finer resolution.
	ErrUnsupported = errors.New("unsupported operation")
)
