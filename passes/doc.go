// Package passes implements the in-place transformations applied to
// declaration units: the postprocessing pipeline run exactly once on
// every freshly parsed unit, and the linking steps that collect
// dependencies, bind symbolic references across and within modules,
// compute signature templates, and verify a finished tree.
package passes
