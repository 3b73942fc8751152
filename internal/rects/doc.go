// Package rects stylizes a raster by covering it with black-bordered
// rectangles whose density follows the darkness of the source.
//
// The run has four steps:
//
//  1. Sum the darkness (1 - luma/max) of every input pixel.
//  2. Derive the rectangle count from Settings.RectsPerPixel and recalibrate
//     the density so the count is realised exactly.
//  3. Paint the output white.
//  4. Recursively bisect the canvas. Each region is cut across its longer
//     side at the sub-pixel coordinate where the first half holds its share
//     of the region's darkness, and a black separator is drawn there.
//
// # Degenerate regions
//
// A scan that exhausts a region before reaching its target darkness clamps
// the split to the trailing edge of the last row or column that held any
// darkness. A region with no darkness at all is left as a single cell and its
// remaining count is dropped. Result reports how often either happened.
//
// # Concurrency
//
// A run is synchronous and keeps no state between calls. Settings are taken
// by value; Store provides the copy-on-read holder for callers that let the
// density change while frames are being processed.
package rects
