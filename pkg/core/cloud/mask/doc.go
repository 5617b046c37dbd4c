// Package mask rasterizes a word-cloud silhouette into an occupancy bitmap.
//
// A [Mask] is built once from canvas dimensions and a [Shape], and is then
// only read. Each shape is described as a filled outline: rectangles and
// circles directly, triangles, diamonds and stars as polygons, and the heart
// as a polygon flattened from cubic Bézier lobes. Rows are filled with a
// scanline pass, sampling each pixel at its centre.
//
// The spiral search asks two questions of a mask:
//
//	m.IsInside(x, y)               // single pixel
//	m.IsRectInside(x, y, w, h)     // four corners of a word box
//
// The corner test is deliberately approximate. Boxes may bleed a pixel or
// two past concave boundaries such as the notches of a star.
package mask
