// Package render rasterizes Voronoi facets onto single-channel canvases.
//
// # Overview
//
// The [Renderer] produces the two canvases of a diagram:
//
//   - The image canvas, where every facet is filled with one gray value
//     drawn from a [sampling.GraySampler], in facet order.
//   - The label canvas, where only facet boundaries are stroked as closed
//     polylines with a [LabelStyle].
//
// Both canvases start zeroed and share the renderer's width and height.
//
// # Rasterization
//
// Paths are rasterized with fogleman/gg, which antialiases. Canvases here
// hold discrete intensities, so gg output is used as a coverage mask and
// thresholded by [Stamp]:
//
//   - Facet fills paint every pixel the polygon touches. Neighbouring facets
//     therefore overlap on their shared edge and the later facet wins, which
//     leaves no unpainted seams.
//   - Strokes and other shapes paint pixels covered past [StrokeThreshold].
//
// Vertices are integer pixel coordinates and are drawn through pixel
// centres (offset by 0.5 in gg space).
//
// # Seeds
//
// [DrawSeeds] stamps filled circles at the seed points on a copy of a
// canvas. The CLI preview command uses it to inspect a sampler.
package render
