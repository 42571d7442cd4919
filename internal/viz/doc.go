// Package viz provides drawing surfaces and terminal styling for the labs.
//
//   - [Surface]: the path-based 2D target every renderer draws on
//   - [Canvas]: Braille-based terminal implementation of Surface
//   - [Path]: shared path accumulator embedded by surfaces
//   - lipgloss styles and themes shared by the TUI
//
// Renderers work in a logical coordinate space reported by Surface.Size;
// the Canvas scales that space onto its 2x4 dot cells and clips anything
// that falls outside.
package viz
