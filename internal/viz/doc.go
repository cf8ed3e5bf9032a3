// Package viz renders worlds in the terminal.
//
//   - [Canvas]: Braille-based pixel canvas with lines, circles and polygons
//   - [RenderFrame]: draws a [verlet.Frame] scaled to fit a canvas
//   - [Model]: Bubble Tea program stepping a world at a fixed frame rate
//
// # Key Bindings
//
//	q, ctrl+c - quit
//
// # Recording
//
// With [Options].GIFPath set, every drawn frame is captured and the
// animation is written when the program quits.
package viz
