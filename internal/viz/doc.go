// Package viz draws cell populations in the terminal.
//
// A [Scene] projects the placement box and every sample through a [Camera]
// onto a braille [Canvas]. [Model] wraps a running simulation in a Bubble Tea
// program with a metric chart beside the canvas.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	N     - Single tick while paused
//	X/Y   - Rotate (shift reverses)
//	+/-   - Zoom
//	V     - Show/hide molecules
//	?     - Help overlay
//	Q     - Quit
package viz
