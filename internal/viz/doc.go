// Package viz turns an energy-density field into a colored 3D wireframe and
// shows it in the terminal.
//
//   - [BuildScene]: sampled wireframe in the unit cube with title and labels
//   - [Camera]: orbit camera with z up
//   - [Canvas]: braille pixel canvas with per-cell color levels
//   - [Viewer]: Bubble Tea model for interactive viewing
//
// # Key Bindings
//
//	←/→ h/l - Orbit
//	↑/↓ k/j - Tilt
//	+/-     - Zoom
//	T       - Cycle color themes
//	R       - Reset camera
//	?       - Show help overlay
//	Q       - Quit
package viz
