// Package interact connects rendered frames to a host environment.
//
// The host owns the data and the marking state; the [Controller] owns the
// drawing. On every [Controller.Update] the controller renders a snapshot,
// draws the resulting frame on a [Canvas] and, only if all of that
// succeeded, commits the frame and signals render completion to the
// [Host]. Pointer events are resolved against the committed frame:
//
//   - hover over an element shows its tooltip, leaving hides it
//   - clicking a segment marks all its rows, clicking a ribbon marks its row;
//     [Add] when the modifier key is held, [Replace] otherwise
//   - clicking the background clears the marking
//
// All Controller methods are safe for concurrent use.
package interact
