// Package layout lays out a tree of elements onto fixed-size pages.
//
// Every element goes through two phases. Prepare measures it once against
// an available width and height and freezes its box model; Render paints
// the prepared element (fill, then border, then content) onto a drawing
// surface. Between the two, a PageSet paginates its prepared body elements:
// elements that fit are placed on the current page, elements that do not
// fit are split into two prepared halves when they support it, and
// everything else starts a new page or, on an empty page, overflows with a
// warning.
//
// Coordinates follow the page content convention: x grows to the right,
// y grows upward from the bottom edge of the page, and a placement is
// described by its left and top edges.
package layout
