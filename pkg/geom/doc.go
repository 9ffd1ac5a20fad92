// Package geom holds the immutable value types of the box model: sizes,
// edge insets used for margins and paddings, per-side borders, column width
// specifications and colors.
//
// All values are plain structs passed by value. Constructors reject negative
// lengths by panicking with an INVALID_ARGUMENT error because a negative
// margin or size can only come from a bug at the call site.
package geom
