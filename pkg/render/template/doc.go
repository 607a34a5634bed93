// Package template defines the engine seam the result renderer writes through.
// Engines receive plain view models and return rendered markup or text.
package template
