// Package formats parses Wavefront OBJ geometry and MTL material libraries.
//
// Parsers return plain file-level data with the file's own 1-based indices;
// building a renderable model from it is left to the caller.
package formats
