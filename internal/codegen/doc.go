// Package codegen turns a checked program into a single C++ translation
// unit with every statement placed inside main.
package codegen
