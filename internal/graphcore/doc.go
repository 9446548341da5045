// Package graphcore is documented in types.go.
package graphcore
