// Package textutil cleans user-supplied labels before they reach logs,
// cache rows, or output file names.
package textutil
