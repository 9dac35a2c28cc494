// Package taulver contains the current version of taulc, split out for easy
// reference from both the CLI and anything that reports it.
package taulver

// Current is the current version of taulc.
const Current = "0.1.0"
