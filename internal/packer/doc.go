// Package packer assigns cut lengths to fixed-length stock pieces using a
// First Fit Decreasing heuristic. Bins are plain containers; the packer alone
// decides whether a cut fits.
package packer
