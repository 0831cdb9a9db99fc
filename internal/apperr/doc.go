// Package apperr defines shared error sentinels for tagdrift.
// It is a leaf package with no internal imports so that any package
// (including low-level infrastructure like gitver) can use the sentinels
// without creating import cycles.
package apperr
