// Package version holds the frozen version of the tagdrift binary: the
// version fixed at build time and never recomputed afterwards.
//
// The value is injected via ldflags at release builds. When ldflags are not
// set (e.g. go install), an init function reads runtime/debug.BuildInfo as a
// fallback so the binary reports the module version it was installed from.
// When neither source produced a version the binary is considered not
// installed and Frozen returns apperr.ErrNotInstalled.
package version
