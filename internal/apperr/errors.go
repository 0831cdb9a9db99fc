package apperr

import "errors"

// ErrNotInstalled is returned by frozen-version lookup when neither ldflags
// nor module build metadata carry a version, i.e. the binary was built
// without any install-time version information.
// Use errors.Is(err, apperr.ErrNotInstalled) to detect it.
var ErrNotInstalled = errors.New("no installed version metadata")

// ErrNoVCS is returned by version recomputation when no version-control
// state can be found (missing .git directory, repository without commits).
var ErrNoVCS = errors.New("version control state not found")

// ErrUnknownVersionSource is returned when the build manifest declares a
// dynamic version source that no registered evaluator supports.
var ErrUnknownVersionSource = errors.New("unknown version source")

// ErrResolution marks any failure of the version resolver. It always wraps
// the underlying cause, whose message is preserved verbatim; callers that
// need the specific failure class unwrap to one of the sentinels above.
var ErrResolution = errors.New("version resolution failed")
