package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/yaklabco/deeplinks/internal/configloader"
	"github.com/yaklabco/deeplinks/pkg/fsutil"
)

// Exit codes for deeplinks.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitNoResult indicates the command ran but produced nothing: encode
	// found no text to anchor on, decode resolved no range, or find matched
	// no document.
	ExitNoResult = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrNothingToAnchor is returned by encode when no range covers
	// addressable text. It only signals the exit code.
	ErrNothingToAnchor = errors.New("nothing to anchor")

	// ErrNothingResolved is returned by decode when no range of the
	// fragment resolved. It only signals the exit code.
	ErrNothingResolved = errors.New("nothing resolved")

	// ErrInvalidUsage wraps errors in arguments or flags.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrConfigLoad wraps errors from loading configuration.
	ErrConfigLoad = errors.New("failed to load configuration")
)

// IsSignal reports whether err only carries an exit code and has already
// been reported to the user.
func IsSignal(err error) bool {
	return errors.Is(err, ErrNothingToAnchor) || errors.Is(err, ErrNothingResolved)
}

// ExitCode maps an error returned by a command onto a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case IsSignal(err):
		return ExitNoResult
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfigLoad), errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidUsage, fmt.Sprintf(format, args...))
}

// exactArgs is cobra.ExactArgs with the error marked as a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
		}
		return nil
	}
}
