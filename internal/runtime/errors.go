package runtime

import (
	"fmt"
	"io"
	"os"

	"github.com/manav03panchal/tasksync/internal/errors"
	"github.com/manav03panchal/tasksync/internal/logging"
	"github.com/manav03panchal/tasksync/internal/output"
	"github.com/manav03panchal/tasksync/internal/parser"
)

// Normalize turns date and time parse failures into user errors so that
// suggestions and exit codes apply.
func Normalize(err error) error {
	if err == nil {
		return nil
	}
	return parser.AsUserError(err)
}

// FormatError formats an error with its category prefix and suggestion.
func FormatError(err error) string {
	return errors.FormatByCategory(Normalize(err))
}

// Report writes err for the user and returns the process exit code. JSON
// output gets an error envelope on stdout; everything else goes to stderr.
// Debug mode adds the wrap chain and the captured stack.
func Report(f *output.Formatter, err error, debug bool) int {
	if err == nil {
		return 0
	}
	err = Normalize(err)

	logging.DebugLog("command failed",
		logging.KeyError, err.Error(),
		"category", errors.GetCategory(err).String())

	if f != nil && f.Format == output.FormatJSON {
		_ = output.NewJSONFormatter(f).PrintError(err.Error(), errors.GetSuggestion(err))
		return errors.ExitCode(err)
	}

	var w io.Writer = os.Stderr
	if f != nil {
		w = f.Stderr()
	}
	if debug {
		fmt.Fprint(w, errors.FormatDebugError(err))
	} else {
		fmt.Fprintln(w, "Error: "+FormatError(err))
	}
	return errors.ExitCode(err)
}
