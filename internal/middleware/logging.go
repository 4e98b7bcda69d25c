package middleware

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dynoinc/sdjournal"
)

// RunE is the signature of cobra.Command.RunE.
type RunE func(cmd *cobra.Command, args []string) error

// LogErrors wraps a command handler so that failures are logged.
func LogErrors(next RunE) RunE {
	return func(cmd *cobra.Command, args []string) error {
		err := next(cmd, args)
		if err != nil {
			ctx := cmd.Context()
			command := cmd.CommandPath()

			var nativeErr *sdjournal.NativeError
			if errors.As(err, &nativeErr) {
				slog.ErrorContext(ctx, "command failed",
					"command", command,
					"op", nativeErr.Op,
					"code", nativeErr.Code,
					"error", err.Error(),
				)
			} else {
				slog.ErrorContext(ctx, "command failed with non-native error",
					"command", command,
					"error", err.Error(),
				)
			}
		}

		return err
	}
}
