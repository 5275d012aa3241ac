package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
)

func runBackup(ctx context.Context, app *App, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: %s", commands["backup"].usage)
	}

	switch args[0] {
	case "export":
		return withOutputFile(args[1:], app.out, func(w io.Writer) error {
			return app.backup.Export(ctx, w)
		})
	case "restore":
		if len(args) != 2 {
			return fmt.Errorf("usage: backup restore <file>")
		}
		f, err := os.Open(args[1])
		if err != nil {
			return fmt.Errorf("failed to open backup: %w", err)
		}
		defer f.Close()

		count, err := app.backup.Restore(ctx, f)
		if err != nil {
			return err
		}
		return app.printJSON(map[string]int{"restored": count})
	default:
		return fmt.Errorf("unknown backup command %q", args[0])
	}
}
