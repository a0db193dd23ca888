package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hrconsole/internal/attendance"
	"hrconsole/internal/watch"
)

var (
	watchDir      string
	watchExport   string
	watchDebounce string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Import .dat files as they are dropped into a folder",
	Long: `Watches a drop folder and imports each punch log once it stops changing.
Every import writes <name>-attendance-<date>.csv into the export directory.

Runs until interrupted.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchDir, "dir", "", "Folder to watch (default: watch.directory)")
	watchCmd.Flags().StringVarP(&watchExport, "out", "o", "", "Export directory (default: export.directory)")
	watchCmd.Flags().BoolVar(&strictParse, "strict", false, "Fail a file on its first malformed line")
	watchCmd.Flags().StringVar(&watchDebounce, "debounce", "", "Quiet period before import, e.g. 500ms (default: watch.debounce)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()
	return watchUntil(ctx, cmd)
}

// watchUntil runs the drop-folder watcher until ctx is done.
func watchUntil(ctx context.Context, cmd *cobra.Command) error {
	c := currentConfig()
	dir := watchDir
	if dir == "" {
		dir = workspacePath(c.Watch.Directory)
	}
	outDir := watchExport
	if outDir == "" {
		outDir = workspacePath(c.Export.Directory)
	}
	if watchDebounce != "" {
		c.Watch.Debounce = watchDebounce
	}

	opts := c.BatchOptions()
	if strictParse {
		opts.Mode = attendance.ModeStrict
	}

	out := cmd.OutOrStdout()
	im := &watch.Importer{
		ExportDir: outDir,
		Batch:     opts,
		OnImport: func(b *attendance.Batch, path string) {
			fmt.Fprintf(out, "%s: %s -> %s\n", b.Files[0].Name, b.Message(), path)
			logger.Info("watch import", zap.String("batch", b.ID), zap.String("export", path))
		},
	}
	w, err := watch.New(watch.Options{
		Dir:      dir,
		Debounce: c.GetWatchDebounce(),
		Batch:    opts,
		Handler:  im.Handle,
	})
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return err
	}
	fmt.Fprintf(out, "Watching %s (exports to %s). Press Ctrl+C to stop.\n", dir, outDir)

	<-ctx.Done()
	w.Stop()

	s := w.Stats()
	fmt.Fprintf(out, "Stopped: %d imported, %d errors, %d ignored\n", s.FilesImported, s.Errors, s.FilesIgnored)
	return nil
}
