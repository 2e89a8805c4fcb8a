package main

import (
	"context"
	"io/fs"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fpl-auction/invoice-cli/internal/extract"
	"github.com/fpl-auction/invoice-cli/internal/ocr"
	"github.com/fpl-auction/invoice-cli/internal/schedule"
	"github.com/fpl-auction/invoice-cli/internal/store"
)

var (
	processDir         string
	processLimit       int
	processConcurrency int
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Batch process invoice documents in a directory tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		dir := processDir
		if dir == "" {
			dir = cfg.Batch.Dir
		}
		if dir == "" {
			return eris.New("process: no input directory (set --dir or batch.dir)")
		}

		st, err := store.New(ctx, cfg.Store)
		if err != nil {
			return eris.Wrap(err, "process: open store")
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		sched, err := loadSchedule()
		if err != nil {
			return err
		}
		engine := extract.NewEngine(sched)
		extractor := ocr.NewRouter(cfg.OCR)

		files, err := pendingFiles(ctx, st, dir, processLimit)
		if err != nil {
			return err
		}

		return processBatch(ctx, files, processConcurrency, engine, extractor, st)
	},
}

func init() {
	processCmd.Flags().StringVar(&processDir, "dir", "", "invoice directory to walk")
	processCmd.Flags().IntVar(&processLimit, "limit", 0, "max number of documents to process (0 = all)")
	processCmd.Flags().IntVar(&processConcurrency, "concurrency", 0, "parallel documents (0 = config default)")
	rootCmd.AddCommand(processCmd)
}

// loadSchedule builds the event-date table, overlaying the configured YAML
// file when one is set.
func loadSchedule() (*schedule.Schedule, error) {
	if cfg.Schedule.File == "" {
		return schedule.New(), nil
	}
	return schedule.LoadFile(cfg.Schedule.File)
}

// pendingFiles walks the tree and returns supported documents the store
// has not recorded yet.
func pendingFiles(ctx context.Context, st store.Store, dir string, limit int) ([]string, error) {
	processed, err := st.ProcessedFileNames(ctx)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !ocr.Supported(path) {
			return nil
		}
		name := filepath.Base(path)
		if processed[name] || extract.Excluded(name) {
			return nil
		}
		files = append(files, path)
		if limit > 0 && len(files) >= limit {
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, eris.Wrapf(err, "process: walk %s", dir)
	}
	return files, nil
}

// processBatch runs extraction over the files concurrently. Individual
// document failures are logged and counted, never abort the batch.
func processBatch(ctx context.Context, files []string, concurrency int, engine *extract.Engine, extractor ocr.Extractor, st store.Store) error {
	if len(files) == 0 {
		zap.L().Info("no unprocessed documents found")
		return nil
	}

	if concurrency <= 0 {
		concurrency = cfg.Batch.MaxConcurrency
	}

	zap.L().Info("processing batch",
		zap.Int("documents", len(files)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64

	for _, path := range files {
		g.Go(func() error {
			name := filepath.Base(path)
			log := zap.L().With(zap.String("file", name))

			text, err := extractor.ExtractText(gctx, path)
			if err != nil {
				// Empty text is a legitimate low-confidence input; the
				// record still gets assembled below.
				log.Warn("text extraction failed", zap.Error(err))
				text = ""
			}

			rec, ok := engine.Process(text, name, path)
			if !ok {
				log.Debug("excluded by filename policy")
				return nil
			}

			if err := st.SaveRecord(gctx, rec); err != nil {
				failed.Add(1)
				log.Error("save record failed", zap.Error(err))
				return nil // don't abort batch on individual failure
			}

			succeeded.Add(1)
			log.Info("document processed",
				zap.String("company", rec.Company),
				zap.String("event", rec.Event),
				zap.Int("confidence", rec.Confidence),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "process: batch")
	}

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return nil
}
