package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fpl-auction/invoice-cli/internal/export"
	"github.com/fpl-auction/invoice-cli/internal/model"
	"github.com/fpl-auction/invoice-cli/internal/store"
)

var servePort int

// shutdownTimeout caps how long in-flight requests get to drain on SIGINT.
const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a read-only HTTP API over processed records",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := store.New(ctx, cfg.Store)
		if err != nil {
			return eris.Wrap(err, "serve: open store")
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(st),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			shutdownServer(srv)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "serve: listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// shutdownServer drains in-flight requests before the listener closes. The
// signal context is already canceled by the time this runs, so the drain gets
// its own deadline.
func shutdownServer(srv *http.Server) {
	zap.L().Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Error("server shutdown", zap.Error(err))
	}
}

func newRouter(st store.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/invoices", func(w http.ResponseWriter, req *http.Request) {
		filter, err := filterFromQuery(req)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		records, err := st.ListRecords(req.Context(), filter)
		if err != nil {
			zap.L().Error("list records failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
		if records == nil {
			records = []model.InvoiceRecord{}
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"count":    len(records),
			"invoices": records,
		})
	})

	r.Get("/api/invoices/summary", func(w http.ResponseWriter, req *http.Request) {
		records, err := st.ListRecords(req.Context(), store.RecordFilter{})
		if err != nil {
			zap.L().Error("list records failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}

		s := export.Summarize(records)
		writeJSON(w, http.StatusOK, map[string]any{
			"total":        s.Total,
			"high":         s.HighCount,
			"medium":       s.MediumCount,
			"low":          s.LowCount,
			"fee_invoices": s.FeeCount,
			"total_amount": s.TotalAmount.String(),
			"high_amount":  s.HighAmount.String(),
			"by_company":   s.ByCompany,
			"by_month":     s.ByMonth,
		})
	})

	return r
}

func filterFromQuery(req *http.Request) (store.RecordFilter, error) {
	q := req.URL.Query()
	filter := store.RecordFilter{
		Company: q.Get("company"),
		Month:   q.Get("month"),
	}

	switch band := q.Get("band"); band {
	case "":
	case string(model.BandHigh), string(model.BandMedium), string(model.BandLow):
		filter.Band = model.ConfidenceBand(band)
	default:
		return filter, fmt.Errorf("unknown band %q", band)
	}

	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return filter, fmt.Errorf("invalid limit %q", raw)
		}
		filter.Limit = n
	}
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return filter, fmt.Errorf("invalid offset %q", raw)
		}
		filter.Offset = n
	}

	return filter, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
