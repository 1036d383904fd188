package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/import-formatter/internal/fetcher"
	"github.com/sells-group/import-formatter/internal/mapper"
	"github.com/sells-group/import-formatter/internal/model"
	"github.com/sells-group/import-formatter/internal/process"
	"github.com/sells-group/import-formatter/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP upload server",
	Long:  "Accepts spreadsheet uploads on POST /format and returns the formatted rows with their diagnostics.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

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
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func newRouter(st store.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))
	r.Use(rateLimit(rate.Limit(float64(cfg.Server.RatePerMinute) / 60.0)))

	r.Get("/health", handleHealth)
	r.Post("/format", handleFormat(st))
	r.Get("/runs", handleRuns(st))
	return r
}

// rateLimit throttles the whole server with a shared token bucket; uploads
// are heavy enough that per-client buckets are not worth the bookkeeping.
func rateLimit(limit rate.Limit) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(limit, 5)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, `{"error":"rate limit exceeded"}`, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// formatResponse is the JSON body returned by POST /format.
type formatResponse struct {
	RunID               string            `json:"run_id"`
	Status              string            `json:"status"`
	Mapping             map[string]string `json:"mapping"`
	Stats               model.Stats       `json:"stats"`
	Errors              []string          `json:"errors,omitempty"`
	Warnings            []string          `json:"warnings,omitempty"`
	NeedsUserTypeChoice bool              `json:"needs_user_type_choice,omitempty"`
	Rows                [][]string        `json:"rows"`
}

func handleFormat(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		maxBytes := int64(cfg.Server.MaxUploadMB) << 20
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			http.Error(w, `{"error":"invalid multipart body"}`, http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, `{"error":"file field is required"}`, http.StatusBadRequest)
			return
		}
		defer file.Close()

		// tealeg and the charset sniffer both want a path, so spool the
		// upload to a temp file.
		tmp, err := os.CreateTemp("", "importfmt-*"+filepath.Ext(header.Filename))
		if err != nil {
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}
		defer os.Remove(tmp.Name())
		if _, err := tmp.ReadFrom(file); err != nil {
			tmp.Close()
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}
		tmp.Close()

		table, err := fetcher.Read(tmp.Name(),
			fetcher.CSVOptions{Charset: r.FormValue("charset")},
			fetcher.XLSXOptions{},
		)
		if err != nil {
			zap.L().Error("serve: read upload", zap.String("file", header.Filename), zap.Error(err))
			http.Error(w, `{"error":"unreadable file"}`, http.StatusUnprocessableEntity)
			return
		}

		opts := process.Options{
			CorrectDates:          cfg.Format.CorrectDates,
			UppercaseSurnames:     cfg.Format.UppercaseSurnames,
			AutoInferCivility:     cfg.Format.AutoInferCivility,
			AutoInferUserType:     cfg.Format.AutoInferUserType,
			Strict:                r.FormValue("strict") == "true",
			DefaultUserType:       r.FormValue("default_user_type"),
			RequireUserTypeChoice: true,
		}

		rec, err := st.CreateRun(ctx, header.Filename)
		if err != nil {
			zap.L().Error("serve: create run", zap.Error(err))
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}

		mapping := mapper.AutoMap(table.Columns)
		detectUserTypeColumn(table, mapping)
		res := process.Run(table, mapping, opts)

		status := model.RunStatusComplete
		if res.NeedsUserTypeChoice {
			status = model.RunStatusNeedsChoice
		}
		if err := st.CompleteRun(ctx, rec.ID, status, res.Stats, len(res.Errors), len(res.Warnings)); err != nil {
			zap.L().Error("serve: complete run", zap.Error(err))
		}

		zap.L().Info("serve: file formatted",
			zap.String("file", header.Filename),
			zap.String("run_id", rec.ID),
			zap.Int("total_rows", res.Stats.TotalRows),
			zap.Int("valid_rows", res.Stats.ValidRows),
		)

		// Browsers post with Accept: text/csv to download the formatted
		// file directly; everything else gets the JSON report.
		if strings.Contains(r.Header.Get("Accept"), "text/csv") {
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			w.Header().Set("Content-Disposition", `attachment; filename="import_formate.csv"`)
			_, _ = w.Write([]byte("\xef\xbb\xbf"))
			cw := csv.NewWriter(w)
			cw.Comma = ';'
			_ = cw.WriteAll(res.Table)
			cw.Flush()
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(formatResponse{
			RunID:               rec.ID,
			Status:              string(status),
			Mapping:             mapping,
			Stats:               res.Stats,
			Errors:              res.Errors,
			Warnings:            res.Warnings,
			NeedsUserTypeChoice: res.NeedsUserTypeChoice,
			Rows:                res.Table,
		})
	}
}

func handleRuns(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runs, err := st.ListRuns(r.Context(), store.RunFilter{
			Status: model.RunStatus(r.URL.Query().Get("status")),
		})
		if err != nil {
			zap.L().Error("serve: list runs", zap.Error(err))
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(runs)
	}
}
