package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/crediflow/lsctl/pkg/data"
	"github.com/urfave/cli/v2"
)

const (
	serverShutdownWaitSeconds = 5
	serverTimeoutSeconds      = 300
	serverMaxHeaderBytes      = 20
	serverPortDefault         = 8080
)

var (
	portFlag = &cli.IntFlag{
		Name:  "port",
		Usage: "Port on which the server will listen",
		Value: serverPortDefault,
	}

	serverCmd = &cli.Command{
		Name:    "server",
		Aliases: []string{"serve"},
		Usage:   "Start local HTTP server exposing the score data API",
		Action:  cmdStartServer,
		Flags: []cli.Flag{
			portFlag,
		},
	}
)

func cmdStartServer(c *cli.Context) error {
	cfg := getConfig(c)
	address := fmt.Sprintf("127.0.0.1:%d", c.Int(portFlag.Name))

	s := &http.Server{
		Addr:           address,
		Handler:        makeRouter(cfg.DB),
		ReadTimeout:    serverTimeoutSeconds * time.Second,
		WriteTimeout:   serverTimeoutSeconds * time.Second,
		MaxHeaderBytes: 1 << serverMaxHeaderBytes,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("error starting server", "error", err)
		}
	}()

	slog.Info("server started", "address", "http://"+address)

	<-done

	ctx, cancel := context.WithTimeout(context.Background(), serverShutdownWaitSeconds*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("error shutting down server", "error", err)
	}
	return nil
}

func makeRouter(db *sql.DB) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /data/scores", scoresAPIHandler(db))
	mux.HandleFunc("GET /data/score", scoreAPIHandler(db))
	mux.HandleFunc("GET /data/borrower", borrowerAPIHandler(db))
	mux.HandleFunc("GET /data/grades", gradesAPIHandler(db))
	mux.HandleFunc("GET /data/state", stateAPIHandler(db))

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func scoresAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := queryParamInt(r, "limit", queryResultLimitDefault)
		if limit <= 0 || limit > queryResultLimitDefault {
			limit = queryResultLimitDefault
		}

		grade := optional(r.URL.Query().Get("grade"))

		var minScore *float64
		if v := r.URL.Query().Get("min"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				minScore = &f
			}
		}

		list, err := data.SearchScores(db, grade, minScore, limit)
		if err != nil {
			slog.Error("failed to query scores", "error", err)
			writeError(w, http.StatusInternalServerError, "error querying scores")
			return
		}

		writeJSON(w, http.StatusOK, list)
	}
}

func scoreAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		member := r.URL.Query().Get("member")
		if member == "" {
			writeError(w, http.StatusBadRequest, "member is required")
			return
		}

		rec, err := data.GetScore(db, member)
		if err != nil {
			slog.Error("failed to query score", "member", member, "error", err)
			writeError(w, http.StatusInternalServerError, "error querying score")
			return
		}
		if rec == nil {
			writeError(w, http.StatusNotFound, "member not scored")
			return
		}

		writeJSON(w, http.StatusOK, rec)
	}
}

func borrowerAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		member := r.URL.Query().Get("member")
		if member == "" {
			writeError(w, http.StatusBadRequest, "member is required")
			return
		}

		rec, err := data.GetBorrower(db, member)
		if err != nil {
			slog.Error("failed to query borrower", "member", member, "error", err)
			writeError(w, http.StatusInternalServerError, "error querying borrower")
			return
		}
		if rec == nil {
			writeError(w, http.StatusNotFound, "member not found")
			return
		}

		writeJSON(w, http.StatusOK, rec)
	}
}

func gradesAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dist, err := data.GetGradeDistribution(db)
		if err != nil {
			slog.Error("failed to query grade distribution", "error", err)
			writeError(w, http.StatusInternalServerError, "error querying grade distribution")
			return
		}

		writeJSON(w, http.StatusOK, dist)
	}
}

func stateAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := data.GetDataState(db)
		if err != nil {
			slog.Error("failed to query data state", "error", err)
			writeError(w, http.StatusInternalServerError, "error querying data state")
			return
		}

		writeJSON(w, http.StatusOK, state)
	}
}

func queryParamInt(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
