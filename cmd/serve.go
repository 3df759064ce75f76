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
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridiron-labs/bestball/internal/engine"
	"github.com/gridiron-labs/bestball/internal/match"
	"github.com/gridiron-labs/bestball/internal/model"
	"github.com/gridiron-labs/bestball/internal/projection"
	"github.com/gridiron-labs/bestball/internal/props"
	"github.com/gridiron-labs/bestball/internal/roster"
	"github.com/gridiron-labs/bestball/internal/rules"
	"github.com/gridiron-labs/bestball/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve standings and projections over HTTP",
	Long: `Starts a JSON API backed by the store and the given fixture files.

Routes:
  GET /health
  GET /api/v1/standings?week=N[&round=R]
  GET /api/v1/players/{id}/projection?week=N
  GET /api/v1/scores?week=N

Props and season context are loaded once at startup; restart to pick up
new lines or bracket results.`,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.IntVar(&servePort, "port", 0, "server port (default from config)")
	f.String("props", "", "prop lines file (JSON)")
	f.String("context", "", "season context file (JSON)")

	rootCmd.AddCommand(serveCmd)
}

// serveEnv is the immutable per-process state behind the handlers.
type serveEnv struct {
	store   store.Store
	rules   rules.Rules
	engine  *engine.Engine
	blender *projection.Blender
	season  seasonContext
	props   map[string][]model.PropLine
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	propsPath, _ := cmd.Flags().GetString("props")
	contextPath, _ := cmd.Flags().GetString("context")

	r, err := rules.FromConfig(cfg.Scoring)
	if err != nil {
		return err
	}
	sc, err := loadSeasonContext(contextPath)
	if err != nil {
		return eris.Wrap(err, "serve: load season context")
	}
	lines, err := loadPropLines(propsPath)
	if err != nil {
		return eris.Wrap(err, "serve: load props")
	}

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		return err
	}

	blender := projection.NewBlender(cfg.Blend)
	env := &serveEnv{
		store:   st,
		rules:   r,
		engine:  engine.New(r, blender),
		blender: blender,
		season:  sc,
		props:   propsByPlayer(lines),
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Timeout(30 * time.Second))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	router.Route("/api/v1", func(router chi.Router) {
		router.Get("/standings", env.handleStandings)
		router.Get("/players/{id}/projection", env.handleProjection)
		router.Get("/scores", env.handleScores)
	})

	port := servePort
	if port == 0 {
		port = cfg.Server.Port
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("serve: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	zap.L().Info("serve: listening", zap.Int("port", port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "serve: listen")
	}
	return nil
}

func (env *serveEnv) handleStandings(w http.ResponseWriter, r *http.Request) {
	week, ok := queryInt(w, r, "week")
	if !ok {
		return
	}
	roundFlag := 0
	if v := r.URL.Query().Get("round"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "round must be an integer")
			return
		}
		roundFlag = n
	}

	slots, err := env.store.Rosters(r.Context())
	if err != nil {
		serveError(w, "load rosters", err)
		return
	}
	if len(slots) == 0 {
		writeJSONError(w, http.StatusNotFound, "no rosters loaded")
		return
	}

	scores, err := loadScores(r.Context(), env.store, slots, 8)
	if err != nil {
		serveError(w, "load scores", err)
		return
	}

	round := resolveRound(env.season, roundFlag)
	standings := env.engine.Standings(slots, env.season.engineInputs(week, round, scores, env.props))
	writeJSON(w, http.StatusOK, standings)
}

func (env *serveEnv) handleProjection(w http.ResponseWriter, r *http.Request) {
	week, ok := queryInt(w, r, "week")
	if !ok {
		return
	}
	playerID := chi.URLParam(r, "id")

	slot, found, err := findSlot(r.Context(), env.store, playerID, week)
	if err != nil {
		serveError(w, "load rosters", err)
		return
	}
	if !found {
		writeJSONError(w, http.StatusNotFound, "player is not on any roster")
		return
	}
	active := roster.Active(slot, week)

	history, err := slotHistory(r.Context(), env.store, slot)
	if err != nil {
		serveError(w, "load history", err)
		return
	}

	var propEst *props.Estimate
	if lines := env.props[active.ID]; len(lines) > 0 {
		est := props.Aggregate(lines, active.Position, env.rules)
		propEst = &est
	}

	in := env.season.engineInputs(week, 0, nil, nil)
	proj := env.blender.Project(projection.Input{
		PlayerID: active.ID,
		Position: active.Position,
		Week:     week,
		Props:    propEst,
		History:  history,
		Weather:  in.Weather[match.Normalize(active.Team)],
	})
	writeJSON(w, http.StatusOK, proj)
}

func (env *serveEnv) handleScores(w http.ResponseWriter, r *http.Request) {
	week, ok := queryInt(w, r, "week")
	if !ok {
		return
	}
	scores, err := env.store.AllWeekScores(r.Context(), week)
	if err != nil {
		serveError(w, "load week scores", err)
		return
	}
	writeJSON(w, http.StatusOK, scores)
}

func queryInt(w http.ResponseWriter, r *http.Request, key string) (int, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		writeJSONError(w, http.StatusBadRequest, key+" is required")
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, key+" must be an integer")
		return 0, false
	}
	return n, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func serveError(w http.ResponseWriter, action string, err error) {
	zap.L().Error("serve: "+action, zap.Error(err))
	writeJSONError(w, http.StatusInternalServerError, action+" failed")
}
