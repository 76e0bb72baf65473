package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackview/pkg/buildinfo"
	apperrors "github.com/matzehuels/stackview/pkg/errors"
	"github.com/matzehuels/stackview/pkg/geom"
	"github.com/matzehuels/stackview/pkg/observability"
	"github.com/matzehuels/stackview/pkg/pipeline"
	"github.com/matzehuels/stackview/pkg/prefs"
	"github.com/matzehuels/stackview/pkg/render/blindstack"
)

const (
	defaultAddr     = "127.0.0.1:7420"
	shutdownTimeout = 5 * time.Second
)

// serveCommand creates the serve command, a live preview of a scene file.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve [scene]",
		Short: "Serve a live preview of a scene",
		Long: `Serve a scene over HTTP.

The scene file is read again on every request, so edits show up on reload.
Preferences are read once at startup; restart the server to apply changes.

Routes:
  GET /                  index page
  GET /board.svg         whole board (?zoom=, ?cull=1)
  GET /board.png         whole board as PNG
  GET /layout.json       piece placement
  GET /stacks/{id}.svg   one stack (also .png)
  GET /hit?x=&y=         topmost visible piece at a map point
  GET /stats             layout, draw and cache counters
  GET /version           build information`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe serves path until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, path, addr string, noCache bool) error {
	logger := loggerFromContext(ctx)

	p, err := c.loadPrefs()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	counters := &observability.Counters{}
	observability.SetStackHooks(counters)
	observability.SetCacheHooks(counters)
	defer observability.Reset()

	srv := &http.Server{
		Addr:              addr,
		Handler:           newPreviewServer(path, p, runner, logger, counters).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	printSuccess("Serving %s", path)
	printKeyValue("Address", "http://"+addr)

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return ctx.Err()
}

// =============================================================================
// Preview Server
// =============================================================================

// previewServer renders one scene file on demand.
type previewServer struct {
	path     string
	prefs    prefs.Preferences
	runner   *pipeline.Runner
	logger   *log.Logger
	counters *observability.Counters
}

// newPreviewServer returns a server for path. counters, when registered as
// observability hooks, is reported by /stats.
func newPreviewServer(path string, p prefs.Preferences, runner *pipeline.Runner, logger *log.Logger, counters *observability.Counters) *previewServer {
	if counters == nil {
		counters = &observability.Counters{}
	}
	return &previewServer{path: path, prefs: p, runner: runner, logger: logger, counters: counters}
}

func (s *previewServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handleIndex)
	r.Get("/board.svg", s.handleBoard(pipeline.FormatSVG))
	r.Get("/board.png", s.handleBoard(pipeline.FormatPNG))
	r.Get("/layout.json", s.handleBoard(pipeline.FormatJSON))
	r.Get("/stacks/{file}", s.handleStack)
	r.Get("/hit", s.handleHit)
	r.Get("/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.counters.Snapshot())
	})
	r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, buildinfo.Get())
	})
	return r
}

// requestLogger attaches a request-scoped logger and logs each response.
func (s *previewServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		l := s.logger.With("request_id", middleware.GetReqID(r.Context()))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(withLogger(r.Context(), l)))
		l.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond))
	})
}

// options reads the scene and applies the query parameters shared by every
// render route.
func (s *previewServer) options(r *http.Request, formats ...string) (pipeline.Options, error) {
	data, format, err := readScene(s.path)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Options{
		Scene:       data,
		SceneFormat: format,
		Formats:     formats,
		Prefs:       s.prefs,
		Logger:      loggerFromContext(r.Context()),
	}
	q := r.URL.Query()
	if z := q.Get("zoom"); z != "" {
		zoom, err := strconv.ParseFloat(z, 64)
		if err != nil {
			return opts, apperrors.Wrap(apperrors.ErrCodeInvalidZoom, err, "invalid zoom %q", z)
		}
		opts.Zoom = zoom
	}
	opts.Cull = q.Get("cull") == "1" || q.Get("cull") == "true"
	opts.ExpandAll = q.Get("expand") == "1" || q.Get("expand") == "true"
	return opts, nil
}

func (s *previewServer) handleBoard(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := s.options(r, format)
		if err != nil {
			writeError(w, err)
			return
		}
		s.render(w, r, opts, format)
	}
}

func (s *previewServer) handleStack(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	dot := strings.LastIndex(file, ".")
	if dot <= 0 {
		writeError(w, apperrors.New(apperrors.ErrCodeNotFound, "not found: %s", file))
		return
	}
	id, format := file[:dot], file[dot+1:]
	if format != pipeline.FormatSVG && format != pipeline.FormatPNG {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidFormat, "stacks render as svg or png, not %q", format))
		return
	}
	opts, err := s.options(r, format)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Stack = id
	s.render(w, r, opts, format)
}

func (s *previewServer) render(w http.ResponseWriter, r *http.Request, opts pipeline.Options, format string) {
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(result.Artifacts[format])
}

// hitResponse is the body of /hit.
type hitResponse struct {
	Hit   bool   `json:"hit"`
	Stack string `json:"stack,omitempty"`
	Index int    `json:"index"`
	Piece string `json:"piece,omitempty"`
}

func (s *previewServer) handleHit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, errX := strconv.ParseFloat(q.Get("x"), 64)
	y, errY := strconv.ParseFloat(q.Get("y"), 64)
	if errX != nil || errY != nil {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "x and y must be numbers"))
		return
	}
	opts, err := s.options(r)
	if err == nil {
		err = opts.ValidateAndSetDefaults()
	}
	if err != nil {
		writeError(w, err)
		return
	}
	_, b, spotted, err := pipeline.Parse(opts)
	if err != nil {
		writeError(w, err)
		return
	}
	m := blindstack.Activate(s.prefs, spotted)
	resp := hitResponse{Index: -1}
	if hit, ok := b.PieceAt(m.Layout(), geom.Point{X: x, Y: y}, blindstack.Visible(spotted)); ok {
		resp = hitResponse{Hit: true, Stack: hit.Stack.ID, Index: hit.Index, Piece: hit.Piece.ID()}
	}
	writeJSON(w, http.StatusOK, resp)
}

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>{{.Board}}</title></head>
<body>
<h1>{{.Board}}</h1>
<p><img src="/board.svg" alt="{{.Board}}"></p>
<ul>
{{range .Stacks}}<li><a href="/stacks/{{.ID}}.svg">{{.ID}}</a> ({{len .Pieces}} pieces)</li>
{{end}}</ul>
</body>
</html>
`))

func (s *previewServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r, pipeline.FormatJSON)
	if err != nil {
		writeError(w, err)
		return
	}
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, result.Layout); err != nil {
		loggerFromContext(r.Context()).Error("render index", "err", err)
	}
}

// =============================================================================
// Responses
// =============================================================================

func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	default:
		return "application/json"
	}
}

// statusFor maps an error to the HTTP status for its code.
func statusFor(err error) int {
	return apperrors.GetCode(err).Status()
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{
		"error":   string(apperrors.GetCode(err)),
		"message": apperrors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
