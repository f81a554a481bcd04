package serverapp

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pineiras-maker/mytasks/internal/config"
	"github.com/pineiras-maker/mytasks/internal/httpmw"
	"github.com/pineiras-maker/mytasks/internal/i18n"
	"github.com/pineiras-maker/mytasks/internal/model"
	"github.com/pineiras-maker/mytasks/internal/task"
	staticfiles "github.com/pineiras-maker/mytasks/static"
)

type Options struct {
	Config        *config.Config
	UseDiskStatic bool
	Logger        *log.Logger
	Clock         task.Clock

	// Persister overrides the file persister, mainly for tests.
	Persister task.Persister
}

// UseDiskStaticByEnv serves static assets from disk instead of the embedded
// copies when MYTASKS_DEV_STATIC is truthy.
func UseDiskStaticByEnv() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("MYTASKS_DEV_STATIC")))
	return v == "1" || v == "true" || v == "yes"
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Clock == nil {
		opts.Clock = task.RealClock{}
	}

	persister := opts.Persister
	if persister == nil {
		fp, err := task.NewFilePersister(opts.Config.Storage.DataDir)
		if err != nil {
			return nil, err
		}
		persister = fp
	}

	store := task.NewStore(persister, opts.Clock, opts.Logger)
	bundle := i18n.NewBundle(i18n.Locale(opts.Config.UI.Locale))

	// One rollover pass at boot; the API exposes manual reruns.
	if opts.Config.UI.RolloverOnStartup {
		today := model.Today(opts.Clock.Now())
		if moved := store.Rollover(today); moved > 0 {
			opts.Logger.Printf("rollover: moved %d incomplete tasks to %s", moved, today)
		}
	}

	mux := http.NewServeMux()

	staticHandler := http.FileServer(http.FS(staticfiles.EmbeddedFS()))
	if opts.UseDiskStatic {
		staticHandler = http.FileServer(http.Dir(opts.Config.Storage.StaticDir))
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", staticHandler))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"ok":true,"service":"mytasks","time":"` +
			time.Now().UTC().Format(time.RFC3339) + `"}`))
	})

	api := task.NewHandler(store, opts.Clock, bundle)
	mux.HandleFunc("GET /api/tasks", api.List)
	mux.HandleFunc("POST /api/tasks", api.Add)
	mux.HandleFunc("POST /api/tasks/{id}/toggle", api.Toggle)
	mux.HandleFunc("DELETE /api/tasks/{id}", api.Delete)
	mux.HandleFunc("PUT /api/tasks/{id}", api.Edit)
	mux.HandleFunc("POST /api/rollover", api.Rollover)
	mux.HandleFunc("GET /api/export", api.Export)
	mux.HandleFunc("POST /api/import", api.Import)
	mux.HandleFunc("GET /api/summary", api.Summary)
	mux.HandleFunc("GET /api/calendar", api.Calendar)

	views := &viewHandler{
		store:  store,
		clock:  opts.Clock,
		bundle: bundle,
		maxPerDay: opts.Config.UI.WeeklyMaxTasks,
	}
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		today := model.Today(opts.Clock.Now())
		http.Redirect(w, r, "/daily?date="+string(today), http.StatusSeeOther)
	})
	mux.HandleFunc("GET /daily", views.Daily)
	mux.HandleFunc("GET /weekly", views.Weekly)

	return httpmw.Chain(mux,
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
		httpmw.WithAccessLog(opts.Logger),
	), nil
}
