package triagem

import (
	"errors"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/lewtec/triagem/internal/domain"
	"github.com/lewtec/triagem/internal/triage"
)

// App is the web triage surface. All engine and reviewer calls go
// through one mutex: the triage core is single-threaded by contract and
// the HTTP layer owns input serialization.
type App struct {
	Config   *Config
	Repo     domain.LibraryRepository
	Renderer domain.Renderer

	mu       sync.Mutex
	engine   *triage.Engine
	reviewer *triage.Reviewer
}

func NewApp(config *Config, repo domain.LibraryRepository, renderer domain.Renderer, source domain.Source, backend domain.DeletionBackend) *App {
	engine := triage.NewEngine(source, LogFeedback{})
	return &App{
		Config:   config,
		Repo:     repo,
		Renderer: renderer,
		engine:   engine,
		reviewer: triage.NewReviewer(engine.Store(), backend),
	}
}

func stringOr(str, or string) string {
	if str != "" {
		return str
	} else {
		return or
	}
}

func pathParts(path string) []string {
	parts := strings.Split(path, "/")
	if len(parts) > 0 && parts[0] == "" {
		parts = parts[1:]
	}
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// categories lists the fixed categories plus one per library year.
func (a *App) categories(r *http.Request) []domain.Category {
	ret := []domain.Category{domain.Screenshots, domain.Recents, domain.Random}
	years, err := a.Repo.Years(r.Context())
	if err != nil {
		log.Printf("error: while listing library years: %s", err)
		return ret
	}
	for _, y := range years {
		c, err := domain.YearCategory(y)
		if err != nil {
			continue
		}
		ret = append(ret, c)
	}
	return ret
}

func (a *App) GetHTTPHandler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFoundHandler().ServeHTTP(w, r)
			return
		}
		type categoryLink struct {
			Label string
			Slug  string
		}
		links := []categoryLink{}
		for _, c := range a.categories(r) {
			links = append(links, categoryLink{Label: c.Label(), Slug: c.String()})
		}
		stats, err := a.Repo.Stats(r.Context())
		if err != nil {
			a.serverError(w, "while loading library stats", err)
			return
		}
		err = RenderPage(w, "home.html", map[string]any{
			"Title":       "triagem",
			"Description": stringOr(a.Config.Meta.Description, "(No description provided)"),
			"Categories":  links,
			"Total":       stats.TotalImages,
		})
		if err != nil {
			log.Printf("error: while rendering home: %s", err)
		}
	})

	mux.HandleFunc("/triage/", func(w http.ResponseWriter, r *http.Request) {
		itemPath := pathParts(r.URL.Path)
		if len(itemPath) < 2 || len(itemPath) > 3 {
			http.NotFoundHandler().ServeHTTP(w, r)
			return
		}
		category, err := domain.ParseCategory(itemPath[1])
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if len(itemPath) == 3 && r.Method == http.MethodPost {
			switch itemPath[2] {
			case "decide":
				a.handleDecide(w, r, category)
			case "undo":
				a.handleUndo(w, r, category)
			default:
				http.NotFoundHandler().ServeHTTP(w, r)
			}
			return
		}

		a.mu.Lock()
		session, err := a.engine.SwitchCategory(r.Context(), category)
		if err != nil {
			a.mu.Unlock()
			a.serverError(w, "while opening triage session", err)
			return
		}
		img, ok := session.Current()
		data := map[string]any{
			"Title":     category.Label(),
			"Category":  category.String(),
			"Label":     category.Label(),
			"Cursor":    session.Cursor,
			"Total":     len(session.Images),
			"Kept":      session.Kept,
			"Deleted":   session.Deleted,
			"Remaining": session.Remaining(),
			"CanUndo":   a.engine.History().Len() > 0,
		}
		a.mu.Unlock()

		if !ok {
			http.Redirect(w, r, "/review/"+category.String(), http.StatusSeeOther)
			return
		}
		data["Image"] = img
		data["TakenAt"] = img.CreatedAt.Format("2006-01-02 15:04")
		if err := RenderPage(w, "triage.html", data); err != nil {
			log.Printf("error: while rendering triage page: %s", err)
		}
	})

	mux.HandleFunc("/review/", func(w http.ResponseWriter, r *http.Request) {
		itemPath := pathParts(r.URL.Path)
		if len(itemPath) < 2 || len(itemPath) > 3 {
			http.NotFoundHandler().ServeHTTP(w, r)
			return
		}
		category, err := domain.ParseCategory(itemPath[1])
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if len(itemPath) == 3 && r.Method == http.MethodPost {
			switch itemPath[2] {
			case "restore":
				a.handleRestore(w, r, category)
			case "confirm":
				a.handleConfirm(w, r, category)
			default:
				http.NotFoundHandler().ServeHTTP(w, r)
			}
			return
		}

		a.mu.Lock()
		session, ok := a.engine.Store().Get(category)
		if !ok {
			a.mu.Unlock()
			http.Redirect(w, r, "/triage/"+category.String(), http.StatusSeeOther)
			return
		}
		data := map[string]any{
			"Title":     "Review " + category.Label(),
			"Category":  category.String(),
			"Label":     category.Label(),
			"Kept":      session.Kept,
			"Deleted":   session.Deleted,
			"Staged":    session.StagedDeletions(),
			"Completed": session.Completed,
			"Remaining": session.Remaining(),
		}
		a.mu.Unlock()

		if err := RenderPage(w, "review.html", data); err != nil {
			log.Printf("error: while rendering review page: %s", err)
		}
	})

	mux.HandleFunc("/asset/", func(w http.ResponseWriter, r *http.Request) {
		itemPath := pathParts(r.URL.Path)
		if len(itemPath) != 2 {
			http.NotFoundHandler().ServeHTTP(w, r)
			return
		}
		hash := itemPath[1]
		img, err := a.Repo.GetBySHA256(r.Context(), hash)
		if err != nil {
			a.serverError(w, "while querying for asset "+hash, err)
			return
		}
		if img == nil {
			log.Printf("http: asset id %s was not found in the database", hash)
			http.NotFoundHandler().ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		if err := png.Encode(w, a.Renderer.Render(r.Context(), *img)); err != nil {
			log.Printf("error: http: while serving image asset: %s", err)
		}
	})

	mux.HandleFunc("/help", func(w http.ResponseWriter, r *http.Request) {
		var markdownBuilder strings.Builder
		fmt.Fprintf(&markdownBuilder, "# [<](/) Triage help\n")
		fmt.Fprintf(&markdownBuilder, "## Description\n")
		fmt.Fprintf(&markdownBuilder, "> %s\n\n", strings.ReplaceAll(stringOr(a.Config.Meta.Description, "(No description provided)"), "\n", "\n>"))
		fmt.Fprintf(&markdownBuilder, "## How it works\n\n")
		fmt.Fprintf(&markdownBuilder, "Pick a category and decide each image in turn: **keep** moves on, ")
		fmt.Fprintf(&markdownBuilder, "**delete** stages the image for later removal. Nothing is deleted ")
		fmt.Fprintf(&markdownBuilder, "until you confirm the staged list on the review page, and any staged ")
		fmt.Fprintf(&markdownBuilder, "image can be restored there first. **Undo** reverses your latest ")
		fmt.Fprintf(&markdownBuilder, "decision, whichever category it was made in.\n\n")
		fmt.Fprintf(&markdownBuilder, "## Categories\n\n")
		fmt.Fprintf(&markdownBuilder, "- **Screenshots** — images ingested with the screenshot source label\n")
		fmt.Fprintf(&markdownBuilder, "- **Recents** — the newest images across the whole library\n")
		fmt.Fprintf(&markdownBuilder, "- **Random** — a stable random sample of the library\n")
		fmt.Fprintf(&markdownBuilder, "- **Years** — every image taken in one year\n")
		err := RenderPage(w, "content.html", map[string]any{
			"Title":   "Help",
			"Content": markdownBuilder.String(),
		})
		if err != nil {
			log.Printf("error: while rendering help: %s", err)
		}
	})

	var handler http.Handler = mux
	handler = requestLogger(handler)
	return handler
}

func (a *App) handleDecide(w http.ResponseWriter, r *http.Request, category domain.Category) {
	var decision domain.Decision
	switch r.FormValue("decision") {
	case "keep":
		decision = domain.DecisionKeep
	case "delete":
		decision = domain.DecisionDelete
	default:
		http.Error(w, "decision must be keep or delete", http.StatusBadRequest)
		return
	}

	a.mu.Lock()
	exhausted, err := a.engine.Decide(category, decision)
	a.mu.Unlock()

	if errors.Is(err, domain.ErrNoSession) || errors.Is(err, domain.ErrExhausted) {
		http.Redirect(w, r, "/triage/"+category.String(), http.StatusSeeOther)
		return
	}
	if err != nil {
		a.serverError(w, "while committing decision", err)
		return
	}
	if exhausted {
		http.Redirect(w, r, "/review/"+category.String(), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/triage/"+category.String(), http.StatusSeeOther)
}

func (a *App) handleUndo(w http.ResponseWriter, r *http.Request, category domain.Category) {
	a.mu.Lock()
	entry, ok := a.engine.Undo()
	a.mu.Unlock()

	// Undo is global: it may have reverted a decision from another
	// category, so follow the entry back there.
	if ok {
		category = entry.Category
	}
	http.Redirect(w, r, "/triage/"+category.String(), http.StatusSeeOther)
}

func (a *App) handleRestore(w http.ResponseWriter, r *http.Request, category domain.Category) {
	hash := r.FormValue("sha256")
	if hash == "" {
		http.Error(w, "sha256 is required", http.StatusBadRequest)
		return
	}

	a.mu.Lock()
	err := a.reviewer.Restore(category, hash)
	a.mu.Unlock()

	if errors.Is(err, domain.ErrFlushPending) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		a.serverError(w, "while restoring staged image", err)
		return
	}
	http.Redirect(w, r, "/review/"+category.String(), http.StatusSeeOther)
}

func (a *App) handleConfirm(w http.ResponseWriter, r *http.Request, category domain.Category) {
	a.mu.Lock()
	n, err := a.reviewer.ConfirmPermanentDeletion(r.Context(), category)
	a.mu.Unlock()

	if err != nil {
		a.serverError(w, "while confirming permanent deletion", err)
		return
	}
	log.Printf("http: permanently deleted %d images from %s", n, category)
	http.Redirect(w, r, "/review/"+category.String(), http.StatusSeeOther)
}

func (a *App) serverError(w http.ResponseWriter, detail string, err error) {
	w.WriteHeader(http.StatusInternalServerError)
	log.Printf("error: %s: %s", detail, err)
}
