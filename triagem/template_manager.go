package triagem

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"sync"

	"github.com/abiosoft/mold"
)

// TemplateManager manages templates using mold for layout inheritance
type TemplateManager struct {
	engine  mold.Engine
	funcMap template.FuncMap
	mu      sync.RWMutex
}

// NewTemplateManager creates a new template manager using mold
func NewTemplateManager() *TemplateManager {
	return &TemplateManager{}
}

// LoadFromFS loads layouts and pages from an embedded filesystem.
// Mold handles the layout/page relationship automatically.
// Custom functions must be registered with AddFuncMap before calling this,
// as mold only accepts them at engine creation.
func (tm *TemplateManager) LoadFromFS(fs embed.FS) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	opts := []mold.Option{
		mold.WithRoot("templates"),
		mold.WithLayout("layouts/main_layout.html"),
	}
	if tm.funcMap != nil {
		opts = append(opts, mold.WithFuncMap(tm.funcMap))
	}
	engine, err := mold.New(fs, opts...)
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	tm.engine = engine
	return nil
}

// Render renders a page template (mold will automatically handle layout inheritance)
func (tm *TemplateManager) Render(w io.Writer, pageName string, data interface{}) error {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	return tm.engine.Render(w, pageName, data)
}

// AddFuncMap adds custom template functions
func (tm *TemplateManager) AddFuncMap(funcMap template.FuncMap) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.funcMap == nil {
		tm.funcMap = make(template.FuncMap)
	}
	for k, v := range funcMap {
		tm.funcMap[k] = v
	}
}
