package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/bcnelson/netinventory/internal/domain"
	"github.com/bcnelson/netinventory/internal/logger"
	"github.com/bcnelson/netinventory/internal/storage"
	"github.com/bcnelson/netinventory/internal/version"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

//go:embed templates/* static/*
var content embed.FS

// Server holds dependencies for web handlers.
type Server struct {
	store     storage.Storage
	info      version.Info
	readOnly  bool
	templates map[string]*template.Template
	log       zerolog.Logger
}

// NewRouter creates a new web router serving the HTML pages.
// In read-only mode the inventory page hides the add form and delete buttons.
func NewRouter(store storage.Storage, info version.Info, readOnly bool) http.Handler {
	s := &Server{
		store:    store,
		info:     info,
		readOnly: readOnly,
		log:      logger.WithComponent("web"),
	}

	// Parse all templates
	s.templates = s.parseTemplates()

	r := chi.NewRouter()

	// Static files
	staticFS, _ := fs.Sub(content, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	r.Get("/", s.handleIndex)
	r.Get("/inventory", s.handleInventory)

	return r
}

// parseTemplates parses all templates with custom functions.
func (s *Server) parseTemplates() map[string]*template.Template {
	funcMap := template.FuncMap{
		"deref": domain.StringValue,
		"lower": strings.ToLower,
	}

	templates := make(map[string]*template.Template)

	baseContent, _ := content.ReadFile("templates/base.html")

	// Parse each page template separately with the base
	pageFiles, _ := fs.Glob(content, "templates/pages/*.html")
	for _, pagePath := range pageFiles {
		pageName := strings.TrimSuffix(filepath.Base(pagePath), ".html")

		pageContent, _ := content.ReadFile(pagePath)

		tmpl, err := template.New(pageName).Funcs(funcMap).Parse(string(baseContent) + string(pageContent))
		if err != nil {
			panic("failed to parse template " + pageName + ": " + err.Error())
		}

		templates[pageName] = tmpl
	}

	return templates
}

// PageData holds common data passed to all page templates.
type PageData struct {
	Title    string
	Active   string // Current nav item
	Version  version.Info
	ReadOnly bool
	Content  any
}

// InventoryContent is the inventory page's Content.
type InventoryContent struct {
	Items    []*domain.Equipment
	Location string
	VLAN     string
}

func (s *Server) render(w http.ResponseWriter, page string, data PageData) {
	tmpl, ok := s.templates[page]
	if !ok {
		s.log.Error().Str("page", page).Msg("template not found")
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	data.Version = s.info
	data.ReadOnly = s.readOnly

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		s.log.Error().Err(err).Str("page", page).Msg("rendering template")
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, "index", PageData{Title: "Home", Active: "home"})
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	location, vlan := q.Get("location"), q.Get("vlan")

	items, err := s.store.ListEquipment(r.Context(), domain.EquipmentFilter{
		Location: domain.StringPtr(location),
		VLAN:     domain.StringPtr(vlan),
	})
	if err != nil {
		s.log.Error().Err(err).Msg("listing equipment")
		http.Error(w, "failed to load equipment", http.StatusInternalServerError)
		return
	}

	s.render(w, "inventory", PageData{
		Title:  "Inventory",
		Active: "inventory",
		Content: InventoryContent{
			Items:    items,
			Location: location,
			VLAN:     vlan,
		},
	})
}
