// Package web serves the HTML pages: login, registration, the dashboard and
// one form page per formula endpoint.
package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"strconv"

	"physcalc/internal/formula"
	"physcalc/internal/observability"
	"physcalc/internal/session"
	"physcalc/internal/storage"

	"github.com/yuin/goldmark"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// Accounts is the subset of the account store the pages need.
type Accounts interface {
	Register(ctx context.Context, username, password string) (*storage.User, error)
	Authenticate(ctx context.Context, username, password string) (*storage.User, error)
}

// Pages holds the parsed templates and the collaborators of the HTML routes.
type Pages struct {
	proc     *formula.Processor
	accounts Accounts
	sessions *session.Manager

	templates    map[string]*template.Template
	descriptions map[string]template.HTML
	groups       []categoryGroup
}

type categoryGroup struct {
	Category  formula.Category
	Endpoints []formula.Endpoint
}

var categoryOrder = []formula.Category{
	formula.Mechanics,
	formula.Waves,
	formula.Thermodynamic,
	formula.Conversion,
	formula.Finance,
}

var funcs = template.FuncMap{
	"num": formatNumber,
}

// New parses the templates and renders every endpoint description once.
func New(proc *formula.Processor, accounts Accounts, sessions *session.Manager) (*Pages, error) {
	p := &Pages{
		proc:         proc,
		accounts:     accounts,
		sessions:     sessions,
		templates:    make(map[string]*template.Template),
		descriptions: make(map[string]template.HTML),
	}

	for _, page := range []string{"login", "register", "dashboard", "formula"} {
		t, err := template.New(page).Option("missingkey=zero").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", page, err)
		}
		p.templates[page] = t
	}

	md := goldmark.New()
	byCategory := make(map[formula.Category][]formula.Endpoint)
	for _, ep := range proc.Endpoints() {
		var buf bytes.Buffer
		if err := md.Convert([]byte(ep.Description), &buf); err != nil {
			return nil, fmt.Errorf("render description of %s: %w", ep.Name, err)
		}
		// goldmark escapes raw HTML unless WithUnsafe is set
		p.descriptions[ep.Name] = template.HTML(buf.String())
		byCategory[ep.Category] = append(byCategory[ep.Category], ep)
	}
	for _, c := range categoryOrder {
		if eps := byCategory[c]; len(eps) > 0 {
			p.groups = append(p.groups, categoryGroup{Category: c, Endpoints: eps})
		}
	}

	return p, nil
}

type pageData struct {
	Title    string
	Username string
	Flash    string
	Error    string
	Form     map[string]string
	Groups   []categoryGroup
	Formula  *formulaView
}

type formulaView struct {
	Name          string
	Title         string
	Description   template.HTML
	SelectorField string
	SelectorLabel string
	Selector      string
	Variants      []formula.Variant
	Params        []paramView
	Result        *formula.Result
}

type paramView struct {
	Name        string
	Label       string
	Unit        string
	Value       string
	Optional    bool
	Placeholder string
}

func (p *Pages) render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	var buf bytes.Buffer
	if err := p.templates[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		observability.LoggerWithTrace(r.Context()).Error("render page",
			zap.String("page", page),
			zap.Error(err),
			zap.String("request_id", observability.RequestIDFromContext(r.Context())),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// formatNumber prints v without exponent notation in the usual range.
func formatNumber(v float64) string {
	a := math.Abs(v)
	if a == 0 || (a >= 1e-4 && a < 1e15) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}
