package web

import (
	"errors"
	"net/http"
	"strconv"

	"physcalc/internal/account"
	"physcalc/internal/formula"
	"physcalc/internal/observability"
	"physcalc/internal/session"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Messages shown on the login and registration pages.
const (
	MsgInvalidCredentials = "Invalid Credentials"
	MsgRegistered         = "Registration Successful! Please log in."
	MsgUsernameExists     = "Username already exists."
	MsgMissingFields      = "Username and password are required."
	MsgPasswordTooLong    = "Password must be at most 72 bytes long."
	msgTryAgain           = "Something went wrong. Please try again."
)

// legacyAliases maps old page paths that no longer match an endpoint name.
var legacyAliases = map[string]string{
	"litre_conversion":         "/formulas/volume_conversion",
	"basic_physics_conversion": "/dashboard",
}

// Routes registers the HTML routes on r.
func (p *Pages) Routes(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusFound)
	})

	r.Get("/login", p.loginForm)
	r.Post("/login", p.login)
	r.Get("/register", p.registerForm)
	r.Post("/register", p.register)
	r.Get("/logout", p.logout)

	r.Group(func(r chi.Router) {
		r.Use(p.sessions.RequireLogin)
		r.Get("/dashboard", p.dashboard)
		r.Get("/formulas/{name}", p.formulaPage)
		r.Post("/formulas/{name}", p.formulaPage)
	})

	// 308 keeps the method, so old form posts still reach the calculator
	for _, ep := range p.proc.Endpoints() {
		r.Handle("/"+ep.Name, http.RedirectHandler("/formulas/"+ep.Name, http.StatusPermanentRedirect))
	}
	for old, target := range legacyAliases {
		r.Handle("/"+old, http.RedirectHandler(target, http.StatusPermanentRedirect))
	}
}

func (p *Pages) loginForm(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusOK, "login", pageData{
		Title: "Log in",
		Flash: p.sessions.PopFlash(w, r),
	})
}

func (p *Pages) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	if err := r.ParseForm(); err != nil {
		p.render(w, r, http.StatusBadRequest, "login", pageData{Title: "Log in", Error: MsgInvalidCredentials})
		return
	}
	username := r.PostForm.Get("username")
	form := map[string]string{"username": username}

	user, err := p.accounts.Authenticate(ctx, username, r.PostForm.Get("password"))
	if err != nil {
		msg := MsgInvalidCredentials
		if !errors.Is(err, account.ErrInvalidCredentials) {
			logger.Error("login failed", zap.Error(err))
			msg = msgTryAgain
		}
		p.render(w, r, http.StatusOK, "login", pageData{Title: "Log in", Error: msg, Form: form})
		return
	}

	if err := p.sessions.Issue(w, user.Username); err != nil {
		logger.Error("issue session", zap.Error(err))
		p.render(w, r, http.StatusInternalServerError, "login", pageData{Title: "Log in", Error: msgTryAgain, Form: form})
		return
	}

	logger.Info("user logged in", zap.String("username", user.Username))
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (p *Pages) registerForm(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusOK, "register", pageData{Title: "Register"})
}

func (p *Pages) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		p.render(w, r, http.StatusBadRequest, "register", pageData{Title: "Register", Error: MsgMissingFields})
		return
	}
	username := r.PostForm.Get("username")

	_, err := p.accounts.Register(ctx, username, r.PostForm.Get("password"))
	if err != nil {
		var msg string
		switch {
		case errors.Is(err, account.ErrUsernameExists):
			msg = MsgUsernameExists
		case errors.Is(err, account.ErrMissingFields):
			msg = MsgMissingFields
		case errors.Is(err, account.ErrPasswordTooLong):
			msg = MsgPasswordTooLong
		default:
			observability.LoggerWithTrace(ctx).Error("registration failed", zap.Error(err))
			msg = msgTryAgain
		}
		p.render(w, r, http.StatusOK, "register", pageData{
			Title: "Register",
			Error: msg,
			Form:  map[string]string{"username": username},
		})
		return
	}

	p.sessions.Flash(w, MsgRegistered)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (p *Pages) logout(w http.ResponseWriter, r *http.Request) {
	p.sessions.Clear(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (p *Pages) dashboard(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusOK, "dashboard", pageData{
		Title:    "Dashboard",
		Username: session.UsernameFromContext(r.Context()),
		Groups:   p.groups,
	})
}

// formulaPage renders the empty form on GET and the form with its result or
// error on POST.
func (p *Pages) formulaPage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ep, ok := p.proc.Endpoint(name)
	if !ok {
		http.NotFound(w, r)
		return
	}

	data := pageData{
		Title:    ep.Title,
		Username: session.UsernameFromContext(r.Context()),
	}

	var (
		selector string
		values   map[string]string
		result   *formula.Result
	)

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			data.Error = ep.FailureMessage()
		} else {
			values = make(map[string]string, len(r.PostForm))
			for k := range r.PostForm {
				values[k] = r.PostForm.Get(k)
			}
			if ep.HasSelector() {
				selector = values[ep.SelectorField]
			}

			res := p.proc.Evaluate(r.Context(), name, formula.Request{Selector: selector, Inputs: values})
			if res.OK() {
				result = &res
			} else {
				data.Error = res.Message
			}
		}
	} else if ep.HasSelector() {
		selector = r.URL.Query().Get(ep.SelectorField)
	}

	data.Formula = p.view(ep, selector, values, result)
	p.render(w, r, http.StatusOK, "formula", data)
}

// view picks the variant whose params are shown. An unknown selector falls
// back to the default so the form stays usable.
func (p *Pages) view(ep formula.Endpoint, selector string, values map[string]string, result *formula.Result) *formulaView {
	v := &formulaView{
		Name:          ep.Name,
		Title:         ep.Title,
		Description:   p.descriptions[ep.Name],
		SelectorField: ep.SelectorField,
		SelectorLabel: ep.SelectorLabel,
		Variants:      ep.Variants,
		Result:        result,
	}

	variant := ep.Variants[0]
	if ep.HasSelector() {
		want := selector
		if want == "" {
			want = ep.DefaultVariant
		}
		for _, candidate := range ep.Variants {
			if candidate.Key == want {
				variant = candidate
				break
			}
		}
		v.Selector = variant.Key
	}

	for _, prm := range variant.Params {
		pv := paramView{
			Name:     prm.Name,
			Label:    prm.Label,
			Unit:     prm.Unit,
			Value:    values[prm.Name],
			Optional: prm.Optional,
		}
		if prm.Optional {
			pv.Placeholder = "default " + strconv.FormatFloat(prm.Default, 'g', -1, 64)
		}
		v.Params = append(v.Params, pv)
	}

	return v
}
