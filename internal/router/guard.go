package router

import (
	"context"
	"sync/atomic"

	"github.com/khadamat/webgate/internal/domain"
	"github.com/khadamat/webgate/pkg/logger"
)

// Action is the outcome of a guard evaluation.
type Action int

const (
	// ActionProceed lets the navigation commit.
	ActionProceed Action = iota
	// ActionRedirect sends the navigation elsewhere.
	ActionRedirect
	// ActionStale marks an evaluation superseded by a newer attempt;
	// its result must be discarded, not applied.
	ActionStale
)

// Decision is the guard's verdict for one navigation attempt.
type Decision struct {
	Action Action
	Target string // set when Action == ActionRedirect
}

// SessionChecker is the slice of the session store the guard needs.
type SessionChecker interface {
	CheckAuth(ctx context.Context) bool
	IsAuthenticated() bool
	IsAdmin() bool
}

// LanguageSetter is the slice of the locale store the guard needs.
type LanguageSetter interface {
	SetLanguage(lang string)
}

// Guard evaluates every navigation attempt: it synchronizes the locale
// from the path, verifies the session for protected routes and decides
// proceed or redirect. Evaluations are tagged with a monotonically
// increasing attempt counter; a result that resolves after a newer
// attempt has started is reported stale instead of being applied.
type Guard struct {
	locale  LanguageSetter
	session SessionChecker
	log     *logger.Logger
	attempt atomic.Uint64
}

// NewGuard builds the guard.
func NewGuard(locale LanguageSetter, session SessionChecker, log *logger.Logger) *Guard {
	if log == nil {
		log = logger.Nop()
	}
	return &Guard{locale: locale, session: session, log: log}
}

// Evaluate runs the transition rules in strict order for the target
// path and returns the decision. Rules:
//
//  1. a recognized language segment updates the locale store
//  2. requiresAuth: session verification, else redirect to login with
//     the original destination preserved
//  3. requiresAdmin: role check, else redirect to the language home
//  4. requiresGuest: authenticated users are sent to the dashboard
//  5. otherwise proceed
func (g *Guard) Evaluate(ctx context.Context, path string) Decision {
	attempt := g.attempt.Add(1)
	intent := Resolve(path)

	if intent.Lang != "" {
		g.locale.SetLanguage(intent.Lang)
	}

	// Redirect targets without a resolved language default to English.
	lang := intent.Lang
	if lang == "" {
		lang = domain.LangEnglish
	}

	if intent.Meta.RequiresAuth {
		ok := g.session.CheckAuth(ctx)
		if g.superseded(attempt) {
			g.log.Debug().Str("path", path).Msg("guard evaluation superseded, discarding")
			return Decision{Action: ActionStale}
		}
		if !ok {
			target := "/" + lang + "/admin/login?redirect=" + intent.Path
			g.log.Info().Str("path", path).Str("target", target).Msg("unauthenticated, redirecting to login")
			return Decision{Action: ActionRedirect, Target: target}
		}
		if intent.Meta.RequiresAdmin && !g.session.IsAdmin() {
			g.log.Info().Str("path", path).Msg("missing admin role, redirecting home")
			return Decision{Action: ActionRedirect, Target: "/" + lang}
		}
	}

	if intent.Meta.RequiresGuest && g.session.IsAuthenticated() {
		return Decision{Action: ActionRedirect, Target: "/" + lang + "/admin"}
	}

	return Decision{Action: ActionProceed}
}

// superseded reports whether a newer attempt has started since attempt.
func (g *Guard) superseded(attempt uint64) bool {
	return g.attempt.Load() != attempt
}
