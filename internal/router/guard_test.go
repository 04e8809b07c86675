package router

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test fakes
// ──────────────────────────────────────────────────────────────────────────────

// sessionFake scripts the session answers and counts verification calls.
type sessionFake struct {
	authenticated bool
	admin         bool
	checkCalls    int
	// onCheck runs inside CheckAuth, before the result is returned. Used
	// to start a competing evaluation mid-flight.
	onCheck func()
}

func (s *sessionFake) CheckAuth(ctx context.Context) bool {
	s.checkCalls++
	if s.onCheck != nil {
		s.onCheck()
	}
	return s.authenticated
}

func (s *sessionFake) IsAuthenticated() bool { return s.authenticated }
func (s *sessionFake) IsAdmin() bool         { return s.admin }

// localeFake records language updates.
type localeFake struct {
	set []string
}

func (l *localeFake) SetLanguage(lang string) { l.set = append(l.set, lang) }

func newGuard(session *sessionFake) (*Guard, *localeFake) {
	loc := &localeFake{}
	return NewGuard(loc, session, nil), loc
}

// ──────────────────────────────────────────────────────────────────────────────
// Transition rules
// ──────────────────────────────────────────────────────────────────────────────

func TestEvaluate_PublicRouteProceedsWithoutVerification(t *testing.T) {
	sess := &sessionFake{}
	g, loc := newGuard(sess)

	d := g.Evaluate(context.Background(), "/ar/services/42")

	assert.Equal(t, ActionProceed, d.Action)
	assert.Equal(t, []string{"ar"}, loc.set, "the path's language segment drives the locale")
	assert.Zero(t, sess.checkCalls, "public routes must not hit the backend")
}

func TestEvaluate_ProtectedRouteWithoutSessionRedirectsToLogin(t *testing.T) {
	sess := &sessionFake{authenticated: false}
	g, _ := newGuard(sess)

	d := g.Evaluate(context.Background(), "/en/admin")

	require.Equal(t, ActionRedirect, d.Action)
	assert.Equal(t, "/en/admin/login?redirect=/en/admin", d.Target,
		"the original destination must survive the round trip through login")
	assert.Equal(t, 1, sess.checkCalls)
}

func TestEvaluate_RedirectKeepsQueryOfOriginalTarget(t *testing.T) {
	sess := &sessionFake{}
	g, _ := newGuard(sess)

	d := g.Evaluate(context.Background(), "/ar/admin/requests?status=pending")

	require.Equal(t, ActionRedirect, d.Action)
	assert.Equal(t, "/ar/admin/login?redirect=/ar/admin/requests?status=pending", d.Target)
}

func TestEvaluate_AuthenticatedNonAdminIsSentHome(t *testing.T) {
	sess := &sessionFake{authenticated: true, admin: false}
	g, _ := newGuard(sess)

	d := g.Evaluate(context.Background(), "/ar/admin/services")

	require.Equal(t, ActionRedirect, d.Action)
	assert.Equal(t, "/ar", d.Target, "redirect stays in the visitor's language")
}

func TestEvaluate_AdminProceeds(t *testing.T) {
	sess := &sessionFake{authenticated: true, admin: true}
	g, _ := newGuard(sess)

	d := g.Evaluate(context.Background(), "/en/admin/requests/7")

	assert.Equal(t, ActionProceed, d.Action)
}

func TestEvaluate_GuestRouteBouncesAuthenticatedUser(t *testing.T) {
	sess := &sessionFake{authenticated: true, admin: true}
	g, _ := newGuard(sess)

	d := g.Evaluate(context.Background(), "/en/admin/login")

	require.Equal(t, ActionRedirect, d.Action)
	assert.Equal(t, "/en/admin", d.Target)
	assert.Zero(t, sess.checkCalls, "the guest rule needs no fresh verification")
}

func TestEvaluate_GuestRouteLetsAnonymousThrough(t *testing.T) {
	sess := &sessionFake{}
	g, _ := newGuard(sess)

	d := g.Evaluate(context.Background(), "/ar/admin/login")

	assert.Equal(t, ActionProceed, d.Action)
}

func TestEvaluate_UnrecognizedLanguageLeavesLocaleAlone(t *testing.T) {
	sess := &sessionFake{}
	g, loc := newGuard(sess)

	d := g.Evaluate(context.Background(), "/fr/services")

	assert.Equal(t, ActionProceed, d.Action, "unknown paths fall through to the not-found view")
	assert.Empty(t, loc.set, "an unrecognized language must not mutate the locale")
}

func TestEvaluate_NotFoundUnderKnownLanguageDoesNotBindLanguage(t *testing.T) {
	sess := &sessionFake{}
	g, loc := newGuard(sess)

	d := g.Evaluate(context.Background(), "/en/no/such/page")

	assert.Equal(t, ActionProceed, d.Action)
	assert.Empty(t, loc.set)
}

// ──────────────────────────────────────────────────────────────────────────────
// Attempt sequencing
// ──────────────────────────────────────────────────────────────────────────────

func TestEvaluate_SupersededVerificationIsDiscarded(t *testing.T) {
	sess := &sessionFake{authenticated: true, admin: true}
	g, _ := newGuard(sess)

	var second Decision
	sess.onCheck = func() {
		// A newer navigation starts while the first verification is in
		// flight. It must win; the first result is stale.
		sess.onCheck = nil
		second = g.Evaluate(context.Background(), "/en/admin/requests")
	}

	first := g.Evaluate(context.Background(), "/en/admin")

	assert.Equal(t, ActionStale, first.Action, "the superseded attempt must not be applied")
	assert.Equal(t, ActionProceed, second.Action, "the newest attempt decides")
	assert.Equal(t, 2, sess.checkCalls)
}
