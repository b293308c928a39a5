package client

import "context"

// Decision is a Guard's verdict on rendering a page.
type Decision int

const (
	// Allow renders the page.
	Allow Decision = iota
	// RedirectLogin sends an unauthenticated user to the login page.
	RedirectLogin
	// RedirectDenied sends an authenticated user without the required role
	// to the access-denied page.
	RedirectDenied
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectDenied:
		return "redirect_denied"
	default:
		return "unknown"
	}
}

// Guard gates page rendering on the session. It blocks until the initial
// session restore has completed, so a protected page is never flashed before
// the redirect decision is known.
type Guard struct {
	session *Session
}

func NewGuard(session *Session) *Guard {
	return &Guard{session: session}
}

// Check decides whether the current session may see a page requiring one of
// the given roles. An empty role list means any authenticated user. It
// returns ctx.Err() if the session has not finished restoring before the
// context ends.
func (g *Guard) Check(ctx context.Context, requiredRoles ...string) (Decision, error) {
	select {
	case <-g.session.Ready():
	case <-ctx.Done():
		return RedirectLogin, ctx.Err()
	}

	identity := g.session.Identity()
	if identity == nil {
		return RedirectLogin, nil
	}

	if len(requiredRoles) == 0 {
		return Allow, nil
	}
	for _, role := range requiredRoles {
		if identity.Role == role {
			return Allow, nil
		}
	}
	return RedirectDenied, nil
}
