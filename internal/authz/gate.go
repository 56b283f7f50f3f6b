package authz

import "strings"

const (
	// DashboardPath is the protected area and where logged-in users land.
	DashboardPath = "/dashboard"
	LoginPath     = "/login"
)

type Kind int

const (
	Allow Kind = iota
	Deny
	Redirect
)

type Decision struct {
	Kind   Kind
	Target string
}

// Authorize decides how a navigation should proceed. It is a pure function of
// the session flag and the requested path; the caller routes Deny to the login
// page and performs any Redirect.
func Authorize(isLoggedIn bool, path string) Decision {
	if strings.HasPrefix(path, DashboardPath) {
		if isLoggedIn {
			return Decision{Kind: Allow}
		}
		return Decision{Kind: Deny}
	}

	if isLoggedIn {
		return Decision{Kind: Redirect, Target: DashboardPath}
	}

	return Decision{Kind: Allow}
}
