package domain

// AccessPolicy is the declarative requirement a console route imposes.
type AccessPolicy string

const (
	// AccessPublic routes require no session at all.
	AccessPublic AccessPolicy = "public"
	// AccessAuthenticated routes require a valid, non-expired, approved
	// USER session. Admins are bounced to their own surface.
	AccessAuthenticated AccessPolicy = "authenticated"
	// AccessAdmin routes require a valid, non-expired ADMIN session.
	AccessAdmin AccessPolicy = "authenticated-admin"
)

// DeniedReason tags why the guard refused a request. Reasons feed logs,
// metrics and the audit trail only; the redirect target is the sole
// externally observable effect.
type DeniedReason string

const (
	ReasonNoToken          DeniedReason = "no_token"
	ReasonMalformedToken   DeniedReason = "malformed_token"
	ReasonExpiredToken     DeniedReason = "expired_token"
	ReasonWrongSurface     DeniedReason = "wrong_surface"
	ReasonNotApproved      DeniedReason = "not_approved"
	ReasonInsufficientRole DeniedReason = "insufficient_role"
)

// Console route targets the guard redirects to.
const (
	PathLogin           = "/auth/login"
	PathPendingApproval = "/auth/pending-approval"
	PathUserHome        = "/dashboard"
	PathAdminHome       = "/admin/dashboard"
)

// Decision is the outcome of a single guard evaluation.
type Decision struct {
	Authorized bool
	Reason     DeniedReason
	RedirectTo string
	// Claims is populated only when Authorized is true.
	Claims *Claims
}

// Authorized returns the allow decision carrying the evaluated claims.
func Authorized(claims *Claims) Decision {
	return Decision{Authorized: true, Claims: claims}
}

// Denied returns a refusal with the reason and the view the caller should
// be redirected to.
func Denied(reason DeniedReason, redirectTo string) Decision {
	return Decision{Reason: reason, RedirectTo: redirectTo}
}
