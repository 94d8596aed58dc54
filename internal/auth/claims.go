package auth

// Claims is the decoded payload of a verified access token. Registered claims
// (issuer, audience, expiry) are consumed during verification and not carried
// here; only the identity and permission assertions survive.
//
// Permissions distinguishes between an absent claim (nil) and a present but
// empty claim (non-nil, zero length). The permission guard treats the former
// as a malformed token.
type Claims struct {
	Subject     string
	Permissions []string
}

// HasPermission reports whether the claim set grants the given permission.
// The empty permission is granted to any token that carries a permissions
// claim.
func (c *Claims) HasPermission(permission string) bool {
	if c.Permissions == nil {
		return false
	}
	if permission == "" {
		return true
	}
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// CheckPermissions verifies that the claim set grants the required
// permission. A claim set without a permissions field fails with a 400-class
// malformed token error; a claim set lacking the required permission fails
// with a 403.
func CheckPermissions(required string, claims *Claims) error {
	if claims == nil || claims.Permissions == nil {
		return ErrMalformedToken
	}
	if !claims.HasPermission(required) {
		return ErrPermissionDenied
	}
	return nil
}
