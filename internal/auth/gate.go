package auth

// RequireVerified denies sessions that did not present a valid token.
func RequireVerified(s Session) error {
	if !s.IsVerified() {
		return ErrUnauthenticated
	}
	return nil
}

// RequireNotSelf denies acting on the caller's own account.
func RequireNotSelf(s Session, targetID string) error {
	if err := RequireVerified(s); err != nil {
		return err
	}
	if targetID == s.UserID() {
		return ErrForbidden
	}
	return nil
}

// RequireRole allows the session when its role is one of roles.
func RequireRole(s Session, roles ...string) error {
	if err := RequireVerified(s); err != nil {
		return err
	}
	for _, role := range roles {
		if s.Role() == role {
			return nil
		}
	}
	return ErrForbidden
}
