package auth

// User is the resolved identity of the authenticated session. The token
// lifecycle itself is owned by the remote auth subsystem; this core only
// consumes the identity to tag payment intents.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// MeResponse is the payload of the session-check endpoint
type MeResponse struct {
	User User `json:"user"`
}
