package pipeline

// SingleUserAuthorizer admits exactly one Telegram user ID. A zero ID
// admits nobody.
type SingleUserAuthorizer struct {
	UserID int64
}

// IsAuthorized implements agent.Authorizer.
func (a SingleUserAuthorizer) IsAuthorized(senderID int64) bool {
	return a.UserID != 0 && senderID == a.UserID
}
