package dto

// MembershipRequest carries the upgrade form: the caller re-enters
// credentials together with the club passphrase.
type MembershipRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Secret   string `json:"secret"`
}

// MembershipResponse reports the upgrade outcome.
type MembershipResponse struct {
	Status string `json:"status"`
}
