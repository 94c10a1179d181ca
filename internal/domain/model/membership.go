package model

// MembershipOutcome describes the result of a successful upgrade run.
type MembershipOutcome string

const (
	MembershipUpgraded      MembershipOutcome = "UPGRADED"
	MembershipAlreadyMember MembershipOutcome = "ALREADY_MEMBER"
)
