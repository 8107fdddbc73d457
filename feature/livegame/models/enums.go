package models

// TeamNumber identifies a side of a game.
type TeamNumber string

const (
	TeamOne TeamNumber = "one"
	TeamTwo TeamNumber = "two"
)

// Valid reports whether t names a side.
func (t TeamNumber) Valid() bool {
	return t == TeamOne || t == TeamTwo
}

// Other returns the opposing side.
func (t TeamNumber) Other() TeamNumber {
	if t == TeamOne {
		return TeamTwo
	}
	return TeamOne
}

// GameStatus is a side's lifecycle status for a game.
type GameStatus string

const (
	GameActive   GameStatus = "active"
	GameDefined  GameStatus = "defined"
	GameComplete GameStatus = "complete"
)

// PointStatus is a side's lifecycle status for a point.
type PointStatus string

const (
	PointActive   PointStatus = "active"
	PointFuture   PointStatus = "future"
	PointComplete PointStatus = "complete"
)

// ActionType enumerates the in-game events.
type ActionType string

const (
	ActionPull         ActionType = "Pull"
	ActionCatch        ActionType = "Catch"
	ActionDrop         ActionType = "Drop"
	ActionThrowaway    ActionType = "Throwaway"
	ActionBlock        ActionType = "Block"
	ActionPickup       ActionType = "Pickup"
	ActionTimeout      ActionType = "Timeout"
	ActionSubstitution ActionType = "Substitution"
	ActionCallOnField  ActionType = "CallOnField"
	ActionStall        ActionType = "Stall"
	ActionTeamOneScore ActionType = "TeamOneScore"
	ActionTeamTwoScore ActionType = "TeamTwoScore"
)

var actionTypes = map[ActionType]struct{}{
	ActionPull: {}, ActionCatch: {}, ActionDrop: {}, ActionThrowaway: {},
	ActionBlock: {}, ActionPickup: {}, ActionTimeout: {}, ActionSubstitution: {},
	ActionCallOnField: {}, ActionStall: {}, ActionTeamOneScore: {}, ActionTeamTwoScore: {},
}

// Valid reports whether a is a known action type.
func (a ActionType) Valid() bool {
	_, ok := actionTypes[a]
	return ok
}

// IsScore reports whether a scores a point for either side.
func (a ActionType) IsScore() bool {
	return a == ActionTeamOneScore || a == ActionTeamTwoScore
}

// ScoringTeam returns the side credited by a scoring action.
func (a ActionType) ScoringTeam() (TeamNumber, bool) {
	switch a {
	case ActionTeamOneScore:
		return TeamOne, true
	case ActionTeamTwoScore:
		return TeamTwo, true
	default:
		return "", false
	}
}
