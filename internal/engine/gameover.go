package engine

// GameOverReason names the condition that ended a run.
type GameOverReason string

const (
	ReasonHopeLost     GameOverReason = "hope"
	ReasonHealthFailed GameOverReason = "health"
	ReasonDebt         GameOverReason = "debt"
)

// DebtLimit is the lowest balance a player may carry.
const DebtLimit = -1000.0

func (r GameOverReason) Message() string {
	switch r {
	case ReasonHopeLost:
		return "You lost all hope."
	case ReasonHealthFailed:
		return "Your health failed."
	case ReasonDebt:
		return "You fell too deep into debt."
	default:
		return ""
	}
}

// GameOver describes a finished run.
type GameOver struct {
	Reason GameOverReason
	Day    int
	Ledger Ledger
}

// CheckGameOver checks hope, then health, then debt; the first hit wins.
func CheckGameOver(l Ledger) (GameOverReason, bool) {
	switch {
	case l.Hope <= 0:
		return ReasonHopeLost, true
	case l.Health <= 0:
		return ReasonHealthFailed, true
	case l.Money < DebtLimit:
		return ReasonDebt, true
	default:
		return "", false
	}
}
