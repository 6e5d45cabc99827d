package engine

// String backed enums so catalog files and the run journal share one spelling.

type Phase string
type Stat string
type Milestone string
type RunState string

const (
	PhaseMorning   Phase = "morning"
	PhaseAfternoon Phase = "afternoon"
	PhaseEvening   Phase = "evening"
)

// AllPhases is the order of a day.
var AllPhases = []Phase{PhaseMorning, PhaseAfternoon, PhaseEvening}

const (
	StatNone           Stat = ""
	StatMoney          Stat = "money"
	StatHealth         Stat = "health"
	StatHope           Stat = "hope"
	StatCommunityTrust Stat = "community_trust"
	StatDay            Stat = "day"
)

var AllStats = []Stat{StatMoney, StatHealth, StatHope, StatCommunityTrust, StatDay}

const (
	MilestoneStableHousing Milestone = "stable_housing"
	MilestoneNPOContact    Milestone = "npo_contact"
)

var AllMilestones = []Milestone{MilestoneStableHousing, MilestoneNPOContact}

const (
	StateIdle                RunState = "idle"
	StateAwaitingEvent       RunState = "awaiting_event"
	StateAwaitingChoice      RunState = "awaiting_choice"
	StateAwaitingAcknowledge RunState = "awaiting_acknowledge"
	StateGameOver            RunState = "game_over"
)

func contains[T ~string](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func (p Phase) Validate() bool     { return contains(AllPhases, p) }
func (s Stat) Validate() bool      { return s == StatNone || contains(AllStats, s) }
func (m Milestone) Validate() bool { return m == "" || contains(AllMilestones, m) }

func ListPhases() []Phase { return append([]Phase{}, AllPhases...) }

// Next returns the phase that follows p. wrapped reports that the day rolled over.
func (p Phase) Next() (next Phase, wrapped bool) {
	switch p {
	case PhaseMorning:
		return PhaseAfternoon, false
	case PhaseAfternoon:
		return PhaseEvening, false
	default:
		return PhaseMorning, true
	}
}

func (p Phase) Title() string {
	switch p {
	case PhaseMorning:
		return "Morning"
	case PhaseAfternoon:
		return "Afternoon"
	case PhaseEvening:
		return "Evening"
	default:
		return string(p)
	}
}

// Label is the name used in consequence summaries.
func (s Stat) Label() string {
	switch s {
	case StatMoney:
		return "Money"
	case StatHealth:
		return "Health"
	case StatHope:
		return "Hope"
	case StatCommunityTrust:
		return "Community Trust"
	case StatDay:
		return "Day"
	default:
		return "None"
	}
}

func (m Milestone) Label() string {
	switch m {
	case MilestoneStableHousing:
		return "Stable Housing"
	case MilestoneNPOContact:
		return "NPO Contact"
	default:
		return string(m)
	}
}
