package dashboard

// Tier is the severity of a domain derived from days_left
type Tier string

// Severity tiers
const (
	TierUnknown  Tier = "unknown"
	TierCritical Tier = "critical"
	TierWarning  Tier = "warning"
	TierHealthy  Tier = "healthy"
)

// Thresholds are inclusive upper bounds in days
type Thresholds struct {
	Red    int `json:"red"`
	Yellow int `json:"yellow"`
}

// DefaultThresholds matches a 3 and 6 month warning window
var DefaultThresholds = Thresholds{Red: 90, Yellow: 184}

// Classify maps days_left to a tier; nil means unknown
func Classify(daysLeft *int, th Thresholds) Tier {
	if daysLeft == nil {
		return TierUnknown
	}
	switch d := *daysLeft; {
	case d <= th.Red:
		return TierCritical
	case d <= th.Yellow:
		return TierWarning
	default:
		return TierHealthy
	}
}

// Class returns the row CSS class
func (t Tier) Class() string {
	switch t {
	case TierCritical:
		return "status-red"
	case TierWarning:
		return "status-yellow"
	case TierHealthy:
		return "status-green"
	default:
		return "status-unknown"
	}
}

// Icon returns the status indicator
func (t Tier) Icon() string {
	switch t {
	case TierCritical:
		return "🔴"
	case TierWarning:
		return "🟡"
	case TierHealthy:
		return "🟢"
	default:
		return "⚪"
	}
}
