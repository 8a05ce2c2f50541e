package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// TransitionTargets are the only statuses an owner may set explicitly.
// Pending is reachable only as the creation default.
var TransitionTargets = []Status{StatusApproved, StatusRejected}

func InitialStatus() Status {
	return StatusPending
}

// ParseTarget validates a requested transition target.
func ParseTarget(raw string) (Status, error) {
	s := Status(raw)
	for _, t := range TransitionTargets {
		if s == t {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}

// TargetNames returns TransitionTargets as plain strings.
func TargetNames() []string {
	out := make([]string, 0, len(TransitionTargets))
	for _, t := range TransitionTargets {
		out = append(out, string(t))
	}
	return out
}

// Blocks reports whether an appointment in status s occupies its slot.
// Under the default policy only approved bookings block new requests.
func (s Status) Blocks(strict bool) bool {
	if s == StatusApproved {
		return true
	}
	return strict && s == StatusPending
}

// Booked reports whether s is rendered as a busy slot on public calendars.
func (s Status) Booked() bool {
	return s == StatusPending || s == StatusApproved
}
