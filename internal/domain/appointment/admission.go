package appointment

import "time"

// Policy selects how strictly admission is evaluated.
//
// The default policy only checks that the start instant sits inside a
// window and that it does not fall inside an approved booking. Strict
// additionally requires the full span to fit a window, treats pending
// bookings as blocking and uses full interval intersection.
type Policy struct {
	Strict bool
}

// Booking is the slice of an existing appointment the engine needs.
type Booking struct {
	ID              uint
	Start           time.Time
	DurationMinutes int
	Status          Status
}

func (b Booking) End() time.Time {
	return b.Start.Add(minutes(b.DurationMinutes))
}

type AdmissionRequest struct {
	Start           time.Time
	DurationMinutes int
	Now             time.Time
	Windows         []Window
	Existing        []Booking
}

// Admit decides whether a proposed booking may be created.
// It returns nil, or one of ErrInvalidDuration, ErrInPast,
// ErrOutsideAvailability, ErrSlotBooked.
func Admit(req AdmissionRequest, p Policy) error {
	if req.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if req.Start.Before(req.Now) {
		return ErrInPast
	}

	d := minutes(req.DurationMinutes)
	if !WithinAvailability(req.Windows, req.Start, d, p.Strict) {
		return ErrOutsideAvailability
	}
	if _, ok := FindConflict(req.Existing, req.Start, d, p); ok {
		return ErrSlotBooked
	}
	return nil
}

// FindConflict returns the first existing booking that blocks a booking
// of length d starting at start.
//
// Default policy: an approved booking E blocks when E.start <= start < E.end.
// Strict policy: an approved or pending E blocks when [start, start+d) and
// [E.start, E.end) intersect.
func FindConflict(existing []Booking, start time.Time, d time.Duration, p Policy) (Booking, bool) {
	end := start.Add(d)
	for _, e := range existing {
		if !e.Status.Blocks(p.Strict) {
			continue
		}
		if p.Strict {
			if start.Before(e.End()) && e.Start.Before(end) {
				return e, true
			}
			continue
		}
		if !start.Before(e.Start) && start.Before(e.End()) {
			return e, true
		}
	}
	return Booking{}, false
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
