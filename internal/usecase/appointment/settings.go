package appointment

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	domain "github.com/BruksfildServices01/store-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/store-scheduler/internal/httperr"
	"github.com/BruksfildServices01/store-scheduler/internal/models"
	"github.com/BruksfildServices01/store-scheduler/internal/timezone"
)

// Settings are the scheduling knobs shared by the appointment use cases.
type Settings struct {
	DefaultTimezone string
	Policy          domain.Policy

	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// Location is the timezone appointment times of store are read and shown in.
func (s Settings) Location(store *models.Store) *time.Location {
	tz := ""
	if store != nil {
		tz = store.Timezone
	}
	return timezone.Location(tz, s.DefaultTimezone)
}

// nowIn is the current instant seen from loc.
func (s Settings) nowIn(loc *time.Location) time.Time {
	if s.Now != nil {
		return s.Now().In(loc)
	}
	return timezone.NowIn(loc)
}

var admissions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "appointment_admissions_total",
		Help: "Appointment creation attempts by outcome.",
	},
	[]string{"result"},
)

func init() {
	prometheus.MustRegister(admissions)
}

func observeAdmission(err error) {
	result := "admitted"
	if err != nil {
		result = "error"
		var be httperr.BusinessError
		if errors.As(err, &be) {
			result = be.Code
		}
	}
	admissions.WithLabelValues(result).Inc()
}
