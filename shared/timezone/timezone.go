package timezone

import (
	"salon/config"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

var location atomic.Pointer[time.Location]

func init() {
	name := config.Get().App.Timezone

	if err := SetLocation(name); err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Unknown timezone, falling back to UTC. Use an IANA name such as Europe/Rome")
	}
}

// SetLocation loads the salon timezone by IANA name. An empty name selects UTC, and so does an
// unknown one, in which case the lookup error is returned.
func SetLocation(name string) error {
	if name == "" {
		location.Store(time.UTC)

		return nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		location.Store(time.UTC)

		return err //nolint:wrapcheck
	}

	location.Store(loc)
	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")

	return nil
}

// Location returns the salon timezone, UTC until one is set.
func Location() *time.Location {
	if loc := location.Load(); loc != nil {
		return loc
	}

	return time.UTC
}

// Now returns the current time in the salon timezone.
func Now() time.Time {
	return time.Now().In(Location())
}

// Format renders t in the salon timezone.
func Format(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}
