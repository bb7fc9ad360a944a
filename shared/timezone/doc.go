// Package timezone pins the process to the salon's wall clock.
//
// Working hours, slots and reservations are stored as HH:MM times and YYYY-MM-DD dates without
// an offset. They are read as local times in the zone named by APP_TIMEZONE, which is loaded once
// when the package is imported. Callers take the current time from Now so that "today" and
// "already started" agree with the front desk, not with the host clock.
package timezone
