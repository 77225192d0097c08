package schedules

import "github.com/voyara/voyara-client/internal/models"

// Action is an operator command a schedule may expose
type Action string

const (
	ActionStart    Action = "start"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

// cancelOccupancyThreshold is the occupancy percentage at or above which a
// pending schedule can no longer be cancelled from the UI.
const cancelOccupancyThreshold = 50

// The eligibility functions below are advisory only: they decide which
// actions to show, and the server re-validates every command against the
// authoritative state machine.

// CanStart reports whether the start action should be shown
func CanStart(s models.Schedule) bool {
	return s.Status == models.ScheduleStatusPending && s.BookingCount > 0
}

// CanComplete reports whether the complete action should be shown
func CanComplete(s models.Schedule) bool {
	return s.Status == models.ScheduleStatusOngoing
}

// CanCancel reports whether the cancel action should be shown
func CanCancel(s models.Schedule) bool {
	return s.Status == models.ScheduleStatusPending && s.OccupancyPercentage < cancelOccupancyThreshold
}

// AvailableActions lists the actions to expose for a schedule
func AvailableActions(s models.Schedule) []Action {
	var actions []Action
	if CanStart(s) {
		actions = append(actions, ActionStart)
	}
	if CanComplete(s) {
		actions = append(actions, ActionComplete)
	}
	if CanCancel(s) {
		actions = append(actions, ActionCancel)
	}
	return actions
}
