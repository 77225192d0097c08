// Package schedules relays departure-schedule commands to the backend.
// The server owns the schedule state machine; this client only mirrors
// advisory eligibility for showing actions and trusts server responses
// fully.
package schedules

import (
	"context"
	"fmt"
	"net/url"

	"github.com/voyara/voyara-client/internal/api"
	"github.com/voyara/voyara-client/internal/models"
)

// Client calls the schedule endpoints
type Client struct {
	api *api.Client
}

// NewClient creates a schedule client on top of the shared API client
func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// ListForTour fetches all departure schedules of a tour
func (c *Client) ListForTour(ctx context.Context, tourID string) ([]models.Schedule, error) {
	var schedules []models.Schedule
	path := "/admin/tours/" + url.PathEscape(tourID) + "/schedules"
	if err := c.api.Get(ctx, path, &schedules); err != nil {
		return nil, fmt.Errorf("failed to list schedules for tour %s: %w", tourID, err)
	}
	return schedules, nil
}

// Create adds a new departure schedule via the admin form
func (c *Client) Create(ctx context.Context, req models.CreateScheduleRequest) (models.Schedule, error) {
	if err := req.Validate(); err != nil {
		return models.Schedule{}, fmt.Errorf("invalid schedule: %w", err)
	}
	var created models.Schedule
	if err := c.api.Post(ctx, "/schedules", req, &created); err != nil {
		return models.Schedule{}, fmt.Errorf("failed to create schedule: %w", err)
	}
	return created, nil
}

// Start relays the start command for a schedule
func (c *Client) Start(ctx context.Context, tourID, scheduleID string) (models.ScheduleActionResponse, []models.Schedule, error) {
	return c.command(ctx, tourID, scheduleID, "start")
}

// Complete relays the complete command for a schedule
func (c *Client) Complete(ctx context.Context, tourID, scheduleID string) (models.ScheduleActionResponse, []models.Schedule, error) {
	return c.command(ctx, tourID, scheduleID, "complete")
}

// Cancel relays the cancel command for a schedule
func (c *Client) Cancel(ctx context.Context, tourID, scheduleID string) (models.ScheduleActionResponse, []models.Schedule, error) {
	return c.command(ctx, tourID, scheduleID, "cancel")
}

// command issues one state-transition POST (no body) and, on success,
// reloads the full schedule list rather than patching locally. The server
// re-validates eligibility; revenue and refund figures in the response are
// display-only. On failure the caller's list is left as it was.
func (c *Client) command(ctx context.Context, tourID, scheduleID, action string) (models.ScheduleActionResponse, []models.Schedule, error) {
	var resp models.ScheduleActionResponse
	path := "/schedules/" + url.PathEscape(scheduleID) + "/" + action
	if err := c.api.Post(ctx, path, nil, &resp); err != nil {
		return models.ScheduleActionResponse{}, nil, fmt.Errorf("schedule %s failed: %w", action, err)
	}

	schedules, err := c.ListForTour(ctx, tourID)
	if err != nil {
		// The command succeeded; only the reload failed.
		return resp, nil, err
	}
	return resp, schedules, nil
}
