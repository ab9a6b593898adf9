package api

import (
	"context"
	"net/http"

	"lawconnect/models"
)

// Lawyers lists all lawyers on the platform, with derived avatar URLs
// attached.
func (c *Client) Lawyers(ctx context.Context) ([]models.Lawyer, error) {
	var resp struct {
		Lawyers []models.Lawyer `json:"lawyers"`
	}
	if err := c.do(ctx, http.MethodGet, "/lawyer/all", nil, &resp); err != nil {
		return nil, err
	}
	for i := range resp.Lawyers {
		if resp.Lawyers[i].AvatarURL == "" {
			resp.Lawyers[i].AvatarURL = c.avatarURL(resp.Lawyers[i].AvatarID)
		}
	}
	return resp.Lawyers, nil
}

// LawyerDetails fetches a single lawyer profile.
func (c *Client) LawyerDetails(ctx context.Context, lawyerID string) (*models.Lawyer, error) {
	var resp struct {
		Lawyer models.Lawyer `json:"lawyer"`
	}
	if err := c.do(ctx, http.MethodGet, "/lawyer/details/"+lawyerID, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Lawyer.AvatarURL == "" {
		resp.Lawyer.AvatarURL = c.avatarURL(resp.Lawyer.AvatarID)
	}
	return &resp.Lawyer, nil
}

// LawyerAvailability fetches a lawyer's weekly slot set.
func (c *Client) LawyerAvailability(ctx context.Context, lawyerID string) (*models.WeeklyAvailability, error) {
	var resp struct {
		Availability models.WeeklyAvailability `json:"availability"`
	}
	if err := c.do(ctx, http.MethodGet, "/lawyer/"+lawyerID, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Availability, nil
}

// CheckSlots returns the bookable slot labels for a lawyer on one calendar
// date ("YYYY-MM-DD").
func (c *Client) CheckSlots(ctx context.Context, lawyerID, date string) ([]string, error) {
	var resp models.SlotCheckResult
	if err := c.do(ctx, http.MethodGet, "/lawyer/"+lawyerID+"/check?date="+date, nil, &resp); err != nil {
		return nil, err
	}
	return resp.AvailableSlots, nil
}

// SetAvailability saves the lawyer's slot set for one day of the week.
func (c *Client) SetAvailability(ctx context.Context, day models.DayAvailability) error {
	return c.do(ctx, http.MethodPost, "/lawyer/availability", day, nil)
}

// LawyerReviews lists the reviews left for a lawyer.
func (c *Client) LawyerReviews(ctx context.Context, lawyerID string) ([]models.Review, error) {
	var resp struct {
		Reviews []models.Review `json:"reviews"`
	}
	if err := c.do(ctx, http.MethodGet, "/lawyer/reviews/"+lawyerID, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Reviews, nil
}
