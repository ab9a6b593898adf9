package api

import (
	"context"
	"net/http"

	"lawconnect/models"
)

// UserReviews lists the reviews the user has submitted; the booking flow
// checks this set before allowing a new submission.
func (c *Client) UserReviews(ctx context.Context, userID string) ([]models.Review, error) {
	var resp struct {
		Reviews []models.Review `json:"reviews"`
	}
	if err := c.do(ctx, http.MethodGet, "/review/user/"+userID, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Reviews, nil
}

// SubmitReview submits a review for a completed booking.
func (c *Client) SubmitReview(ctx context.Context, req models.ReviewRequest) (*models.Review, error) {
	var resp struct {
		Review models.Review `json:"review"`
	}
	if err := c.do(ctx, http.MethodPost, "/review/add", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Review, nil
}
