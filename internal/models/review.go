package models

import "time"

// Review is a 1-5 star rating with a comment, attached to a meal.
type Review struct {
	ID            string    `json:"id"`
	FoodID        string    `json:"foodId"`
	ReviewerName  string    `json:"reviewerName"`
	ReviewerEmail string    `json:"reviewerEmail"`
	ReviewerImage string    `json:"reviewerImage,omitempty"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	Date          time.Time `json:"date"`
}

// CreateReviewRequest is the payload for posting a review. The 10 character
// comment minimum matches the original client-side rule.
type CreateReviewRequest struct {
	FoodID        string `json:"foodId" validate:"required"`
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`
	Comment       string `json:"comment" validate:"required,min=10"`
	ReviewerImage string `json:"reviewerImage" validate:"omitempty,url"`
}

// UpdateReviewRequest edits an existing review. Author-only.
type UpdateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,min=10"`
}
