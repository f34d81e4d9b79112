package dto

type UpsertReviewRequest struct {
	ReviewRating  int    `json:"review_rating" validate:"required,min=1,max=5"`
	ReviewComment string `json:"review_comment" validate:"omitempty,max=4000"`
}
