package request_models

type CreateReviewRequest struct {
	Comment string `json:"comment" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
}

type UpdateReviewRequest struct {
	Comment *string `json:"comment" binding:"omitempty,min=1"`
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
}
