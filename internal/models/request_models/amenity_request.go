package request_models

type CreateAmenityRequest struct {
	Name string `json:"name" binding:"required,max=128"`
}

type UpdateAmenityRequest struct {
	Name string `json:"name" binding:"required,max=128"`
}
