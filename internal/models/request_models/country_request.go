package request_models

type CreateCountryRequest struct {
	Code string `json:"code" binding:"required,len=2,alpha"`
	Name string `json:"name" binding:"required,max=120"`
}

type UpdateCountryRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=120"`
}

type CreateCityRequest struct {
	Name        string `json:"name" binding:"required,max=120"`
	CountryCode string `json:"country_code" binding:"required,len=2"`
}

type UpdateCityRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=120"`
	CountryCode *string `json:"country_code" binding:"omitempty,len=2"`
}
