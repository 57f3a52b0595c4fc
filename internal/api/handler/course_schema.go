package handler

// createCourseRequest carries the writable course fields. The id is never
// accepted from the client; the store assigns identity.
type createCourseRequest struct {
	Title       string `json:"title" validate:"required"`
	Number      string `json:"number"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Department  string `json:"department"`
	Credits     int    `json:"credits"`
	Description string `json:"description"`
}

type updateCourseRequest struct {
	Title       *string `json:"title"`
	Number      *string `json:"number"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Department  *string `json:"department"`
	Credits     *int    `json:"credits"`
	Description *string `json:"description"`
	Author      *string `json:"author"`
}

type createModuleRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type updateModuleRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Course      *string `json:"course"`
}
