package payload

type JobLocationPayload struct {
	Name      string  `json:"name" validate:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type CreateJobRequest struct {
	Title        string             `json:"title"       validate:"required"`
	Company      string             `json:"company"     validate:"required"`
	Location     JobLocationPayload `json:"location"    validate:"required"`
	Description  string             `json:"description" validate:"required"`
	Requirements []string           `json:"requirements"`
	Salary       string             `json:"salary"`
	JobType      string             `json:"type" validate:"required,oneof=full-time part-time contract remote"`
}
