package controllers

type bollardsRequest struct {
	Lat          *float64 `json:"lat" validate:"omitempty,min=-90,max=90"`
	Lon          *float64 `json:"lon" validate:"omitempty,min=-180,max=180"`
	DayOfTheWeek string   `json:"dayOfTheWeek" validate:"omitempty,weekday"`
	TimeFrom     string   `json:"timeFrom" validate:"omitempty,clocktime"`
	TimeTo       string   `json:"timeTo" validate:"omitempty,clocktime"`
}

func (r bollardsRequest) hasLocation() bool {
	return r.Lat != nil && r.Lon != nil
}

func (r bollardsRequest) hasTimeConstraint() bool {
	return r.DayOfTheWeek != "" || r.TimeFrom != "" || r.TimeTo != ""
}

type errorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields,omitempty"`
	} `json:"error"`
}
