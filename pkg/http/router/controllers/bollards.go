package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/Bollardx/pkg"
	"github.com/lintang-b-s/Bollardx/pkg/datastructure"
	helper "github.com/lintang-b-s/Bollardx/pkg/http/router/routerhelper"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

const maxRequestBodyBytes = 1 << 16

type bollardAPI struct {
	bollardService BollardService
	log            *zap.Logger
	validate       *validator.Validate
	trans          ut.Translator
}

func New(bollardService BollardService, log *zap.Logger) *bollardAPI {
	validate, trans := newValidator()
	return &bollardAPI{
		bollardService: bollardService,
		log:            log,
		validate:       validate,
		trans:          trans,
	}
}

func (api *bollardAPI) Routes(group *helper.RouteGroup) {
	group.GET("/bollards", api.bollards)
	group.POST("/bollards", api.bollards)
}

// bollards godoc
//
//	@Summary		bollards blocking the route from the city center to a location
//	@Description	without lat & lon the complete bollard register is returned
//	@Tags			bollards
//	@Produce		json
//	@Param			lat				query	number	false	"latitude of the destination"
//	@Param			lon				query	number	false	"longitude of the destination"
//	@Param			dayOfTheWeek	query	string	false	"mon..sun or ma..zo"
//	@Param			timeFrom		query	string	false	"HH:MM[:SS]"
//	@Param			timeTo			query	string	false	"HH:MM[:SS]"
//	@Success		200	{object}	map[string]interface{}	"GeoJSON FeatureCollection"
//	@Failure		400	{object}	errorResponse
//	@Failure		503	{object}	errorResponse
//	@Router			/api/v1/bollards [get]
func (api *bollardAPI) bollards(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	request, err := api.decodeRequest(r)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	if fields := api.validateRequest(request); len(fields) > 0 {
		api.FailedValidationResponse(w, r, fields)
		return
	}

	var fc *geojson.FeatureCollection
	if !request.hasLocation() {
		fc, err = api.bollardService.AllBollards(r.Context())
	} else {
		fc, err = api.bollardService.FindBollards(r.Context(), toQuery(request))
	}
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, fc, make(http.Header)); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// decodeRequest. query string on GET, json body on POST
func (api *bollardAPI) decodeRequest(r *http.Request) (bollardsRequest, error) {
	var request bollardsRequest

	if r.Method == http.MethodPost {
		dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&request); err != nil && !errors.Is(err, io.EOF) {
			return request, fmt.Errorf("body must be a json object: %w", err)
		}
		return request, nil
	}

	query := r.URL.Query()
	var err error
	if request.Lat, err = parseOptionalFloat(query.Get("lat")); err != nil {
		return request, errors.New("lat must be a valid float")
	}
	if request.Lon, err = parseOptionalFloat(query.Get("lon")); err != nil {
		return request, errors.New("lon must be a valid float")
	}
	request.DayOfTheWeek = strings.TrimSpace(query.Get("dayOfTheWeek"))
	request.TimeFrom = strings.TrimSpace(query.Get("timeFrom"))
	request.TimeTo = strings.TrimSpace(query.Get("timeTo"))
	return request, nil
}

// validateRequest. per field messages, empty when the request is valid
func (api *bollardAPI) validateRequest(request bollardsRequest) map[string]string {
	fields := make(map[string]string)
	if err := api.validate.Struct(request); err != nil {
		fields = translateError(err, api.trans)
	}

	switch {
	case request.Lat != nil && request.Lon == nil:
		fields["lon"] = "lon is required when lat is given"
	case request.Lat == nil && request.Lon != nil:
		fields["lat"] = "lat is required when lon is given"
	case request.Lat == nil && request.hasTimeConstraint():
		fields["lat"] = "lat and lon are required when a day or time is given"
	}

	if _, invalid := fields["timeFrom"]; invalid || request.TimeFrom == "" || request.TimeTo == "" {
		return fields
	}
	if _, invalid := fields["timeTo"]; invalid {
		return fields
	}
	from, _ := datastructure.ParseClockTime(request.TimeFrom)
	to, _ := datastructure.ParseClockTime(request.TimeTo)
	if from > to {
		fields["timeFrom"] = "timeFrom must not be later than timeTo"
	}
	return fields
}

// toQuery. request must be validated
func toQuery(request bollardsRequest) datastructure.Query {
	q := datastructure.NewQuery(*request.Lat, *request.Lon)
	if day, ok := pkg.GetWeekday(request.DayOfTheWeek); ok {
		q = q.WithDay(day)
	}

	from, to := datastructure.NO_TIME, datastructure.NO_TIME
	if request.TimeFrom != "" {
		from, _ = datastructure.ParseClockTime(request.TimeFrom)
	}
	if request.TimeTo != "" {
		to, _ = datastructure.ParseClockTime(request.TimeTo)
	}
	return q.WithTimeWindow(from, to)
}

func parseOptionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, strconv.ErrRange
	}
	return &v, nil
}
