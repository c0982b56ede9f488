package routes

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/mbolis/care-survey/app"
	"github.com/mbolis/care-survey/httpx"
	"github.com/mbolis/care-survey/log"
	"github.com/mbolis/care-survey/model"
)

type createResponseRequest struct {
	Name              string          `json:"name"`
	Age               json.RawMessage `json:"age"`
	Gender            string          `json:"gender"`
	MaritalStatus     string          `json:"marital_status"`
	EducationLevel    string          `json:"education_level"`
	AnnualIncome      string          `json:"annual_income"`
	Savings           string          `json:"savings"`
	HealthRating      string          `json:"health_rating"`
	ChronicConditions string          `json:"chronic_conditions"`
	ADLAssistance     string          `json:"adl_assistance"`
	LivingArrangement string          `json:"living_arrangement"`
	RetirementPlan    string          `json:"retirement_plan"`
	FamilyHistory     string          `json:"family_history"`
}

var (
	errNoAge      = errors.New("age missing")
	errInvalidAge = errors.New("age is not an integer")
)

// parseAge reads the raw age value. Absent, null, false, empty string and
// any zero number all count as missing; a numeric string is accepted.
func parseAge(raw json.RawMessage) (int64, error) {
	var v any
	if len(raw) > 0 {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return 0, errInvalidAge
		}
	}

	var n json.Number
	switch v := v.(type) {
	case nil:
		return 0, errNoAge
	case bool:
		if !v {
			return 0, errNoAge
		}
		return 0, errInvalidAge
	case string:
		if v == "" {
			return 0, errNoAge
		}
		n = json.Number(v)
	case json.Number:
		n = v
	default:
		return 0, errInvalidAge
	}

	f, err := n.Float64()
	if err != nil {
		return 0, errInvalidAge
	}
	if f == 0 {
		return 0, errNoAge
	}
	age, err := n.Int64()
	if err != nil {
		return 0, errInvalidAge
	}
	return age, nil
}

func CreateResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := createResponseRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body", "Invalid request body")
			return
		}

		age, err := parseAge(req.Age)
		if req.Name == "" || errors.Is(err, errNoAge) {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.required", "Missing required fields")
			return
		}
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.age", "Invalid request body")
			return
		}

		submission := model.Submission{
			Name:              req.Name,
			Age:               int(age),
			Gender:            req.Gender,
			MaritalStatus:     req.MaritalStatus,
			EducationLevel:    req.EducationLevel,
			AnnualIncome:      req.AnnualIncome,
			Savings:           req.Savings,
			HealthRating:      req.HealthRating,
			ChronicConditions: req.ChronicConditions,
			ADLAssistance:     req.ADLAssistance,
			LivingArrangement: req.LivingArrangement,
			RetirementPlan:    req.RetirementPlan,
			FamilyHistory:     req.FamilyHistory,
		}

		id, err := app.Create(r.Context(), submission.Response())
		if err != nil {
			httpx.LogInternalError(w, r, "db.insert_response", err)
			return
		}
		log.Debugf("response %d created", id)

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": id,
		})
	}
}

func ListResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses, err := app.List(r.Context())
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_responses", err)
			return
		}

		render.JSON(w, r, responses)
	}
}
