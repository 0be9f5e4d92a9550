package dto

import (
	"github.com/polkiloo/onboarding/internal/domain/model"
	"github.com/polkiloo/onboarding/internal/wizard"
)

// LocationRequest is the payload of POST /location.
type LocationRequest struct {
	Location string `json:"location"`
}

// StepResponse carries the stored data of a step with the sidebar state.
type StepResponse struct {
	Data  any                `json:"data"`
	Steps []wizard.StepState `json:"steps"`
}

// LocationData is the location step payload with the selectable options.
type LocationData struct {
	Location  string           `json:"location"`
	Locations []model.Location `json:"locations"`
}

// StepsResponse lists the wizard progress.
type StepsResponse struct {
	Steps []wizard.StepState `json:"steps"`
}

// LocationsResponse lists the selectable locations.
type LocationsResponse struct {
	Locations []model.Location `json:"locations"`
}

// AccountData is the account step payload with the province options.
type AccountData struct {
	Account   model.AccountInfo `json:"account"`
	Provinces map[string]string `json:"provinces"`
}
