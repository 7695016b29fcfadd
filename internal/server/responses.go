package server

import (
	"stablearb/internal/gate"
	"stablearb/internal/model"
)

// cronBody is the minimal acknowledgment sent to automated callers.
type cronBody struct {
	Status      string           `json:"status"`
	Saved       bool             `json:"saved"`
	SavedResult *gate.SaveResult `json:"savedResult"`
}

// interactiveBody carries the live snapshot and the reduced history.
type interactiveBody struct {
	Live    *model.FullSnapshot   `json:"live"`
	History []model.MinimalRecord `json:"history"`
}
