package utils

import (
	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return uuid.New().String()
}

func GenerateAssessmentID() string {
	return uuid.New().String()
}

func GenerateEventID() string {
	return uuid.New().String()
}
