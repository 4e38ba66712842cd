package gatepass

import "errors"

var (
	ErrNotOnboarded     = errors.New("Participant has not completed onboarding")
	ErrMalformedToken   = errors.New("Malformed gate pass")
	ErrExpired          = errors.New("Gate pass has expired")
	ErrInvalidSignature = errors.New("Invalid gate pass signature")
	ErrNotFound         = errors.New("Participant not found")
)
