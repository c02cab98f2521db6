package repository

import "errors"

var (
	// ErrActivityNotFound возвращается, если кружок с таким именем не существует.
	ErrActivityNotFound = errors.New("activity not found")

	// ErrAlreadySignedUp возвращается при повторной записи того же email.
	ErrAlreadySignedUp = errors.New("participant already signed up")

	// ErrParticipantNotFound возвращается, если email не записан на кружок.
	ErrParticipantNotFound = errors.New("participant not found")
)
