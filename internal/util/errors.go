package util

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailRegistered   = errors.New("email already registered")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrInvalidCredential = errors.New("invalid credentials")

	ErrRoomNotFound    = errors.New("room not found")
	ErrInvalidRoomCode = errors.New("invalid room code format (must be 5 characters)")

	ErrAttemptNotFound         = errors.New("attempt not found")
	ErrQuizAlreadyTaken        = errors.New("quiz already completed")
	ErrQuestionNotFound        = errors.New("question not found")
	ErrQuestionAlreadyAnswered = errors.New("question already answered")
	ErrAttemptNotInProgress    = errors.New("quiz is not in progress")

	ErrRoomAlreadySaved  = errors.New("room already saved")
	ErrCannotSaveOwnRoom = errors.New("you cannot save your own room")
	ErrSavedRoomNotFound = errors.New("saved room not found")

	ErrAIUnavailable = errors.New("AI generation is not configured")
)
