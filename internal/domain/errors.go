package domain

import "errors"

var (
	// Input errors
	ErrVideoNotFound  = errors.New("video file not found")
	ErrNotRegularFile = errors.New("not a regular file")

	// Recognition errors
	ErrRecognizerNotFound = errors.New("recognition command not found")
	ErrNoSubtitleProduced = errors.New("recognizer produced no subtitle file")
)
