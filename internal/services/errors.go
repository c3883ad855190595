package services

import "errors"

var (
	ErrEmptyDeviceID   = errors.New("device id is required")
	ErrEmptyNickname   = errors.New("nickname is required")
	ErrNicknameTooLong = errors.New("nickname exceeds the maximum length")
	ErrNicknameTaken   = errors.New("nickname is already in use today")
	ErrNotRegistered   = errors.New("device has no registered nickname")
	ErrInvalidStatus   = errors.New("unknown attendance status")
	ErrEmptyMessage    = errors.New("message text is required")
	ErrMessageTooLong  = errors.New("message text exceeds the maximum length")
	ErrMessageNotFound = errors.New("message not found")
	ErrNotAuthor       = errors.New("only the author may modify this message")
	ErrPinLimitReached = errors.New("pinned announcement limit reached")
	ErrAuthorPinLimit  = errors.New("author pinned announcement limit reached")
)
