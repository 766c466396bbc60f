package utils

import "errors"

// Common application errors used across services.
var (
	ErrSearchTermRequired    = errors.New("SEARCH_TERM_REQUIRED")
	ErrMessageRequired       = errors.New("MESSAGE_REQUIRED")
	ErrAudioRequired         = errors.New("AUDIO_REQUIRED")
	ErrTextRequired          = errors.New("TEXT_REQUIRED")
	ErrSessionNotFound       = errors.New("SESSION_NOT_FOUND")
	ErrProviderNotConfigured = errors.New("PROVIDER_NOT_CONFIGURED")
	ErrProviderRateLimited   = errors.New("PROVIDER_RATE_LIMITED")
	ErrInvalidAudio          = errors.New("INVALID_AUDIO")
)
