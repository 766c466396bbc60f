package models

// Audio is synthesized speech.
type Audio struct {
	Data        []byte
	ContentType string
}

// Transcription is the result of speech-to-text.
type Transcription struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// Voice describes a selectable TTS voice.
type Voice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// TranscribeRequest is the body of POST /api/transcribe.
type TranscribeRequest struct {
	Audio    string `json:"audio"` // base64
	MimeType string `json:"mimeType"`
}

// TTSRequest is the body of POST /api/tts.
type TTSRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voiceId"`
}
