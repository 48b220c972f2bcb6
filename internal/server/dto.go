package server

type createSessionRequest struct {
	// Already-extracted plain text of the applicant's portfolio document.
	PortfolioText string `json:"portfolio_text"`
}

type createSessionResponse struct {
	SessionID          string `json:"session_id"`
	HasPersonalization bool   `json:"has_personalization"`
	MaxTurns           int    `json:"max_turns"`
}

type startRequest struct {
	InterviewType string `json:"interview_type" validate:"required"`
}

type answerRequest struct {
	Answer string `json:"answer" validate:"required"`
}

type interviewResponse struct {
	Reply     string `json:"reply"`
	TurnIndex int    `json:"turn_index"`
	MaxTurns  int    `json:"max_turns"`
	Finished  bool   `json:"finished"`
}

type progressResponse struct {
	SessionID          string `json:"session_id"`
	InterviewType      string `json:"interview_type,omitempty"`
	TurnIndex          int    `json:"turn_index"`
	MaxTurns           int    `json:"max_turns"`
	Started            bool   `json:"started"`
	Finished           bool   `json:"finished"`
	HasPersonalization bool   `json:"has_personalization"`
}

type healthResponse struct {
	Status          string   `json:"status"`
	OllamaConnected bool     `json:"ollama_connected"`
	Models          []string `json:"models,omitempty"`
}
