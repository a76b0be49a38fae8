package models

type StartInterviewRequest struct {
	Field          string `json:"field"`
	InterviewType  string `json:"interview_type"`
	Difficulty     int    `json:"difficulty"`
	TotalRounds    int    `json:"total_rounds"`
	Resume         string `json:"resume"`
	JobDescription string `json:"job_description"`
}

type StartInterviewResponse struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
}

type SubmitAnswerRequest struct {
	SessionID string `json:"session_id"`
	Answer    string `json:"answer"`
}

// SubmitAnswerResponse carries either the next question or, on the last round,
// the final report.
type SubmitAnswerResponse struct {
	Feedback          Feedback `json:"feedback"`
	AverageScore      float64  `json:"average_score"`
	InterviewComplete bool     `json:"interview_complete"`
	NextQuestion      string   `json:"next_question,omitempty"`
	CurrentRound      int      `json:"current_round,omitempty"`
	FinalReport       string   `json:"final_report,omitempty"`
}

type SessionSummaryResponse struct {
	TotalRounds       int     `json:"total_rounds"`
	CompletedRounds   int     `json:"completed_rounds"`
	AverageScore      float64 `json:"average_score"`
	ScoreHistory      []int   `json:"score_history"`
	DifficultyCurrent int     `json:"difficulty_current"`
}

// ErrorResponse is an application-level failure. Clients treat it as an error
// even when it arrives with a 200 status.
type ErrorResponse struct {
	Error       string `json:"error"`
	RawResponse string `json:"raw_response,omitempty"`
}

// DetailResponse is the message body for non-success statuses.
type DetailResponse struct {
	Detail string `json:"detail"`
}
