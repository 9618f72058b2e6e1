package request_models

import "edupath/internal/scoring"

type SubmitQuizRequest struct {
	Answers []scoring.Answer `json:"answers"`
}
