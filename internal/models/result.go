package models

type UploadResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
}

type EvaluateRequest struct {
	UserID          string `json:"user_id" validate:"required"`
	JobTitle        string `json:"job_title" validate:"required"`
	JobRequirements string `json:"job_requirements" validate:"required"`
}

type EvaluateResponse struct {
	Evaluation string `json:"evaluation"`
}

type AnalyzeRequest struct {
	JobDescription  string     `json:"job_description" validate:"required"`
	RankingCriteria []string   `json:"ranking_criteria"`
	CVs             []InlineCV `json:"cvs" validate:"dive"`
}

type AnalyzeResponse struct {
	Analysis string `json:"analysis"`
}
