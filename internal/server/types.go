package server

// WorksheetResponse is the body returned by POST /v1/worksheets.
type WorksheetResponse struct {
	Formulas []string `json:"formulas"`
	Targets  []int    `json:"targets"`
	Split    int      `json:"split"` // formulas per printed row
	Seed     uint64   `json:"seed"`
}

// EvaluateRequest is the body of POST /v1/evaluate.
type EvaluateRequest struct {
	Expression string `json:"expression" binding:"required"`
}

// EvaluateResponse is the body returned by POST /v1/evaluate.
type EvaluateResponse struct {
	Value float64 `json:"value"`
}

// HealthResponse is the body returned by GET /v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
