package models

type RecommendRequest struct {
	Query     string `json:"query"`
	JobURL    string `json:"jobUrl"`
	JobText   string `json:"jobText"`
	TimeLimit *int   `json:"timeLimit"`
}

type RecommendResponse struct {
	Query           string           `json:"query"`
	TimeLimit       int              `json:"timeLimit"`
	Recommendations []Recommendation `json:"recommendations"`
	Method          string           `json:"method"`
}
