package models

import "time"

// UserStats is the per-username aggregation over resume logs. It is computed
// on demand and never stored.
type UserStats struct {
	Username       string    `json:"username"`
	TotalResumes   int       `json:"totalResumes"`
	ResumeCodes    []string  `json:"resumeCodes"`
	FirstGenerated time.Time `json:"firstGenerated"`
	LastGenerated  time.Time `json:"lastGenerated"`
}

// CodeHistoryItem is one entry of a username's generation history.
type CodeHistoryItem struct {
	Code        string    `json:"code"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// CodeValidation describes a looked-up resume code together with the full
// history of the username that produced it.
type CodeValidation struct {
	Username       string            `json:"username"`
	Code           string            `json:"code"`
	GeneratedAt    time.Time         `json:"generatedAt"`
	TotalResumes   int               `json:"totalResumes"`
	AllCodes       []CodeHistoryItem `json:"allCodes"`
	FirstGenerated time.Time         `json:"firstGenerated"`
	LastGenerated  time.Time         `json:"lastGenerated"`
}
