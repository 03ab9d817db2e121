package model

// QuestionRating pairs the original auditor's answer with the master
// auditor's substitute and its correctness classification
type QuestionRating struct {
	QuestionID    string `json:"questionId" bson:"questionId"`
	AuditorAnswer string `json:"auditorAnswer" bson:"auditorAnswer"`
	ATAAnswer     string `json:"ataAnswer" bson:"ataAnswer"`
	IsCorrect     bool   `json:"isCorrect" bson:"isCorrect"`
	IsCE          bool   `json:"isCE" bson:"isCE"`   // critical error
	IsNCE         bool   `json:"isNCE" bson:"isNCE"` // non-critical error
	Comments      string `json:"comments,omitempty" bson:"comments,omitempty"`
}

// AccuracyMetrics aggregates a master auditor's per-question ratings
type AccuracyMetrics struct {
	TotalQuestions   int `json:"totalQuestions" bson:"totalQuestions"`
	CorrectAnswers   int `json:"correctAnswers" bson:"correctAnswers"`
	IncorrectAnswers int `json:"incorrectAnswers" bson:"incorrectAnswers"`
	CEErrors         int `json:"ceErrors" bson:"ceErrors"`
	NCEErrors        int `json:"nceErrors" bson:"nceErrors"`
	OverallAccuracy  int `json:"overallAccuracy" bson:"overallAccuracy"` // 0-100
}

// ATAReview is a master auditor's secondary pass over a completed
// report. Immutable once produced; a later review replaces it outright.
type ATAReview struct {
	AuditReportID   string           `json:"auditReportId" bson:"auditReportId"`
	MasterAuditor   Identity         `json:"masterAuditor" bson:"masterAuditor"`
	Ratings         []QuestionRating `json:"ratings" bson:"ratings"`
	AccuracyMetrics AccuracyMetrics  `json:"accuracyMetrics" bson:"accuracyMetrics"`
	OriginalScore   int              `json:"originalScore" bson:"originalScore"`
	ATAScore        int              `json:"ataScore" bson:"ataScore"`
	Variance        int              `json:"variance" bson:"variance"`
	Timestamp       int64            `json:"timestamp" bson:"timestamp"` // epoch ms
}
