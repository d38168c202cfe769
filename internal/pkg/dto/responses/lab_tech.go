package responses

type LabTech struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email,omitempty"`
	Department     string   `json:"department"`
	Specialization string   `json:"specialization,omitempty"`
	IsActive       bool     `json:"isActive"`
	TestsConducted int      `json:"testsConducted"`
	AccuracyRate   float64  `json:"accuracyRate"`
	CertifiedTests []string `json:"certifiedTests,omitempty"`
}

type TechnicianAvailability struct {
	Technician     LabTech `json:"technician"`
	PendingLoad    int     `json:"pendingLoad"`
	IsAvailable    bool    `json:"isAvailable"`
	LoadPercentage float64 `json:"loadPercentage"`
}

type PerformanceStats struct {
	TechnicianID       string    `json:"technicianId"`
	TotalTests         int       `json:"totalTests"`
	AvgProcessingHours float64   `json:"avgProcessingHours"`
	MinProcessingHours float64   `json:"minProcessingHours"`
	MaxProcessingHours float64   `json:"maxProcessingHours"`
	RecentTests        []LabTest `json:"recentTests"`
}

type TestTypeBreakdown struct {
	TestName           string  `json:"testName"`
	Count              int     `json:"count"`
	AvgCompletionHours float64 `json:"avgCompletionHours"`
}
