package model

// File - метаданные загруженного файла.
type File struct {
	FileID      string `json:"file_id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	UploadDate  string `json:"upload_date"`
	Length      int64  `json:"length"`
	Message     string `json:"message,omitempty"`
}

// SweepResult - итог сборки осиротевших файлов.
type SweepResult struct {
	CandidateCount int      `json:"candidate_count"`
	DeletedCount   int      `json:"deleted_count"`
	FailedCount    int      `json:"failed_count"`
	ReclaimedBytes int64    `json:"reclaimed_bytes"`
	DryRun         bool     `json:"dry_run"`
	Candidates     []string `json:"candidates"`
}
