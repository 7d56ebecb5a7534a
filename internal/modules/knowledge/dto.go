package knowledge

// CreateDTO adds a knowledge point manually.
type CreateDTO struct {
	Summary string `json:"summary" binding:"required,max=255"`
	Note    string `json:"note"    binding:"max=2000"`
}

// UpdateDTO edits a knowledge point. Nil/empty fields are left alone.
type UpdateDTO struct {
	Summary      string   `json:"summary"       binding:"max=255"`
	MasteryLevel *float64 `json:"mastery_level"`
}
