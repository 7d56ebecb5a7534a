package practice

// SubmitDTO is one translation attempt submitted for grading.
type SubmitDTO struct {
	PromptText      string `json:"prompt_text"      binding:"required,max=2000"`
	UserTranslation string `json:"user_translation" binding:"required,max=2000"`
}
