package ai

// NoteDraftDTO asks for a structured note from a free-form prompt or
// transcript. Title/Content carry the current draft when refining.
type NoteDraftDTO struct {
	Prompt  string `json:"prompt" binding:"required"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NoteDraft is the model's answer, with the suggested category resolved to a
// real category id for the requesting user.
type NoteDraft struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	Category   string   `json:"category"`
	CategoryID *string  `json:"categoryId"`
}

type ContinueStoryDTO struct {
	Content string `json:"content" binding:"required"`
}

type WriterContinueDTO struct {
	ProjectID    string `json:"projectId" binding:"required"`
	DocID        string `json:"docId" binding:"required"`
	Instructions string `json:"instructions"`
}

type WriterContinueResult struct {
	Takes []string `json:"takes"`
}

type RewriteDTO struct {
	ProjectID   string `json:"projectId" binding:"required"`
	DocID       string `json:"docId"`
	Text        string `json:"text" binding:"required"`
	Instruction string `json:"instruction"`
}

type OutlineDTO struct {
	ProjectID    string `json:"projectId" binding:"required"`
	DocID        string `json:"docId"`
	Premise      string `json:"premise"`
	Instructions string `json:"instructions"`
}

type OutlineResult struct {
	Outline []string `json:"outline"`
	Notes   string   `json:"notes"`
}

type ExpandDTO struct {
	ProjectID   string `json:"projectId" binding:"required"`
	DocID       string `json:"docId" binding:"required"`
	Text        string `json:"text" binding:"required"`
	Instruction string `json:"instruction"`
}

type ConsistencyDTO struct {
	ProjectID string `json:"projectId" binding:"required"`
	DocID     string `json:"docId" binding:"required"`
}

type ConsistencyResult struct {
	Issues []ConsistencyIssue `json:"issues"`
}

type ConsistencyIssue struct {
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Suggestion  string `json:"suggestion"`
}

type StyleProfileDTO struct {
	ProjectID string `json:"projectId" binding:"required"`
}

type StyleProfileResult struct {
	Guidelines string   `json:"guidelines"`
	DoList     []string `json:"doList"`
	DontList   []string `json:"dontList"`
	Examples   []string `json:"examples"`
}

type AskDTO struct {
	ProjectID string `json:"projectId" binding:"required"`
	Question  string `json:"question" binding:"required"`
}

type AskResult struct {
	AnswerHTML string   `json:"answerHtml"`
	Citations  []string `json:"citations"`
}

type RewriteResult struct {
	ContentHTML string `json:"contentHtml"`
}

// memoryUpdate is what the continue operation may return alongside the prose;
// non-empty fields are merged into the project memory.
type memoryUpdate struct {
	OpenThreads    []interface{} `json:"openThreads"`
	KeyFacts       []interface{} `json:"keyFacts"`
	SessionSummary string        `json:"sessionSummary"`
}
