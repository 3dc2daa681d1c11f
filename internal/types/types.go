package types

// ProjectAttributes is the typed project record submitted for analysis.
// Only the six scored fields influence the static assessment; the rest
// identify the project and route notifications.
type ProjectAttributes struct {
	ProjectID           string `json:"project_id"`
	ProjectName         string `json:"project_name" binding:"required"`
	ProjectLocation     string `json:"project_location"`
	ProjectSize         string `json:"project_size"`
	Technology          string `json:"technology"`
	EmployeeResignation string `json:"employee_resignation"`
	MissedMilestone     string `json:"missed_milestone"`
	BudgetProblem       string `json:"budget_problem"`
	ProjectManagerEmail string `json:"project_manager_email"`
}

// NewsItem is one candidate headline from the news source.
type NewsItem struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	Link   string `json:"link,omitempty"`
	Date   string `json:"date,omitempty"`
}

// AnalyzeRequest is the request body for the analyze endpoint. When
// NewsItems is empty the server fetches candidates from its configured
// sources instead.
type AnalyzeRequest struct {
	Project   ProjectAttributes `json:"project" binding:"required"`
	NewsItems []NewsItem        `json:"news_items,omitempty"`
}

// IndexDocumentRequest asks the server to index a project document.
type IndexDocumentRequest struct {
	Path string `json:"path" binding:"required"`
}
