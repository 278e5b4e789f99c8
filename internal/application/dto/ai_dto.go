package dto

// RepairDiagnosticsRequest entrada del asistente de diagnóstico.
type RepairDiagnosticsRequest struct {
	PhoneModel         string `json:"phone_model" validate:"required,max=200"`
	ProblemDescription string `json:"problem_description" validate:"required,max=2000"`
}

// RepairDiagnosticsResponse sugerencias devueltas por el modelo.
type RepairDiagnosticsResponse struct {
	SuggestedSolutions  []string `json:"suggested_solutions"`
	PartsNeeded         []string `json:"parts_needed"`
	EstimatedRepairTime string   `json:"estimated_repair_time"`
}
