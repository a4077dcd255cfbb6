package permissions

// Feature gates a grant can name. A grant with permission_type "all"
// (types.PermissionTypeAll) matches any of them.
const (
	TypeVenture    = "venture"
	TypeKPIs       = "kpis"
	TypeFinancials = "financials"
	TypeDocuments  = "documents"
	TypeChat       = "chat"
	TypeComments   = "comments"
	TypeTasks      = "tasks"
	TypeInsights   = "insights"
	TypeReports    = "reports"
)
