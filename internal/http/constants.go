package httpx

// CurrentPage constants define the page identifiers used in templates and
// navigation. These constants ensure consistency across UI handlers and
// template mapping.
const (
	PageHome     = "home"
	PageRegister = "register"
	PageLogon    = "logon"
	PageJobs     = "jobs"
	PageJobForm  = "job-form"
)

const errMsgFixBelow = "Please fix the errors below."

// FormMode represents the mode of a form (create or edit).
// Using a dedicated type improves compile-time checks and prevents typos.
type FormMode string

const (
	// FormModeEdit indicates the form is in edit mode.
	FormModeEdit FormMode = "edit"
	// FormModeCreate indicates the form is in create mode.
	FormModeCreate FormMode = "create"
)

// Content templates are defined once and reused to avoid per-call allocations.
//
//nolint:gochecknoglobals // static read-only lookup for templates; avoids per-call allocations
var contentTemplates = map[string]string{
	PageHome:     "home-content",
	PageRegister: "register-content",
	PageLogon:    "logon-content",
	PageJobs:     "jobs-content",
	PageJobForm:  "job-form-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
// This is the single source of truth for page-to-template mapping.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to home-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := ContentTemplateMap()[currentPage]; ok {
		return name
	}
	return "home-content"
}
