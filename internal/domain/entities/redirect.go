package entities

// LandingPage is where an applicant is sent after loading their application.
type LandingPage string

const (
	PageDraftForm LandingPage = "draft_form"
	PageStatus    LandingPage = "status"
)

// ResolveLandingPage applies the redirect policy. Anything past the draft goes
// to the read-only status page, except when the applicant followed the explicit
// edit link on an application they are still allowed to amend.
func ResolveLandingPage(app *Application, explicitEdit bool) LandingPage {
	if app == nil || !app.Exists() {
		return PageDraftForm
	}
	status := app.CurrentStatus()
	if status == StatusDraft {
		return PageDraftForm
	}
	if explicitEdit && status.Editable() {
		return PageDraftForm
	}
	return PageStatus
}
