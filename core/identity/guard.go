package identity

// View names the protected views of the portal.
type View string

const (
	ViewLogin        View = "login"
	ViewDashboard    View = "dashboard"
	ViewSyllabus     View = "syllabus"
	ViewClasses      View = "classes"
	ViewDocuments    View = "documents"
	ViewPublications View = "publications"
	ViewTimetable    View = "timetable"
	ViewTeachers     View = "teachers"
)

// requiredRoles declares the single role each view requires. An empty role
// means any authenticated user (the landing view is role-polymorphic).
var requiredRoles = map[View]string{
	ViewDashboard:    "",
	ViewSyllabus:     RoleTeacher,
	ViewClasses:      RoleTeacher,
	ViewDocuments:    RoleTeacher,
	ViewPublications: RoleTeacher,
	ViewTimetable:    RoleTeacher,
	ViewTeachers:     RoleAdmin,
}

func RequiredRole(view View) string { return requiredRoles[view] }

// Decision is the guard outcome: either allow, or redirect to a view.
type Decision struct {
	Allow    bool
	Redirect View
}

// Guard gates view access based on the injected session.
type Guard struct {
	session *Session
}

func NewGuard(session *Session) *Guard {
	return &Guard{session: session}
}

// Authorize decides whether the current identity may see a view requiring
// the given role. Unauthenticated requests redirect to the login view; a
// wrong-role user is silently bounced to their own dashboard, never shown
// an error.
func (g *Guard) Authorize(requiredRole string) Decision {
	ident, ok := g.session.Current()
	if !ok {
		return Decision{Redirect: ViewLogin}
	}
	if requiredRole != "" && ident.Role != requiredRole {
		return Decision{Redirect: ViewDashboard}
	}
	return Decision{Allow: true}
}

// AuthorizeView authorizes against the view's declared role.
func (g *Guard) AuthorizeView(view View) Decision {
	return g.Authorize(RequiredRole(view))
}

// DashboardKind is the closed landing-view variant, selected once by role.
type DashboardKind int

const (
	TeacherDashboard DashboardKind = iota
	AdminDashboard
)

func DashboardFor(role string) DashboardKind {
	if role == RoleAdmin {
		return AdminDashboard
	}
	return TeacherDashboard
}
