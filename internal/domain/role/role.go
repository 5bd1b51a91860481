package role

// Role is the caller's privilege level as resolved by authentication.
type Role string

// Known roles.
const (
	User      Role = "user"
	Recruiter Role = "recruiter"
	Admin     Role = "admin"
)

// Parse converts a raw string into a Role.
func Parse(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == User || r == Recruiter || r == Admin
}

// SeesPII reports whether personal data is shown unredacted to this role.
func (r Role) SeesPII() bool {
	return r == Recruiter || r == Admin
}

// CanPostJobs reports whether the role may create job postings.
func (r Role) CanPostJobs() bool {
	return r == Recruiter || r == Admin
}

// SeesAllResumes reports whether the role may list, search and match
// resumes uploaded by other users.
func (r Role) SeesAllResumes() bool {
	return r == Recruiter || r == Admin
}
