package lookups

// Option is a code/name pair for select inputs.
type Option struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// User is a person who can be assigned to an approval step.
type User struct {
	UserID     string `json:"userId"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"`
}

// Kind names a lookup list.
type Kind string

const (
	KindDepartments Kind = "departments"
	KindBranches    Kind = "branches"
	KindCategories  Kind = "categories"
	KindUsers       Kind = "users"
)

// Kinds lists every lookup in warmup order.
var Kinds = []Kind{KindDepartments, KindBranches, KindCategories, KindUsers}

// ParseKind resolves a lookup name.
func ParseKind(name string) (Kind, bool) {
	for _, kind := range Kinds {
		if string(kind) == name {
			return kind, true
		}
	}
	return "", false
}
