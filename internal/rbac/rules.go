package rbac

const (
	PermExamList   = "exam:list"
	PermExamView   = "exam:view"
	PermExamSubmit = "exam:submit"
)

// RolePermissions is the default policy.
var RolePermissions = map[string][]string{
	"student": {
		PermExamList,
		PermExamView,
		PermExamSubmit,
	},
	"teacher": {
		PermExamList,
		PermExamView,
	},
	"admin": {
		"*",
	},
}
