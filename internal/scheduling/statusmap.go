package scheduling

import (
	"strings"

	"github.com/esantostaype/task-automation-sub001/internal/models"
)

// statusRule maps a keyword found in an external tool status name to a local
// task status. Rules are evaluated in order, first match wins.
type statusRule struct {
	keyword string
	status  models.TaskStatus
}

var statusRules = []statusRule{
	{"complete", models.TaskStatusComplete},
	{"done", models.TaskStatusComplete},
	{"closed", models.TaskStatusComplete},
	{"delivered", models.TaskStatusComplete},
	{"approval", models.TaskStatusOnApproval},
	{"review", models.TaskStatusOnApproval},
	{"feedback", models.TaskStatusOnApproval},
	{"progress", models.TaskStatusInProgress},
	{"doing", models.TaskStatusInProgress},
	{"working", models.TaskStatusInProgress},
	{"to do", models.TaskStatusToDo},
	{"todo", models.TaskStatusToDo},
	{"backlog", models.TaskStatusToDo},
	{"pending", models.TaskStatusToDo},
	{"open", models.TaskStatusToDo},
}

// MapExternalStatus maps a raw status name from the external project
// management tool to a local status. The second return value is false when no
// rule matches, meaning the record should be excluded from the import.
func MapExternalStatus(raw string) (models.TaskStatus, bool) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return "", false
	}
	for _, r := range statusRules {
		if strings.Contains(name, r.keyword) {
			return r.status, true
		}
	}
	return "", false
}
