package clone

import (
	"github.com/gitdeck/git-clone-manager/internal/model"
)

// Cloner defines the interface for the clone service.
type Cloner interface {
	SetGitPath(gitPath string)
	SetLogCallback(func(line string))
	SetFinishedCallback(func(task *model.CloneTask, success bool, reason string))
	Start(req model.CloneRequest) (*model.CloneTask, error)
	Stop()
	Active() *model.CloneTask
}
