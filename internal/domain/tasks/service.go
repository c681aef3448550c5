package tasks

import (
	"context"
	"time"

	"appraise/internal/domain/auth"
	"appraise/internal/domain/directory"
)

type DirectoryAPI interface {
	UserRef(ctx context.Context, userID string) (directory.UserRef, error)
}

type FileStore interface {
	Store(ctx context.Context, name string, data []byte) (string, error)
}

type Service struct {
	store     StoreAPI
	directory DirectoryAPI
	files     FileStore
}

func NewService(store StoreAPI, dir DirectoryAPI, files FileStore) *Service {
	return &Service{store: store, directory: dir, files: files}
}

func (s *Service) Create(ctx context.Context, actorID string, input TaskInput) (Task, error) {
	actor, err := s.directory.UserRef(ctx, actorID)
	if err != nil {
		return Task{}, err
	}
	target, err := s.directory.UserRef(ctx, input.AssignedTo)
	if err != nil {
		return Task{}, err
	}
	if !directory.CanManage(actor, target) {
		return Task{}, ErrForbidden
	}
	if input.Priority == "" {
		input.Priority = PriorityMedium
	}
	return s.store.CreateTask(ctx, actorID, input)
}

// Submit completes a task on behalf of its assignee. The artifact, when
// present, is persisted first and only its reference is stored on the task.
func (s *Service) Submit(ctx context.Context, actorID, taskID, artifactName string, artifact []byte) (Task, error) {
	if _, err := s.store.TaskForAssignee(ctx, taskID, actorID); err != nil {
		return Task{}, err
	}

	artifactRef := ""
	if len(artifact) > 0 && s.files != nil {
		ref, err := s.files.Store(ctx, artifactName, artifact)
		if err != nil {
			return Task{}, err
		}
		artifactRef = ref
	}

	return s.store.CompleteTask(ctx, taskID, time.Now().UTC(), artifactRef)
}

// Get returns a single task. Visible to its assignee, its assigner, and HR.
func (s *Service) Get(ctx context.Context, actorID, actorRole, taskID string) (Task, error) {
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return Task{}, err
	}
	if task.AssignedTo != actorID && task.AssignedBy != actorID && actorRole != auth.RoleHR {
		return Task{}, ErrForbidden
	}
	return task, nil
}

type TaskList struct {
	AssignedToMe []Task `json:"assignedToMe,omitempty"`
	AssignedByMe []Task `json:"assignedByMe,omitempty"`
}

func (s *Service) List(ctx context.Context, actorID, actorRole string) (TaskList, error) {
	var out TaskList
	switch actorRole {
	case auth.RoleEmployee:
		mine, err := s.store.ListAssignedTo(ctx, actorID)
		if err != nil {
			return TaskList{}, err
		}
		out.AssignedToMe = mine
	case auth.RoleTeamLeader:
		mine, err := s.store.ListAssignedTo(ctx, actorID)
		if err != nil {
			return TaskList{}, err
		}
		issued, err := s.store.ListAssignedBy(ctx, actorID)
		if err != nil {
			return TaskList{}, err
		}
		out.AssignedToMe = mine
		out.AssignedByMe = issued
	case auth.RoleManager:
		issued, err := s.store.ListAssignedBy(ctx, actorID)
		if err != nil {
			return TaskList{}, err
		}
		out.AssignedByMe = issued
	}
	// HR sees no task lists.
	return out, nil
}
