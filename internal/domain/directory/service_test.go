package directory

import (
	"context"
	"errors"
	"testing"

	"appraise/internal/domain/auth"
)

type fakeStore struct {
	users map[string]User
}

func newFakeStore(users ...User) *fakeStore {
	byID := make(map[string]User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return &fakeStore{users: byID}
}

func (f *fakeStore) GetUser(_ context.Context, userID string) (User, error) {
	u, ok := f.users[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) GetUserByUsername(_ context.Context, username string) (User, string, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, "", nil
		}
	}
	return User{}, "", ErrNotFound
}

func (f *fakeStore) UserRef(ctx context.Context, userID string) (UserRef, error) {
	u, err := f.GetUser(ctx, userID)
	if err != nil {
		return UserRef{}, err
	}
	return UserRef{ID: u.ID, Role: u.Role, ManagerID: u.ManagerID}, nil
}

func (f *fakeStore) ManagerID(ctx context.Context, userID string) (string, error) {
	u, err := f.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}
	return u.ManagerID, nil
}

func (f *fakeStore) Subordinates(_ context.Context, userID string) ([]User, error) {
	var out []User
	for _, u := range f.users {
		if u.ManagerID == userID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeStore) ListUsers(_ context.Context, role string) ([]User, error) {
	var out []User
	for _, u := range f.users {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateUser(_ context.Context, u User, _ string) (string, error) {
	if u.ID == "" {
		u.ID = "generated"
	}
	f.users[u.ID] = u
	return u.ID, nil
}

func (f *fakeStore) SetManager(_ context.Context, userID, managerID string) error {
	u, ok := f.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.ManagerID = managerID
	f.users[userID] = u
	return nil
}

func (f *fakeStore) ListDepartments(_ context.Context) ([]Department, error) { return nil, nil }

func (f *fakeStore) CreateDepartment(_ context.Context, name, _ string) (string, error) {
	return name, nil
}

func TestSetManagerRejectsCycle(t *testing.T) {
	store := newFakeStore(
		User{ID: "m1", Username: "mgr", Role: auth.RoleManager},
		User{ID: "tl1", Username: "lead", Role: auth.RoleTeamLeader, ManagerID: "m1"},
		User{ID: "e1", Username: "emp", Role: auth.RoleEmployee, ManagerID: "tl1"},
	)
	svc := NewService(store)

	err := svc.SetManager(context.Background(), "m1", "e1")
	if !errors.Is(err, ErrManagerCycle) {
		t.Fatalf("expected ErrManagerCycle, got %v", err)
	}

	if err := svc.SetManager(context.Background(), "e1", "m1"); err != nil {
		t.Fatalf("reparenting to an ancestor-free node should pass: %v", err)
	}
}

func TestSetManagerUnknownManager(t *testing.T) {
	store := newFakeStore(User{ID: "e1", Username: "emp", Role: auth.RoleEmployee})
	svc := NewService(store)

	if err := svc.SetManager(context.Background(), "e1", "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateUserChecksManager(t *testing.T) {
	store := newFakeStore(User{ID: "tl1", Username: "lead", Role: auth.RoleTeamLeader})
	svc := NewService(store)

	id, err := svc.CreateUser(context.Background(), User{Username: "emp", Email: "e@x", Role: auth.RoleEmployee, ManagerID: "tl1"}, "pw")
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected an id")
	}

	if _, err := svc.CreateUser(context.Background(), User{Username: "emp2", Email: "e2@x", Role: auth.RoleEmployee, ManagerID: "ghost"}, "pw"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown manager, got %v", err)
	}
}
