package directory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const userColumns = `
    id, username, first_name, last_name, email, role,
    COALESCE(department_id::text, ''), COALESCE(manager_id::text, ''),
    COALESCE(employee_number, ''), phone, hire_date, created_at
`

func scanUser(row pgx.Row) (User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.Role,
		&u.DepartmentID, &u.ManagerID, &u.EmployeeNumber, &u.Phone, &u.HireDate, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (s *Store) GetUser(ctx context.Context, userID string) (User, error) {
	return scanUser(s.DB.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", userID))
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (User, string, error) {
	var u User
	var hash string
	err := s.DB.QueryRow(ctx, `
    SELECT `+userColumns+`, password_hash FROM users WHERE username = $1
  `, username).Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.Role,
		&u.DepartmentID, &u.ManagerID, &u.EmployeeNumber, &u.Phone, &u.HireDate, &u.CreatedAt, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, "", ErrNotFound
	}
	if err != nil {
		return User{}, "", err
	}
	return u, hash, nil
}

func (s *Store) UserRef(ctx context.Context, userID string) (UserRef, error) {
	var ref UserRef
	err := s.DB.QueryRow(ctx, `
    SELECT id, role, COALESCE(manager_id::text, '') FROM users WHERE id = $1
  `, userID).Scan(&ref.ID, &ref.Role, &ref.ManagerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return UserRef{}, ErrNotFound
	}
	if err != nil {
		return UserRef{}, err
	}
	return ref, nil
}

func (s *Store) ManagerID(ctx context.Context, userID string) (string, error) {
	var managerID string
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(manager_id::text, '') FROM users WHERE id = $1
  `, userID).Scan(&managerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return managerID, err
}

func (s *Store) Subordinates(ctx context.Context, userID string) ([]User, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+userColumns+" FROM users WHERE manager_id = $1 ORDER BY username", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.Role,
			&u.DepartmentID, &u.ManagerID, &u.EmployeeNumber, &u.Phone, &u.HireDate, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) ListUsers(ctx context.Context, role string) ([]User, error) {
	query := "SELECT " + userColumns + " FROM users"
	args := []any{}
	if role != "" {
		query += " WHERE role = $1"
		args = append(args, role)
	}
	query += " ORDER BY username"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.Role,
			&u.DepartmentID, &u.ManagerID, &u.EmployeeNumber, &u.Phone, &u.HireDate, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) CreateUser(ctx context.Context, u User, passwordHash string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (username, first_name, last_name, email, password_hash, role, department_id, manager_id, employee_number, phone, hire_date)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
    RETURNING id
  `, u.Username, u.FirstName, u.LastName, u.Email, passwordHash, u.Role,
		nullIfEmpty(u.DepartmentID), nullIfEmpty(u.ManagerID), nullIfEmpty(u.EmployeeNumber), u.Phone, u.HireDate).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) SetManager(ctx context.Context, userID, managerID string) error {
	tag, err := s.DB.Exec(ctx, "UPDATE users SET manager_id = $1 WHERE id = $2", nullIfEmpty(managerID), userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, name, description, created_at FROM departments ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []Department
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (s *Store) CreateDepartment(ctx context.Context, name, description string) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO departments (name, description) VALUES ($1,$2) RETURNING id
  `, name, description).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
