package services

import (
	"database/sql"
	"errors"

	"github.com/avezina/todostack/internal/models"
)

// TodoServiceProvider defines the interface for todo services.
type TodoServiceProvider interface {
	Create(ownerUUID, title, description string) (models.Todo, error)
	ListByOwner(ownerUUID string) ([]models.Todo, error)
	Update(id int64, ownerUUID string, update models.TodoUpdate) (models.Todo, error)
	Delete(id int64, ownerUUID string) error
}

// TodoService provides owner-scoped todo management.
type TodoService struct {
	db *sql.DB
}

// NewTodoService creates a new TodoService.
func NewTodoService(db *sql.DB) *TodoService {
	return &TodoService{db: db}
}

// scanTodo is a helper to scan a todo from a row or rows object.
func scanTodo(scanner interface{ Scan(...interface{}) error }) (models.Todo, error) {
	var t models.Todo
	err := scanner.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.OwnerUUID, &t.CreatedAt)
	return t, err
}

// getByID retrieves a single todo regardless of owner.
func (s *TodoService) getByID(id int64) (models.Todo, error) {
	const query = `
		SELECT id, title, description, status, owner_uuid, created_at
		FROM todos WHERE id = ?`
	todo, err := scanTodo(s.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Todo{}, ErrTodoNotFound
		}
		return models.Todo{}, err
	}
	return todo, nil
}

// Create persists a new todo owned by ownerUUID with status "todo".
func (s *TodoService) Create(ownerUUID, title, description string) (models.Todo, error) {
	stmt, err := s.db.Prepare("INSERT INTO todos(title, description, status, owner_uuid) VALUES(?, ?, ?, ?)")
	if err != nil {
		return models.Todo{}, err
	}
	defer stmt.Close()

	res, err := stmt.Exec(title, description, models.StatusTodo, ownerUUID)
	if err != nil {
		return models.Todo{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Todo{}, err
	}

	// Re-read so the caller gets the store-assigned created_at.
	return s.getByID(id)
}

// ListByOwner retrieves all todos owned by ownerUUID, newest-created
// first. An owner with no todos gets an empty slice, not nil, so the
// JSON response is always an array.
func (s *TodoService) ListByOwner(ownerUUID string) ([]models.Todo, error) {
	const query = `
		SELECT id, title, description, status, owner_uuid, created_at
		FROM todos WHERE owner_uuid = ?
		ORDER BY created_at DESC, id DESC`
	rows, err := s.db.Query(query, ownerUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []models.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, rows.Err()
}

// checkOwnership fetches the todo and verifies the caller owns it.
// Existence is checked before ownership: an unknown id is ErrTodoNotFound
// for every caller, a foreign id is ErrNotOwner.
func (s *TodoService) checkOwnership(id int64, ownerUUID string) (models.Todo, error) {
	todo, err := s.getByID(id)
	if err != nil {
		return models.Todo{}, err
	}
	if todo.OwnerUUID != ownerUUID {
		return models.Todo{}, ErrNotOwner
	}
	return todo, nil
}

// Update applies a partial update to a todo owned by ownerUUID. Nil
// fields in update keep their stored values.
func (s *TodoService) Update(id int64, ownerUUID string, update models.TodoUpdate) (models.Todo, error) {
	todo, err := s.checkOwnership(id, ownerUUID)
	if err != nil {
		return models.Todo{}, err
	}

	if update.Title != nil {
		todo.Title = *update.Title
	}
	if update.Description != nil {
		todo.Description = *update.Description
	}
	if update.Status != nil {
		todo.Status = *update.Status
	}

	_, err = s.db.Exec("UPDATE todos SET title = ?, description = ?, status = ? WHERE id = ?",
		todo.Title, todo.Description, todo.Status, todo.ID)
	if err != nil {
		return models.Todo{}, err
	}
	return todo, nil
}

// Delete removes a todo owned by ownerUUID.
func (s *TodoService) Delete(id int64, ownerUUID string) error {
	if _, err := s.checkOwnership(id, ownerUUID); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM todos WHERE id = ?", id)
	return err
}
