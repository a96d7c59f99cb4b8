package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avezina/todostack/internal/models"
	"github.com/avezina/todostack/internal/services"
	"github.com/avezina/todostack/internal/testutil"
)

const (
	ownerA = "owner-a-uuid"
	ownerB = "owner-b-uuid"
)

func strptr(s string) *string { return &s }

func TestCreateSetsDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewTodoService(db)

	todo, err := svc.Create(ownerA, "T1", "first task")
	require.NoError(t, err)

	assert.NotZero(t, todo.ID)
	assert.Equal(t, "T1", todo.Title)
	assert.Equal(t, "first task", todo.Description)
	assert.Equal(t, models.StatusTodo, todo.Status, "New todos start in the todo status")
	assert.Equal(t, ownerA, todo.OwnerUUID)
	assert.False(t, todo.CreatedAt.IsZero(), "Expected a store-assigned creation time")
}

func TestListIsOwnerScopedAndNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewTodoService(db)

	first, err := svc.Create(ownerA, "first", "")
	require.NoError(t, err)
	second, err := svc.Create(ownerA, "second", "")
	require.NoError(t, err)
	_, err = svc.Create(ownerB, "other owner", "")
	require.NoError(t, err)

	todos, err := svc.ListByOwner(ownerA)
	require.NoError(t, err)
	require.Len(t, todos, 2, "Only ownerA todos should be listed")
	assert.Equal(t, second.ID, todos[0].ID, "Newest todo comes first")
	assert.Equal(t, first.ID, todos[1].ID)
	for _, todo := range todos {
		assert.Equal(t, ownerA, todo.OwnerUUID)
	}
}

func TestListEmptyOwnerGetsEmptySlice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewTodoService(db)

	todos, err := svc.ListByOwner("nobody")
	require.NoError(t, err)
	assert.NotNil(t, todos, "An owner with no todos gets [], never null")
	assert.Empty(t, todos)
}

func TestUpdateIsPartial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewTodoService(db)

	todo, err := svc.Create(ownerA, "T1", "keep me")
	require.NoError(t, err)

	updated, err := svc.Update(todo.ID, ownerA, models.TodoUpdate{Status: strptr(models.StatusDone)})
	require.NoError(t, err)

	assert.Equal(t, models.StatusDone, updated.Status)
	assert.Equal(t, "T1", updated.Title, "Unset fields retain their prior value")
	assert.Equal(t, "keep me", updated.Description)

	retitled, err := svc.Update(todo.ID, ownerA, models.TodoUpdate{Title: strptr("T2")})
	require.NoError(t, err)
	assert.Equal(t, "T2", retitled.Title)
	assert.Equal(t, models.StatusDone, retitled.Status, "Earlier update persisted")
}

func TestUpdateExistenceBeforeOwnership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewTodoService(db)

	todo, err := svc.Create(ownerA, "T1", "")
	require.NoError(t, err)

	// Unknown id is not-found for every caller, owner included.
	_, err = svc.Update(todo.ID+999, ownerA, models.TodoUpdate{Title: strptr("x")})
	assert.ErrorIs(t, err, services.ErrTodoNotFound)

	_, err = svc.Update(todo.ID, ownerB, models.TodoUpdate{Title: strptr("hijack")})
	assert.ErrorIs(t, err, services.ErrNotOwner)

	// The foreign update must not have gone through.
	todos, err := svc.ListByOwner(ownerA)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "T1", todos[0].Title)
}

func TestDeleteChecksExistenceAndOwnership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewTodoService(db)

	todo, err := svc.Create(ownerA, "T1", "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(todo.ID+999, ownerA), services.ErrTodoNotFound)
	assert.ErrorIs(t, svc.Delete(todo.ID, ownerB), services.ErrNotOwner)

	require.NoError(t, svc.Delete(todo.ID, ownerA))

	// Deleting again reports not-found.
	assert.ErrorIs(t, svc.Delete(todo.ID, ownerA), services.ErrTodoNotFound)
}
