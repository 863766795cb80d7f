package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/internal/middleware"
	"github.com/taskforge/backend/pkg/token"
	taskUC "github.com/taskforge/backend/usecase/task"
)

type taskRepoMock struct {
	mock.Mock
}

func (m *taskRepoMock) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	args := m.Called(ctx, task)
	var created *domain.Task
	if value := args.Get(0); value != nil {
		created = value.(*domain.Task)
	}
	return created, args.Error(1)
}

func (m *taskRepoMock) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Task, error) {
	args := m.Called(ctx, ownerID)
	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskRepoMock) GetOwned(ctx context.Context, id, ownerID int64) (*domain.Task, error) {
	args := m.Called(ctx, id, ownerID)
	var task *domain.Task
	if value := args.Get(0); value != nil {
		task = value.(*domain.Task)
	}
	return task, args.Error(1)
}

func (m *taskRepoMock) UpdateOwned(ctx context.Context, id, ownerID int64, patch domain.TaskPatch) (*domain.Task, error) {
	args := m.Called(ctx, id, ownerID, patch)
	var task *domain.Task
	if value := args.Get(0); value != nil {
		task = value.(*domain.Task)
	}
	return task, args.Error(1)
}

func (m *taskRepoMock) DeleteOwned(ctx context.Context, id, ownerID int64) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

// authedCtx builds a request context whose principal was bound the same way
// production requests get it: through the JWT guard with a real signed token.
func authedCtx(t *testing.T, userID int64, method, body string) *fasthttp.RequestCtx {
	t.Helper()
	issuer := token.NewIssuer("handler-test-secret", "api", 0)
	signed, err := issuer.Issue(userID)
	require.NoError(t, err)

	ctx := new(fasthttp.RequestCtx)
	ctx.Request.Header.SetMethod(method)
	ctx.Request.Header.Set("Authorization", "Bearer "+signed)
	if body != "" {
		ctx.Request.SetBodyString(body)
	}

	bound := false
	guard := middleware.JWTAuth(issuer, nil)
	guard(func(*fasthttp.RequestCtx) { bound = true })(ctx)
	require.True(t, bound)
	return ctx
}

func newTaskHandler(repo *taskRepoMock) *TaskHandler {
	return NewTaskHandler(taskUC.New(repo, nil, nil, nil), nil, nil)
}

func TestCreateTaskHandler_Created(t *testing.T) {
	repo := new(taskRepoMock)
	due, _ := time.Parse(domain.DueDateLayout, "2025-03-14")
	repo.On("Create", mock.Anything, mock.MatchedBy(func(task *domain.Task) bool {
		return task.UserID == 7 && task.Title == "Buy milk"
	})).Return(&domain.Task{
		ID:      1,
		UserID:  7,
		Title:   "Buy milk",
		Status:  domain.StatusPending,
		DueDate: due,
	}, nil).Once()

	h := newTaskHandler(repo)

	ctx := authedCtx(t, 7, fasthttp.MethodPost, `{"title":"Buy milk","due_date":"2025-03-14"}`)
	h.CreateTask(ctx)

	require.Equal(t, http.StatusCreated, ctx.Response.StatusCode())
	envelope := decodeEnvelope(t, ctx)
	data := envelope.Data.(map[string]interface{})
	require.Equal(t, "Buy milk", data["title"])
	require.Equal(t, domain.StatusPending, data["status"])
	require.Equal(t, "2025-03-14", data["due_date"])
	repo.AssertExpectations(t)
}

func TestCreateTaskHandler_ValidationFailure(t *testing.T) {
	h := newTaskHandler(new(taskRepoMock))

	ctx := authedCtx(t, 7, fasthttp.MethodPost, `{"title":"x","due_date":"14-03-2025"}`)
	h.CreateTask(ctx)

	require.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	require.Equal(t, string(domain.ErrCodeInvalid), decodeEnvelope(t, ctx).Code)
}

func TestCreateTaskHandler_NoPrincipal(t *testing.T) {
	h := newTaskHandler(new(taskRepoMock))

	ctx := postCtx(`{"title":"x"}`)
	h.CreateTask(ctx)

	require.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestListTasksHandler_EmptyIsArray(t *testing.T) {
	repo := new(taskRepoMock)
	repo.On("ListByOwner", mock.Anything, int64(7)).Return([]domain.Task{}, nil).Once()

	h := newTaskHandler(repo)

	ctx := authedCtx(t, 7, fasthttp.MethodGet, "")
	h.ListTasks(ctx)

	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	envelope := decodeEnvelope(t, ctx)
	tasks, ok := envelope.Data.([]interface{})
	require.True(t, ok)
	require.Empty(t, tasks)
}

func TestGetTaskHandler_ForeignTaskLooksMissing(t *testing.T) {
	repo := new(taskRepoMock)
	// The repository reports a task owned by someone else exactly as absent.
	repo.On("GetOwned", mock.Anything, int64(9), int64(7)).Return(nil, error(domain.ErrTaskNotFound)).Once()

	h := newTaskHandler(repo)

	ctx := authedCtx(t, 7, fasthttp.MethodGet, "")
	ctx.SetUserValue("id", "9")
	h.GetTask(ctx)

	require.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
	require.Equal(t, string(domain.ErrCodeNotFound), decodeEnvelope(t, ctx).Code)
}

func TestGetTaskHandler_BadID(t *testing.T) {
	h := newTaskHandler(new(taskRepoMock))

	ctx := authedCtx(t, 7, fasthttp.MethodGet, "")
	ctx.SetUserValue("id", "abc")
	h.GetTask(ctx)

	require.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
}

func TestUpdateTaskHandler_PartialUpdate(t *testing.T) {
	repo := new(taskRepoMock)
	due, _ := time.Parse(domain.DueDateLayout, "2025-05-01")
	repo.On("UpdateOwned", mock.Anything, int64(3), int64(7), mock.MatchedBy(func(patch domain.TaskPatch) bool {
		return patch.Status != nil && *patch.Status == "done" && patch.Title == nil
	})).Return(&domain.Task{
		ID:      3,
		UserID:  7,
		Title:   "kept",
		Status:  "done",
		DueDate: due,
	}, nil).Once()

	h := newTaskHandler(repo)

	ctx := authedCtx(t, 7, fasthttp.MethodPut, `{"status":"done"}`)
	ctx.SetUserValue("id", "3")
	h.UpdateTask(ctx)

	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	data := decodeEnvelope(t, ctx).Data.(map[string]interface{})
	require.Equal(t, "done", data["status"])
	require.Equal(t, "kept", data["title"])
	repo.AssertExpectations(t)
}

func TestDeleteTaskHandler_SecondDeleteIsNotFound(t *testing.T) {
	repo := new(taskRepoMock)
	repo.On("DeleteOwned", mock.Anything, int64(3), int64(7)).Return(nil).Once()
	repo.On("DeleteOwned", mock.Anything, int64(3), int64(7)).Return(error(domain.ErrTaskNotFound)).Once()

	h := newTaskHandler(repo)

	first := authedCtx(t, 7, fasthttp.MethodDelete, "")
	first.SetUserValue("id", "3")
	h.DeleteTask(first)
	require.Equal(t, http.StatusOK, first.Response.StatusCode())
	firstData := decodeEnvelope(t, first).Data.(map[string]interface{})
	require.EqualValues(t, 3, firstData["deleted"])

	second := authedCtx(t, 7, fasthttp.MethodDelete, "")
	second.SetUserValue("id", "3")
	h.DeleteTask(second)
	require.Equal(t, http.StatusNotFound, second.Response.StatusCode())
	repo.AssertExpectations(t)
}
