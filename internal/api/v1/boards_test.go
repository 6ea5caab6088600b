package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/kyulab/labms/internal/api/v1"
	"github.com/kyulab/labms/internal/domain"
	"github.com/kyulab/labms/internal/service"
)

func testBoard(authorID uuid.UUID, title string) *domain.Board {
	now := time.Now().Truncate(time.Second)
	return &domain.Board{
		ID:        uuid.New(),
		Title:     title,
		Content:   "content",
		Public:    true,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func boardServiceWith(boards *mockBoardRepo) *service.BoardService {
	return service.NewBoardService(boards, nil, mockTx{})
}

// ---------------------------------------------------------------------------
// POST /boards
// ---------------------------------------------------------------------------

func TestCreateBoard(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		actor := &domain.Researcher{ID: uuid.New()}
		boards := boardServiceWith(&mockBoardRepo{
			createFunc: func(_ context.Context, b *domain.Board) error {
				assert.Equal(t, actor.ID, b.AuthorID)
				return nil
			},
		})

		_, api := humatest.New(t)
		v1.RegisterBoardRoutes(api, boards, identityOf(actor))

		resp := api.PostCtx(userCtx(uuid.New(), "alice"), "/boards", map[string]any{
			"title":   "랩 세미나 공지",
			"content": "금요일 3시",
		})

		require.Equal(t, http.StatusOK, resp.Code)

		var body struct {
			Data  *v1.BoardResponse `json:"data"`
			Error string            `json:"error"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		require.NotNil(t, body.Data)
		assert.Empty(t, body.Error)
		assert.Equal(t, "랩 세미나 공지", body.Data.Title)
		assert.Equal(t, actor.ID, body.Data.AuthorID)
	})

	t.Run("no_profile_yields_benign_200_and_writes_nothing", func(t *testing.T) {
		t.Parallel()

		boards := boardServiceWith(&mockBoardRepo{
			createFunc: func(_ context.Context, _ *domain.Board) error {
				t.Fatal("no board row may be written without a profile")
				return nil
			},
		})

		_, api := humatest.New(t)
		v1.RegisterBoardRoutes(api, boards, identityErr(domain.ErrNoProfile))

		resp := api.PostCtx(userCtx(uuid.New(), "guest99"), "/boards", map[string]any{
			"title":   "orphan post",
			"content": "x",
		})

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), "No researcher profile associated with this user")
	})
}

// ---------------------------------------------------------------------------
// PUT /boards/{id}
// ---------------------------------------------------------------------------

func TestUpdateBoard(t *testing.T) {
	t.Parallel()

	t.Run("owner_updates_own_post", func(t *testing.T) {
		t.Parallel()

		actor := &domain.Researcher{ID: uuid.New()}
		board := testBoard(actor.ID, "old title")

		boards := boardServiceWith(&mockBoardRepo{
			getByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.Board, error) {
				assert.Equal(t, board.ID, id)
				return board, nil
			},
			updateFunc: func(_ context.Context, _ *domain.Board) error { return nil },
		})

		_, api := humatest.New(t)
		v1.RegisterBoardRoutes(api, boards, identityOf(actor))

		resp := api.PutCtx(userCtx(uuid.New(), "alice"), "/boards/"+board.ID.String(), map[string]any{
			"title": "new title",
		})

		require.Equal(t, http.StatusOK, resp.Code)

		var body struct {
			Data  *v1.BoardResponse `json:"data"`
			Error string            `json:"error"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		require.NotNil(t, body.Data)
		assert.Equal(t, "new title", body.Data.Title)
	})

	t.Run("non_owner_maps_to_403", func(t *testing.T) {
		t.Parallel()

		actor := &domain.Researcher{ID: uuid.New()}
		board := testBoard(uuid.New(), "someone else's post")

		boards := boardServiceWith(&mockBoardRepo{
			getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Board, error) {
				return board, nil
			},
			updateFunc: func(_ context.Context, _ *domain.Board) error {
				t.Fatal("update must not run for a non-owner")
				return nil
			},
		})

		_, api := humatest.New(t)
		v1.RegisterBoardRoutes(api, boards, identityOf(actor))

		resp := api.PutCtx(userCtx(uuid.New(), "alice"), "/boards/"+board.ID.String(), map[string]any{
			"title": "hijack",
		})

		assert.Equal(t, http.StatusForbidden, resp.Code)
	})

	t.Run("admin_bypasses_owner_check", func(t *testing.T) {
		t.Parallel()

		actor := &domain.Researcher{ID: uuid.New()}
		board := testBoard(uuid.New(), "someone else's post")

		boards := boardServiceWith(&mockBoardRepo{
			getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Board, error) {
				return board, nil
			},
			updateFunc: func(_ context.Context, _ *domain.Board) error { return nil },
		})

		_, api := humatest.New(t)
		v1.RegisterBoardRoutes(api, boards, identityOf(actor))

		resp := api.PutCtx(adminCtx(uuid.New(), "admin"), "/boards/"+board.ID.String(), map[string]any{
			"title": "moderated title",
		})

		require.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("unknown_post_maps_to_404", func(t *testing.T) {
		t.Parallel()

		boards := boardServiceWith(&mockBoardRepo{
			getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Board, error) {
				return nil, domain.ErrNotFound
			},
		})

		_, api := humatest.New(t)
		v1.RegisterBoardRoutes(api, boards, identityOf(&domain.Researcher{ID: uuid.New()}))

		resp := api.PutCtx(userCtx(uuid.New(), "alice"), "/boards/"+uuid.NewString(), map[string]any{
			"title": "ghost",
		})

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// GET /public/boards
// ---------------------------------------------------------------------------

func TestListPublicBoards(t *testing.T) {
	t.Parallel()

	boards := boardServiceWith(&mockBoardRepo{
		listPublicFunc: func(_ context.Context) ([]*domain.Board, error) {
			return []*domain.Board{testBoard(uuid.New(), "open house")}, nil
		},
	})

	_, api := humatest.New(t)
	v1.RegisterPublicBoardRoutes(api, boards)

	resp := api.Get("/public/boards")

	require.Equal(t, http.StatusOK, resp.Code)

	var body []v1.BoardResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "open house", body[0].Title)
}
