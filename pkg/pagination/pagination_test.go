package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPaginationParamsValidate(t *testing.T) {
	params := &PaginationParams{Page: 0, PerPage: 0}
	params.Validate()
	require.Equal(t, 1, params.Page)
	require.Equal(t, 15, params.PerPage)

	params = &PaginationParams{Page: 3, PerPage: 500}
	params.Validate()
	require.Equal(t, 3, params.Page)
	require.Equal(t, 100, params.PerPage)
}

func TestPaginationParamsOffset(t *testing.T) {
	params := &PaginationParams{Page: 1, PerPage: 15}
	require.Equal(t, 0, params.Offset())

	params = &PaginationParams{Page: 4, PerPage: 25}
	require.Equal(t, 75, params.Offset())
}

func TestNewPagination(t *testing.T) {
	pag := NewPagination(2, 15, 31)
	require.Equal(t, 2, pag.CurrentPage)
	require.Equal(t, 3, pag.TotalPages)
	require.True(t, pag.HasNext)
	require.True(t, pag.HasPrev)

	pag = NewPagination(1, 15, 10)
	require.Equal(t, 1, pag.TotalPages)
	require.False(t, pag.HasNext)
	require.False(t, pag.HasPrev)
}

func TestCursorRoundTrip(t *testing.T) {
	createdAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	encoded := EncodeCursor("abc-123", createdAt)

	params := &CursorParams{Cursor: encoded}
	cursor, err := params.DecodeCursor()
	require.NoError(t, err)
	require.Equal(t, "abc-123", cursor.ID)
	require.True(t, createdAt.Equal(cursor.CreatedAt))
}

func TestDecodeCursorEmpty(t *testing.T) {
	params := &CursorParams{}
	cursor, err := params.DecodeCursor()
	require.NoError(t, err)
	require.Nil(t, cursor)
}

func TestDecodeCursorInvalid(t *testing.T) {
	params := &CursorParams{Cursor: "not-base64!!!"}
	_, err := params.DecodeCursor()
	require.Error(t, err)
}

func TestCursorParamsValidate(t *testing.T) {
	params := &CursorParams{}
	params.Validate()
	require.Equal(t, 15, params.Limit)
	require.Equal(t, CursorDirectionNext, params.Direction)

	params = &CursorParams{Limit: 1000}
	params.Validate()
	require.Equal(t, 100, params.Limit)
}

type cursorItem struct {
	ID        string
	CreatedAt time.Time
}

func TestNewCursorPaginationDetectsMore(t *testing.T) {
	now := time.Now()
	items := []cursorItem{
		{ID: "a", CreatedAt: now},
		{ID: "b", CreatedAt: now},
		{ID: "c", CreatedAt: now}, // limit+1 sentinel
	}

	pag, trimmed := NewCursorPagination(items, 2,
		func(i cursorItem) string { return i.ID },
		func(i cursorItem) time.Time { return i.CreatedAt },
	)
	require.Len(t, trimmed, 2)
	require.True(t, pag.HasNext)
	require.NotNil(t, pag.NextCursor)
	require.NotNil(t, pag.PrevCursor)

	cursor, err := (&CursorParams{Cursor: *pag.NextCursor}).DecodeCursor()
	require.NoError(t, err)
	require.Equal(t, "b", cursor.ID)
}

func TestNewCursorPaginationLastPage(t *testing.T) {
	items := []cursorItem{{ID: "a"}}
	pag, trimmed := NewCursorPagination(items, 2,
		func(i cursorItem) string { return i.ID },
		func(i cursorItem) time.Time { return i.CreatedAt },
	)
	require.Len(t, trimmed, 1)
	require.False(t, pag.HasNext)
}
