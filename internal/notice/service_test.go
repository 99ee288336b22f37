package notice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	notices map[string]*Notice
	created []*Notice
	deleted []string
}

func newStubRepo() *stubRepo {
	return &stubRepo{notices: map[string]*Notice{}}
}

func (r *stubRepo) Create(_ context.Context, n *Notice) error {
	n.ID = "n1"
	r.created = append(r.created, n)
	r.notices[n.ID] = n
	return nil
}

func (r *stubRepo) GetByID(_ context.Context, id string) (*Notice, error) {
	n, ok := r.notices[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *n
	return &cp, nil
}

func (r *stubRepo) List(_ context.Context, _ Filter) ([]*Notice, int, error) {
	out := make([]*Notice, 0, len(r.notices))
	for _, n := range r.notices {
		out = append(out, n)
	}
	return out, len(out), nil
}

func (r *stubRepo) Update(_ context.Context, n *Notice) error {
	if _, ok := r.notices[n.ID]; !ok {
		return ErrNotFound
	}
	r.notices[n.ID] = n
	return nil
}

func (r *stubRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.notices[id]; !ok {
		return ErrNotFound
	}
	r.deleted = append(r.deleted, id)
	delete(r.notices, id)
	return nil
}

func TestCreateNotice(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		repo := newStubRepo()
		svc := NewService(repo)

		facID := "f1"
		n, err := svc.Create(ctx, CreateRequest{
			FacilityID: &facID,
			Title:      "Stengt for vedlikehold",
			Content:    "Hallen er stengt 12. til 14. juni.",
		})
		require.NoError(t, err)
		require.Equal(t, "n1", n.ID)
		require.Len(t, repo.created, 1)
	})

	t.Run("missing title", func(t *testing.T) {
		svc := NewService(newStubRepo())
		_, err := svc.Create(ctx, CreateRequest{Title: "  ", Content: "innhold"})
		require.ErrorIs(t, err, ErrTitleRequired)
	})

	t.Run("missing content", func(t *testing.T) {
		svc := NewService(newStubRepo())
		_, err := svc.Create(ctx, CreateRequest{Title: "tittel", Content: ""})
		require.ErrorIs(t, err, ErrContentRequired)
	})
}

func TestUpdateNotice(t *testing.T) {
	ctx := context.Background()

	seed := func(repo *stubRepo) {
		repo.notices["n1"] = &Notice{ID: "n1", Title: "Gammel tittel", Content: "Gammelt innhold"}
	}

	t.Run("partial update keeps other fields", func(t *testing.T) {
		repo := newStubRepo()
		seed(repo)
		svc := NewService(repo)

		title := "Ny tittel"
		n, err := svc.Update(ctx, "n1", UpdateRequest{Title: &title})
		require.NoError(t, err)
		require.Equal(t, "Ny tittel", n.Title)
		require.Equal(t, "Gammelt innhold", n.Content)
	})

	t.Run("blank title rejected", func(t *testing.T) {
		repo := newStubRepo()
		seed(repo)
		svc := NewService(repo)

		blank := " "
		_, err := svc.Update(ctx, "n1", UpdateRequest{Title: &blank})
		require.ErrorIs(t, err, ErrTitleRequired)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc := NewService(newStubRepo())
		title := "x"
		_, err := svc.Update(ctx, "missing", UpdateRequest{Title: &title})
		require.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestDeleteNotice(t *testing.T) {
	ctx := context.Background()

	repo := newStubRepo()
	repo.notices["n1"] = &Notice{ID: "n1", Title: "t", Content: "c"}
	svc := NewService(repo)

	require.NoError(t, svc.Delete(ctx, "n1"))
	require.Equal(t, []string{"n1"}, repo.deleted)

	err := svc.Delete(ctx, "n1")
	require.ErrorIs(t, err, ErrNotFound)
}
