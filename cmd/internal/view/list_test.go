package view

import (
	"context"
	"errors"
	"testing"

	"fostercare/cmd/internal/backend"
	"fostercare/cmd/internal/backend/memory"
	"fostercare/cmd/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func childNames(children []*entity.Child) []string {
	out := make([]string, len(children))
	for i, c := range children {
		out[i] = c.DisplayName()
	}
	return out
}

func seedChildren(t *testing.T, repo backend.Records[*entity.Child], names ...[2]string) {
	t.Helper()
	for _, n := range names {
		_, err := repo.Insert(context.Background(), &entity.Child{FirstName: n[0], LastName: n[1], DateOfBirth: "2015-01-01"})
		require.NoError(t, err)
	}
}

func TestListView_SortAndPaginate(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRecords[*entity.Child](memory.Copy[entity.Child])
	seedChildren(t, repo, [2]string{"Bob", "Zeta"}, [2]string{"Amy", "Young"}, [2]string{"Cam", "Xi"})

	lv := NewChildrenView(repo, nil)
	lv.Spec.PageSize = 2
	require.NoError(t, lv.Load(ctx))

	assert.Equal(t, []string{"Amy Young", "Bob Zeta", "Cam Xi"}, childNames(lv.Sorted()))
	assert.Equal(t, 2, lv.PageCount())
	assert.Equal(t, []string{"Amy Young", "Bob Zeta"}, childNames(lv.Visible()))

	lv.Next()
	assert.Equal(t, []string{"Cam Xi"}, childNames(lv.Visible()))
	assert.False(t, lv.HasNext())

	lv.Next()
	assert.Equal(t, 2, lv.Page, "next on the last page stays put")

	lv.SetOrder(Desc)
	lv.GoTo(1)
	assert.Equal(t, []string{"Cam Xi", "Bob Zeta"}, childNames(lv.Visible()))

	lv.Prev()
	assert.Equal(t, 1, lv.Page)
}

func TestListView_Empty(t *testing.T) {
	lv := NewNotesView(memory.NewRecords[*entity.Note](memory.Copy[entity.Note]))
	require.NoError(t, lv.Load(context.Background()))

	assert.Equal(t, 0, lv.PageCount())
	assert.Equal(t, 1, lv.Page)
	assert.Empty(t, lv.Visible())

	lv.Next()
	lv.Prev()
	assert.Equal(t, 1, lv.Page)
}

func TestListView_NotesKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRecords[*entity.Note](memory.Copy[entity.Note])
	lv := NewNotesView(repo)

	for _, title := range []string{"b", "c", "a"} {
		require.NoError(t, lv.Submit(ctx, &entity.Note{Title: title, Content: "x"}))
	}

	var titles []string
	for _, n := range lv.Visible() {
		titles = append(titles, n.Title)
	}
	assert.Equal(t, []string{"a", "c", "b"}, titles, "newest first")
}

func TestListView_SubmitInsertAndUpdate(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRecords[*entity.Child](memory.Copy[entity.Child])
	seedChildren(t, repo, [2]string{"Amy", "Young"})

	lv := NewChildrenView(repo, nil)
	require.NoError(t, lv.Load(ctx))
	seeded := repo.Inserts

	require.NoError(t, lv.Submit(ctx, &entity.Child{FirstName: "Bob", LastName: "Zeta", DateOfBirth: "2014-02-02"}))
	require.Len(t, lv.Records, 2)
	assert.Equal(t, "Bob", lv.Records[0].FirstName, "insert prepends")
	assert.NotEmpty(t, lv.Records[0].ID)
	assert.Equal(t, seeded+1, repo.Inserts)

	edited := *lv.Records[1]
	edited.SocialWorker = "Dana"
	require.NoError(t, lv.Submit(ctx, &edited))
	assert.Equal(t, "Dana", lv.Records[1].SocialWorker)
	assert.Equal(t, 1, repo.Updates)

	remote, err := repo.SelectAll(ctx)
	require.NoError(t, err)
	assert.Len(t, remote, 2)
}

func TestListView_SubmitErrorLeavesState(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRecords[*entity.Child](memory.Copy[entity.Child])
	seedChildren(t, repo, [2]string{"Amy", "Young"})

	lv := NewChildrenView(repo, nil)
	require.NoError(t, lv.Load(ctx))
	before := childNames(lv.Records)

	repo.FailWith = errors.New("permission denied for table foster_children")
	err := lv.Submit(ctx, &entity.Child{FirstName: "Bob", LastName: "Zeta"})
	assert.Error(t, err)
	assert.Equal(t, before, childNames(lv.Records))
	assert.Equal(t, "permission denied for table foster_children", lv.Err)
}

type reentrantRepo struct {
	*memory.Records[*entity.Note]
	lv     *ListView[*entity.Note]
	nested error
}

func (r *reentrantRepo) Insert(ctx context.Context, n *entity.Note) (*entity.Note, error) {
	// A second click arriving while the first insert is awaited.
	r.nested = r.lv.Submit(ctx, &entity.Note{Title: n.Title, Content: n.Content})
	return r.Records.Insert(ctx, n)
}

func TestListView_DuplicateSubmitIsRejected(t *testing.T) {
	ctx := context.Background()
	repo := &reentrantRepo{Records: memory.NewRecords[*entity.Note](memory.Copy[entity.Note])}
	lv := NewNotesView(repo)
	repo.lv = lv

	require.NoError(t, lv.Submit(ctx, &entity.Note{Title: "visit", Content: "went well"}))
	assert.ErrorIs(t, repo.nested, ErrSubmitInFlight)
	assert.Len(t, lv.Records, 1)

	remote, err := repo.SelectAll(ctx)
	require.NoError(t, err)
	assert.Len(t, remote, 1, "exactly one remote record")
	assert.False(t, lv.Submitting())
}

func TestListView_Delete(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRecords[*entity.Child](memory.Copy[entity.Child])
	seedChildren(t, repo, [2]string{"A", "One"}, [2]string{"B", "Two"}, [2]string{"C", "Three"})

	lv := NewChildrenView(repo, nil)
	lv.SetOrder("")
	require.NoError(t, lv.Load(ctx))
	target := lv.Records[1].ID

	require.NoError(t, lv.Delete(ctx, target))
	assert.Equal(t, []string{"C Three", "A One"}, childNames(lv.Records))

	refetched := NewChildrenView(repo, nil)
	refetched.SetOrder("")
	require.NoError(t, refetched.Load(ctx))
	assert.Equal(t, childNames(lv.Records), childNames(refetched.Records), "remote keeps relative order")

	assert.ErrorIs(t, lv.Delete(ctx, target), backend.ErrNotFound)
	assert.Len(t, lv.Records, 2)
}

func TestListView_DeleteClampsPage(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRecords[*entity.Child](memory.Copy[entity.Child])
	for i := 0; i < 7; i++ {
		seedChildren(t, repo, [2]string{"Kid", string(rune('A' + i))})
	}

	lv := NewChildrenView(repo, nil)
	require.NoError(t, lv.Load(ctx))
	lv.GoTo(2)
	require.Len(t, lv.Visible(), 1)

	require.NoError(t, lv.Delete(ctx, lv.Visible()[0].ID))
	assert.Equal(t, 1, lv.Page)
	assert.Len(t, lv.Visible(), 6)
}

func TestListView_EditorRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRecords[*entity.Child](memory.Copy[entity.Child])
	seedChildren(t, repo, [2]string{"Amy", "Young"})

	lv := NewChildrenView(repo, nil)
	require.NoError(t, lv.Load(ctx))

	ed, err := lv.OpenEdit(ctx, lv.Records[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Edit Child", ed.Title())
	assert.Equal(t, "Amy", ed.Values["first_name"])

	ed.SelectGroup("Medical")
	ed.Set("medical_information", "asthma")
	ed.SelectGroup("Basic Information")
	ed.Set("gender", "F")

	require.NoError(t, lv.SubmitEditor(ctx))
	assert.Nil(t, lv.Editor)
	assert.Equal(t, "asthma", lv.Records[0].MedicalInformation)
	assert.Equal(t, "F", lv.Records[0].Gender)

	_, err = lv.OpenEdit(ctx, "missing")
	assert.ErrorIs(t, err, backend.ErrNotFound)
}

func TestListView_EditorValidationKeepsModalOpen(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRecords[*entity.Child](memory.Copy[entity.Child])
	lv := NewChildrenView(repo, nil)

	ed := lv.OpenCreate()
	assert.Equal(t, "Add New Child", ed.Title())
	ed.Set("first_name", "Amy")

	err := lv.SubmitEditor(ctx)
	var formErr *FormError
	require.ErrorAs(t, err, &formErr)
	assert.Contains(t, formErr.Fields, "last_name")
	assert.Contains(t, formErr.Fields, "date_of_birth")
	assert.NotNil(t, lv.Editor)
	assert.Zero(t, repo.Inserts)
}

func TestListView_EditorClosesOnBackendError(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRecords[*entity.Note](memory.Copy[entity.Note])
	lv := NewNotesView(repo)

	ed := lv.OpenCreate()
	ed.SetAll(map[string]string{"title": "Visit", "content": "ok"})
	repo.FailWith = errors.New("offline")

	assert.EqualError(t, lv.SubmitEditor(ctx), "offline")
	assert.Nil(t, lv.Editor)
	assert.Equal(t, "offline", lv.Err)
}
