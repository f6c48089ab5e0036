package screen

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nekogravitycat/user-management-console/internal/activity"
	"github.com/nekogravitycat/user-management-console/internal/user"
)

var errRemote = errors.New("remote down")

// fakeRepo is an in-memory user.Repository that counts calls.
type fakeRepo struct {
	users []user.User
	err   error
	calls map[string]int
	draft user.Draft
}

func newFakeRepo(users ...user.User) *fakeRepo {
	return &fakeRepo{users: users, calls: map[string]int{}}
}

func (f *fakeRepo) List(ctx context.Context) ([]user.User, error) {
	f.calls["list"]++
	if f.err != nil {
		return nil, f.err
	}
	return append([]user.User{}, f.users...), nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	f.calls["get"]++
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if strconv.Itoa(u.ID) == id {
			u := u
			return &u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (f *fakeRepo) Create(ctx context.Context, d user.Draft) error {
	f.calls["create"]++
	f.draft = d
	return f.err
}

func (f *fakeRepo) Update(ctx context.Context, id int) error {
	f.calls["update"]++
	return f.err
}

func (f *fakeRepo) Delete(ctx context.Context, id int) error {
	f.calls["delete"]++
	return f.err
}

type fakeRecorder struct {
	entries []activity.Entry
}

func (r *fakeRecorder) Record(ctx context.Context, e activity.Entry) {
	r.entries = append(r.entries, e)
}

func seedUsers() []user.User {
	return []user.User{
		{ID: 1, Name: "Leanne Graham", Email: "Sincere@april.biz", Company: user.Company{Name: "Romaguera-Crona"}},
		{ID: 2, Name: "Ervin Howell", Email: "Shanna@melissa.tv", Company: user.Company{Name: "Deckow-Crist"}},
		{ID: 3, Name: "Clementine Bauch", Email: "Nathan@yesenia.net", Company: user.Company{Name: "Romaguera-Jacobson"}},
	}
}

func newTestService(repo user.Repository) (Service, *fakeRecorder) {
	rec := &fakeRecorder{}
	return NewService(repo, rec, zap.NewNop()), rec
}

func TestInit(t *testing.T) {
	repo := newFakeRepo(seedUsers()...)
	svc, _ := newTestService(repo)
	st := NewState()

	svc.Init(context.Background(), st)
	svc.Init(context.Background(), st)

	assert.True(t, st.Loaded)
	assert.Len(t, st.Users, 3)
	assert.Equal(t, 1, repo.calls["list"], "initial fetch runs once")
}

func TestFetchAll(t *testing.T) {
	t.Run("Replaces Snapshot And Clears Error", func(t *testing.T) {
		repo := newFakeRepo(seedUsers()...)
		svc, rec := newTestService(repo)
		st := &State{Users: []user.User{{ID: 42}}, Error: MsgDeleteFailed}

		svc.FetchAll(context.Background(), st)

		assert.Len(t, st.Users, 3)
		assert.Empty(t, st.Error)
		require.Len(t, rec.entries, 1)
		assert.Equal(t, activity.OutcomeOK, rec.entries[0].Outcome)
	})

	t.Run("Failure Keeps Prior Snapshot", func(t *testing.T) {
		repo := newFakeRepo()
		repo.err = errRemote
		svc, rec := newTestService(repo)
		st := &State{Users: seedUsers()}

		svc.FetchAll(context.Background(), st)

		assert.Equal(t, MsgFetchFailed, st.Error)
		assert.Len(t, st.Users, 3)
		require.Len(t, rec.entries, 1)
		assert.Equal(t, activity.OutcomeFailed, rec.entries[0].Outcome)
		assert.Equal(t, MsgFetchFailed, rec.entries[0].Message)
	})
}

func TestSearch(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		svc, _ := newTestService(newFakeRepo(seedUsers()...))
		st := &State{Users: seedUsers(), Error: MsgAddFailed}

		svc.Search(context.Background(), st, "2")

		require.Len(t, st.Users, 1)
		assert.Equal(t, 2, st.Users[0].ID)
		assert.Equal(t, "2", st.Query)
		assert.Empty(t, st.Error)
	})

	t.Run("Not Found Clears Snapshot", func(t *testing.T) {
		svc, rec := newTestService(newFakeRepo(seedUsers()...))
		st := &State{Users: seedUsers()}

		svc.Search(context.Background(), st, "99")

		assert.Empty(t, st.Users)
		assert.NotNil(t, st.Users)
		assert.Equal(t, MsgUserNotFound, st.Error)
		require.Len(t, rec.entries, 1)
		assert.Equal(t, "99", rec.entries[0].Target)
	})

	t.Run("Remote Failure Also Reports Not Found", func(t *testing.T) {
		repo := newFakeRepo(seedUsers()...)
		repo.err = errRemote
		svc, _ := newTestService(repo)
		st := &State{Users: seedUsers()}

		svc.Search(context.Background(), st, "1")

		assert.Empty(t, st.Users)
		assert.Equal(t, MsgUserNotFound, st.Error)
	})

	t.Run("Empty Query Fetches All", func(t *testing.T) {
		repo := newFakeRepo(seedUsers()...)
		svc, _ := newTestService(repo)
		st := &State{Users: []user.User{{ID: 2}}, Query: "2"}

		svc.Search(context.Background(), st, "")

		assert.Len(t, st.Users, 3)
		assert.Equal(t, "", st.Query)
		assert.Equal(t, 1, repo.calls["list"])
		assert.Equal(t, 0, repo.calls["get"])
	})
}

func TestAdd(t *testing.T) {
	draft := user.Draft{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Department: "R&D"}

	t.Run("Appends Synthesized Record", func(t *testing.T) {
		repo := newFakeRepo()
		svc, _ := newTestService(repo)
		st := &State{Users: seedUsers()}

		svc.Add(context.Background(), st, draft)

		require.Len(t, st.Users, 4)
		added := st.Users[3]
		assert.Equal(t, 4, added.ID)
		assert.Equal(t, "Ada Lovelace", added.Name)
		assert.Equal(t, "ada@example.com", added.Email)
		assert.Equal(t, "R&D", added.Company.Name)
		assert.Equal(t, user.Draft{}, st.Draft, "draft is cleared")
		assert.Empty(t, st.Error)
		assert.Equal(t, draft, repo.draft)
	})

	t.Run("Missing Field Issues No Request", func(t *testing.T) {
		repo := newFakeRepo()
		svc, rec := newTestService(repo)
		st := &State{Users: seedUsers()}
		partial := draft
		partial.Email = ""

		svc.Add(context.Background(), st, partial)

		assert.Equal(t, MsgFieldsRequired, st.Error)
		assert.Equal(t, 0, repo.calls["create"])
		assert.Len(t, st.Users, 3)
		assert.Equal(t, partial, st.Draft)
		assert.Empty(t, rec.entries)
	})

	t.Run("Failure Keeps Draft", func(t *testing.T) {
		repo := newFakeRepo()
		repo.err = errRemote
		svc, _ := newTestService(repo)
		st := &State{Users: seedUsers()}

		svc.Add(context.Background(), st, draft)

		assert.Equal(t, MsgAddFailed, st.Error)
		assert.Equal(t, draft, st.Draft)
		assert.Len(t, st.Users, 3)
	})
}

func TestEditAndUpdate(t *testing.T) {
	t.Run("At Most One Row In Edit Mode", func(t *testing.T) {
		svc, _ := newTestService(newFakeRepo())
		st := &State{Users: seedUsers()}

		svc.Edit(st, 1)
		svc.Edit(st, 2)

		assert.False(t, st.IsEditing(1))
		assert.True(t, st.IsEditing(2))
	})

	t.Run("Update Exits Edit Mode Without Refresh", func(t *testing.T) {
		repo := newFakeRepo()
		svc, _ := newTestService(repo)
		st := &State{Users: seedUsers()}
		before := append([]user.User{}, st.Users...)

		svc.Edit(st, 2)
		svc.Update(context.Background(), st, 2)

		assert.Nil(t, st.EditingID)
		assert.Equal(t, before, st.Users)
		assert.Equal(t, 1, repo.calls["update"])
		assert.Equal(t, 0, repo.calls["list"])
	})

	t.Run("Update Failure Stays In Edit Mode", func(t *testing.T) {
		repo := newFakeRepo()
		repo.err = errRemote
		svc, _ := newTestService(repo)
		st := &State{Users: seedUsers()}

		svc.Edit(st, 2)
		svc.Update(context.Background(), st, 2)

		assert.True(t, st.IsEditing(2))
		assert.Equal(t, MsgUpdateFailed, st.Error)
	})
}

func TestDelete(t *testing.T) {
	t.Run("Removes Row After Success", func(t *testing.T) {
		svc, _ := newTestService(newFakeRepo())
		st := &State{Users: seedUsers(), Error: MsgFetchFailed}

		svc.Delete(context.Background(), st, 2)

		require.Len(t, st.Users, 2)
		assert.Equal(t, 1, st.Users[0].ID)
		assert.Equal(t, 3, st.Users[1].ID)
		assert.Empty(t, st.Error)
	})

	t.Run("Failure Keeps Row", func(t *testing.T) {
		repo := newFakeRepo()
		repo.err = errRemote
		svc, _ := newTestService(repo)
		st := &State{Users: seedUsers()}

		svc.Delete(context.Background(), st, 2)

		assert.Len(t, st.Users, 3)
		assert.Equal(t, MsgDeleteFailed, st.Error)
	})
}

func TestErrorOverwrite(t *testing.T) {
	repo := newFakeRepo()
	repo.err = errRemote
	svc, _ := newTestService(repo)
	st := &State{Users: seedUsers()}

	svc.Delete(context.Background(), st, 1)
	svc.Update(context.Background(), st, 1)

	assert.Equal(t, MsgUpdateFailed, st.Error)
}

func TestRecordsSessionFromContext(t *testing.T) {
	svc, rec := newTestService(newFakeRepo(seedUsers()...))
	ctx := activity.WithSession(context.Background(), "session-1")

	svc.FetchAll(ctx, NewState())

	require.Len(t, rec.entries, 1)
	assert.Equal(t, "session-1", rec.entries[0].SessionID)
	assert.Equal(t, activity.ActionFetchAll, rec.entries[0].Action)
}

func TestRows(t *testing.T) {
	st := &State{Users: []user.User{
		{ID: 1, Name: "Leanne Graham", Email: "a@b.c", Company: user.Company{Name: "Acme"}},
		{ID: 2, Name: "Ervin"},
	}}
	id := 2
	st.EditingID = &id

	rows := st.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, Row{ID: 1, FirstName: "Leanne", LastName: "Graham", Email: "a@b.c", Department: "Acme"}, rows[0])
	assert.Equal(t, Row{ID: 2, FirstName: "Ervin", Editing: true}, rows[1])
}

func TestSetQueryAndDraftAreLocal(t *testing.T) {
	repo := newFakeRepo(seedUsers()...)
	svc, rec := newTestService(repo)
	st := NewState()

	svc.SetQuery(st, "9")
	svc.SetDraft(st, user.Draft{FirstName: "Ada"})

	assert.Equal(t, "9", st.Query)
	assert.Equal(t, "Ada", st.Draft.FirstName)
	assert.Empty(t, repo.calls)
	assert.Empty(t, rec.entries)
}
