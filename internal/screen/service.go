package screen

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/nekogravitycat/user-management-console/internal/activity"
	"github.com/nekogravitycat/user-management-console/internal/user"
)

// Service applies operator actions to a screen State.
// Each method issues at most one remote call and never returns an error:
// failures are reported through State.Error.
type Service interface {
	Init(ctx context.Context, st *State)
	FetchAll(ctx context.Context, st *State)
	Search(ctx context.Context, st *State, query string)
	SetQuery(st *State, query string)
	SetDraft(st *State, d user.Draft)
	Add(ctx context.Context, st *State, d user.Draft)
	Edit(st *State, id int)
	Update(ctx context.Context, st *State, id int)
	Delete(ctx context.Context, st *State, id int)
}

type service struct {
	repo     user.Repository
	recorder activity.Recorder
	logger   *zap.Logger
}

// NewService creates a new screen Service.
func NewService(repo user.Repository, recorder activity.Recorder, logger *zap.Logger) Service {
	return &service{
		repo:     repo,
		recorder: recorder,
		logger:   logger,
	}
}

// Init performs the first fetch of a freshly created screen. It is a no-op once loaded.
func (s *service) Init(ctx context.Context, st *State) {
	if st.Loaded {
		return
	}
	st.Loaded = true
	s.FetchAll(ctx, st)
}

func (s *service) FetchAll(ctx context.Context, st *State) {
	users, err := s.repo.List(ctx)
	if err != nil {
		// The prior snapshot stays on screen.
		s.fail(ctx, st, activity.ActionFetchAll, "", MsgFetchFailed, err)
		return
	}

	st.Users = users
	st.clearError()
	s.ok(ctx, activity.ActionFetchAll, "")
}

func (s *service) Search(ctx context.Context, st *State, query string) {
	st.Query = query
	if query == "" {
		s.FetchAll(ctx, st)
		return
	}

	u, err := s.repo.GetByID(ctx, query)
	if err != nil {
		st.Users = []user.User{}
		s.fail(ctx, st, activity.ActionSearch, query, MsgUserNotFound, err)
		return
	}

	st.Users = []user.User{*u}
	st.clearError()
	s.ok(ctx, activity.ActionSearch, query)
}

// SetQuery keeps the search box contents without searching.
func (s *service) SetQuery(st *State, query string) {
	st.Query = query
}

func (s *service) SetDraft(st *State, d user.Draft) {
	st.Draft = d
}

func (s *service) Add(ctx context.Context, st *State, d user.Draft) {
	st.Draft = d
	if !d.Complete() {
		st.setError(MsgFieldsRequired)
		return
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.fail(ctx, st, activity.ActionAdd, "", MsgAddFailed, err)
		return
	}

	// The remote does not persist, so the row is synthesized locally.
	added := user.User{
		ID:      len(st.Users) + 1,
		Name:    d.FullName(),
		Email:   d.Email,
		Company: user.Company{Name: d.Department},
	}
	st.Users = append(st.Users, added)
	st.Draft = user.Draft{}
	st.clearError()
	s.ok(ctx, activity.ActionAdd, strconv.Itoa(added.ID))
}

func (s *service) Edit(st *State, id int) {
	st.EditingID = &id
}

func (s *service) Update(ctx context.Context, st *State, id int) {
	if err := s.repo.Update(ctx, id); err != nil {
		s.fail(ctx, st, activity.ActionUpdate, strconv.Itoa(id), MsgUpdateFailed, err)
		return
	}

	// The row is not refreshed from the response.
	st.EditingID = nil
	st.clearError()
	s.ok(ctx, activity.ActionUpdate, strconv.Itoa(id))
}

func (s *service) Delete(ctx context.Context, st *State, id int) {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.fail(ctx, st, activity.ActionDelete, strconv.Itoa(id), MsgDeleteFailed, err)
		return
	}

	kept := make([]user.User, 0, len(st.Users))
	for _, u := range st.Users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	st.Users = kept
	st.clearError()
	s.ok(ctx, activity.ActionDelete, strconv.Itoa(id))
}

func (s *service) ok(ctx context.Context, action activity.Action, target string) {
	s.recorder.Record(ctx, activity.Entry{
		SessionID: activity.SessionFromContext(ctx),
		Action:    action,
		Target:    target,
		Outcome:   activity.OutcomeOK,
	})
}

func (s *service) fail(ctx context.Context, st *State, action activity.Action, target, msg string, err error) {
	st.setError(msg)
	s.logger.Info("remote user operation failed",
		zap.String("action", string(action)),
		zap.String("target", target),
		zap.Error(err),
	)
	s.recorder.Record(ctx, activity.Entry{
		SessionID: activity.SessionFromContext(ctx),
		Action:    action,
		Target:    target,
		Outcome:   activity.OutcomeFailed,
		Message:   msg,
	})
}
