package storage

import (
	"github.com/manav03panchal/tasksync/internal/logging"
	"github.com/manav03panchal/tasksync/internal/model"
)

// AuthRepo manages the local user registry and the current session.
type AuthRepo struct {
	store BlobStore
}

// NewAuthRepo creates a new auth repository.
func NewAuthRepo(store BlobStore) *AuthRepo {
	return &AuthRepo{store: store}
}

// Users returns the registry. A missing or unreadable registry reads as empty.
func (r *AuthRepo) Users() ([]*model.User, error) {
	var stored []*model.User
	ok, err := readJSON(r.store, model.KeyUsers, &stored)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []*model.User{}, nil
	}
	users := make([]*model.User, 0, len(stored))
	for _, u := range stored {
		if u != nil {
			users = append(users, u)
		}
	}
	return users, nil
}

func findUser(users []*model.User, email string) *model.User {
	for _, u := range users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

// Register adds a user to the registry. It reports false when email or
// password is empty or the email is already registered. Registering does
// not sign the user in.
func (r *AuthRepo) Register(email, password string, profile model.Profile) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}
	users, err := r.Users()
	if err != nil {
		return false, err
	}
	if findUser(users, email) != nil {
		return false, nil
	}
	users = append(users, &model.User{
		Email:     email,
		Password:  password,
		Name:      profile.Name,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		AvatarURL: profile.AvatarURL,
	})
	if err := writeJSON(r.store, model.KeyUsers, users); err != nil {
		return false, err
	}
	logging.Info("user registered", logging.KeyEmail, email)
	return true, nil
}

// Login signs in the user whose email and password match exactly. An empty
// email or password never matches. A failed attempt leaves any existing
// session untouched.
func (r *AuthRepo) Login(email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}
	users, err := r.Users()
	if err != nil {
		return false, err
	}
	u := findUser(users, email)
	if u == nil || u.Password != password {
		logging.DebugLog("login rejected", logging.KeyEmail, email)
		return false, nil
	}
	if err := r.SetSession(u.Session()); err != nil {
		return false, err
	}
	logging.Info("user logged in", logging.KeyEmail, email)
	return true, nil
}

// SetSession writes s as the current user.
func (r *AuthRepo) SetSession(s *model.SessionUser) error {
	return writeJSON(r.store, model.KeyCurrentUser, s)
}

// Logout clears the current session. The registry is untouched.
func (r *AuthRepo) Logout() error {
	return r.store.Remove(model.KeyCurrentUser)
}

// CurrentUser returns the signed-in user, or nil when there is none or the
// session blob is unreadable.
func (r *AuthRepo) CurrentUser() (*model.SessionUser, error) {
	var s *model.SessionUser
	ok, err := readJSON(r.store, model.KeyCurrentUser, &s)
	if err != nil || !ok {
		return nil, err
	}
	if s == nil || s.Email == "" {
		return nil, nil
	}
	return s, nil
}

// UpdateUser merges patch into the current session and then into the
// matching registry entry. The two writes are sequential; a failure after
// the first leaves the session updated. It returns nil when no one is
// signed in.
func (r *AuthRepo) UpdateUser(patch model.UserPatch) (*model.SessionUser, error) {
	current, err := r.CurrentUser()
	if err != nil || current == nil {
		return nil, err
	}
	patch.ApplyToSession(current)
	if err := r.SetSession(current); err != nil {
		return nil, err
	}

	users, err := r.Users()
	if err != nil {
		return current, err
	}
	if u := findUser(users, current.Email); u != nil {
		patch.ApplyToUser(u)
		if err := writeJSON(r.store, model.KeyUsers, users); err != nil {
			return current, err
		}
	}
	logging.LogOperation("user.update", logging.KeyEmail, current.Email)
	return current, nil
}

// SaveToken stores the remote auth bearer token.
func (r *AuthRepo) SaveToken(token string) error {
	return r.store.Set(model.KeyAuthToken, token)
}

// Token returns the stored bearer token, or "" when there is none.
func (r *AuthRepo) Token() (string, error) {
	token, _, err := r.store.Get(model.KeyAuthToken)
	return token, err
}

// ClearToken removes the stored bearer token.
func (r *AuthRepo) ClearToken() error {
	return r.store.Remove(model.KeyAuthToken)
}

// ChangePassword replaces the signed-in user's registry password. It
// reports false when no one is signed in or the session has no registry
// entry. Length rules are enforced by the caller.
func (r *AuthRepo) ChangePassword(password string) (bool, error) {
	if password == "" {
		return false, nil
	}
	current, err := r.CurrentUser()
	if err != nil || current == nil {
		return false, err
	}
	users, err := r.Users()
	if err != nil {
		return false, err
	}
	u := findUser(users, current.Email)
	if u == nil {
		return false, nil
	}
	u.Password = password
	if err := writeJSON(r.store, model.KeyUsers, users); err != nil {
		return false, err
	}
	logging.LogOperation("user.password", logging.KeyEmail, current.Email)
	return true, nil
}
