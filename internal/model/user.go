package model

// User is a registry entry. The password is stored in plaintext.
type User struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Session returns the reduced record written as the current user.
func (u *User) Session() *SessionUser {
	return &SessionUser{
		Email:     u.Email,
		Name:      u.Name,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		AvatarURL: u.AvatarURL,
	}
}

// SessionUser is the currently signed-in user's profile, without password.
type SessionUser struct {
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// DisplayName returns the best available name for the user.
func (s *SessionUser) DisplayName() string {
	switch {
	case s.Name != "":
		return s.Name
	case s.FirstName != "" && s.LastName != "":
		return s.FirstName + " " + s.LastName
	case s.FirstName != "":
		return s.FirstName
	}
	return s.Email
}

// Profile holds optional profile fields supplied at registration.
type Profile struct {
	Name      string
	FirstName string
	LastName  string
	AvatarURL string
}

// UserPatch is a partial profile update. An AvatarURL pointing at the empty
// string removes the avatar.
type UserPatch struct {
	Name      *string `json:"name,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// ApplyToSession merges the patch onto a session record.
func (p UserPatch) ApplyToSession(s *SessionUser) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.FirstName != nil {
		s.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		s.LastName = *p.LastName
	}
	if p.AvatarURL != nil {
		// omitempty drops the field from the stored JSON.
		s.AvatarURL = *p.AvatarURL
	}
}

// ApplyToUser merges the patch onto a registry entry.
func (p UserPatch) ApplyToUser(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
}
