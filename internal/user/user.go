// Package user manages accounts, the login session, and per-user study
// preferences. All state lives in the key-value store: the account list
// under "users", the signed-in account under "user"/"userId", and the
// preference rows under "preferences".
package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kdnguyen/gogaku/internal/store"
)

const (
	usersKey   = "users"
	userKey    = "user"
	userIDKey  = "userId"
	prefsKey   = "preferences"
	minPassLen = 6
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", minPassLen)
	ErrNotLoggedIn        = errors.New("no user is signed in")
)

// Preferences are the study settings shown on the profile screen.
type Preferences struct {
	Difficulty        string `json:"difficulty"`
	CurrentLevel      string `json:"currentLevel"`
	LearningGoal      string `json:"learningGoal"`
	SoundEffects      bool   `json:"soundEffects"`
	ShowRomaji        bool   `json:"showRomaji"`
	ShowTranslations  bool   `json:"showTranslations"`
	DailyReminders    bool   `json:"dailyReminders"`
	AchievementNotifs bool   `json:"achievementNotifs"`
	ContentAlerts     bool   `json:"contentAlerts"`
}

// DefaultPreferences returns the settings every new account starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		Difficulty:        "adaptive",
		CurrentLevel:      "n5",
		LearningGoal:      "daily",
		SoundEffects:      true,
		ShowRomaji:        true,
		ShowTranslations:  true,
		DailyReminders:    true,
		AchievementNotifs: true,
		ContentAlerts:     true,
	}
}

// withDefaults canonicalizes the enum fields. Unknown or empty values
// fall back to the defaults so older stored records stay readable.
func (p Preferences) withDefaults() Preferences {
	if !oneOf(p.Difficulty, "easy", "medium", "hard", "adaptive") {
		p.Difficulty = "adaptive"
	}
	if !oneOf(p.CurrentLevel, "n5", "n4", "n3", "n2", "n1") {
		p.CurrentLevel = "n5"
	}
	if !oneOf(p.LearningGoal, "casual", "regular", "daily") {
		p.LearningGoal = "daily"
	}
	return p
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// prefRow is a preferences record in the shared "preferences" list.
type prefRow struct {
	UserID int64 `json:"userId"`
	Preferences
}

// User is an account. IDs are unix-millisecond creation timestamps.
type User struct {
	ID          int64       `json:"id"`
	Email       string      `json:"email"`
	Password    string      `json:"password"`
	Name        string      `json:"name"`
	Username    string      `json:"username"`
	Bio         string      `json:"bio"`
	Preferences Preferences `json:"preferences"`
	CreatedAt   string      `json:"createdAt"`
}

// ProfileUpdate carries the editable profile fields. Nil fields are left
// unchanged.
type ProfileUpdate struct {
	Name     *string
	Username *string
	Email    *string
	Bio      *string
}

// Service is the account store.
type Service struct {
	kv  store.KVStore
	now func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a user service over kv.
func NewService(kv store.KVStore, opts ...Option) *Service {
	s := &Service{kv: kv, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) allUsers(ctx context.Context) ([]User, error) {
	var users []User
	if _, err := store.GetJSON(ctx, s.kv, usersKey, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Service) saveUsers(ctx context.Context, users []User) error {
	return store.SetJSON(ctx, s.kv, usersKey, users)
}

// Register creates a new account with default preferences. Email
// uniqueness is case-insensitive. The new account is not signed in.
func (s *Service) Register(ctx context.Context, email, password, name string) (User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return User{}, errors.New("email is required")
	}
	if len(password) < minPassLen {
		return User{}, ErrWeakPassword
	}

	users, err := s.allUsers(ctx)
	if err != nil {
		return User{}, err
	}
	for _, u := range users {
		if normalizeEmail(u.Email) == normalizeEmail(email) {
			return User{}, ErrDuplicateEmail
		}
	}

	u := User{
		ID:          s.now().UnixMilli(),
		Email:       email,
		Password:    password,
		Name:        name,
		Preferences: DefaultPreferences(),
		CreatedAt:   s.now().UTC().Format(time.RFC3339),
	}
	if err := s.saveUsers(ctx, append(users, u)); err != nil {
		return User{}, err
	}

	var rows []prefRow
	if _, err := store.GetJSON(ctx, s.kv, prefsKey, &rows); err != nil {
		return User{}, err
	}
	rows = append(rows, prefRow{UserID: u.ID, Preferences: u.Preferences})
	if err := store.SetJSON(ctx, s.kv, prefsKey, rows); err != nil {
		return User{}, err
	}
	return u, nil
}

// Authenticate checks credentials and signs the user in. Email matching
// ignores case and surrounding whitespace; the password must match
// exactly.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	users, err := s.allUsers(ctx)
	if err != nil {
		return User{}, err
	}
	for _, u := range users {
		if normalizeEmail(u.Email) == normalizeEmail(email) && u.Password == password {
			if err := s.setCurrent(ctx, u); err != nil {
				return User{}, err
			}
			return u, nil
		}
	}
	return User{}, ErrInvalidCredentials
}

func (s *Service) setCurrent(ctx context.Context, u User) error {
	if err := store.SetJSON(ctx, s.kv, userKey, u); err != nil {
		return err
	}
	return s.kv.Set(ctx, userIDKey, strconv.FormatInt(u.ID, 10))
}

// Current returns the signed-in user, if any.
func (s *Service) Current(ctx context.Context) (User, bool, error) {
	var u User
	ok, err := store.GetJSON(ctx, s.kv, userKey, &u)
	if err != nil || !ok {
		return User{}, false, err
	}
	u.Preferences = u.Preferences.withDefaults()
	return u, true, nil
}

// Logout clears the session. The account itself is untouched.
func (s *Service) Logout(ctx context.Context) error {
	return s.kv.MultiRemove(ctx, []string{userKey, userIDKey})
}

// UpdateProfile merges the given fields into the signed-in user's
// profile. Changing email re-checks uniqueness against other accounts.
func (s *Service) UpdateProfile(ctx context.Context, upd ProfileUpdate) (User, error) {
	u, ok, err := s.Current(ctx)
	if err != nil {
		return User{}, err
	}
	if !ok {
		return User{}, ErrNotLoggedIn
	}

	if upd.Email != nil {
		email := strings.TrimSpace(*upd.Email)
		if email == "" {
			return User{}, errors.New("email is required")
		}
		users, err := s.allUsers(ctx)
		if err != nil {
			return User{}, err
		}
		for _, other := range users {
			if other.ID != u.ID && normalizeEmail(other.Email) == normalizeEmail(email) {
				return User{}, ErrDuplicateEmail
			}
		}
		u.Email = email
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Bio != nil {
		u.Bio = *upd.Bio
	}

	if err := s.persist(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// UpdatePreferences replaces the signed-in user's preferences wholesale.
func (s *Service) UpdatePreferences(ctx context.Context, prefs Preferences) (User, error) {
	u, ok, err := s.Current(ctx)
	if err != nil {
		return User{}, err
	}
	if !ok {
		return User{}, ErrNotLoggedIn
	}
	prefs = prefs.withDefaults()
	u.Preferences = prefs

	var rows []prefRow
	if _, err := store.GetJSON(ctx, s.kv, prefsKey, &rows); err != nil {
		return User{}, err
	}
	found := false
	for i := range rows {
		if rows[i].UserID == u.ID {
			rows[i].Preferences = prefs
			found = true
			break
		}
	}
	if !found {
		rows = append(rows, prefRow{UserID: u.ID, Preferences: prefs})
	}
	if err := store.SetJSON(ctx, s.kv, prefsKey, rows); err != nil {
		return User{}, err
	}

	if err := s.persist(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// ChangePassword verifies the current password and sets a new one.
func (s *Service) ChangePassword(ctx context.Context, current, next string) error {
	u, ok, err := s.Current(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotLoggedIn
	}
	if u.Password != current {
		return ErrWrongPassword
	}
	if len(next) < minPassLen {
		return ErrWeakPassword
	}
	u.Password = next
	return s.persist(ctx, u)
}

// persist writes u back to both the session key and the account list.
func (s *Service) persist(ctx context.Context, u User) error {
	users, err := s.allUsers(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == u.ID {
			users[i] = u
			break
		}
	}
	if err := s.saveUsers(ctx, users); err != nil {
		return err
	}
	return s.setCurrent(ctx, u)
}
