// Package session keeps the signed-in user for a browser session. The user
// record is supplied by the caller; no credentials are checked here.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/odyssey-erp/procuredesk/internal/procure/shared"
)

const keyPrefix = "procuredesk:session:"

// CookieName is the cookie carrying the session id.
const CookieName = "procuredesk_session"

// ErrNotSignedIn is returned when an action needs a current user.
var ErrNotSignedIn = errors.New("session: not signed in")

// User is the current user carried by a session.
type User struct {
	UserID     string `json:"userId" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"`
}

// Session is one browser session.
type Session struct {
	ID       string    `json:"-"`
	Current  *User     `json:"user,omitempty"`
	SignedAt time.Time `json:"signedAt,omitzero"`
}

// SignedIn reports whether a user is attached.
func (s Session) SignedIn() bool {
	return s.Current != nil
}

// User returns the current user or ErrNotSignedIn.
func (s Session) User() (User, error) {
	if s.Current == nil {
		return User{}, ErrNotSignedIn
	}
	return *s.Current, nil
}

// Manager loads and saves sessions through a Store.
type Manager struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

// NewManager constructs a Manager.
func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl, now: time.Now}
}

// TTL is the lifetime of a stored session.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// NewID returns a fresh session identifier.
func (m *Manager) NewID() string {
	return uuid.NewString()
}

// Load returns the session stored under id. Unknown ids yield an anonymous
// session with that id.
func (m *Manager) Load(ctx context.Context, id string) (Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Session{}, nil
	}
	raw, ok, err := m.store.Get(ctx, keyPrefix+id)
	if err != nil {
		return Session{}, fmt.Errorf("session: load: %w", err)
	}
	sess := Session{ID: id}
	if !ok {
		return sess, nil
	}
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return Session{ID: id}, fmt.Errorf("session: decode: %w", err)
	}
	return sess, nil
}

// SignIn stores user under a freshly minted session id and forgets previous,
// the id the client presented, if any. A client-supplied id is never reused.
func (m *Manager) SignIn(ctx context.Context, previous string, user User) (Session, error) {
	user.UserID = strings.TrimSpace(user.UserID)
	user.Name = strings.TrimSpace(user.Name)
	if err := shared.Validate(user); err != nil {
		return Session{}, err
	}
	if previous = strings.TrimSpace(previous); previous != "" {
		if err := m.store.Delete(ctx, keyPrefix+previous); err != nil {
			return Session{}, fmt.Errorf("session: delete previous: %w", err)
		}
	}
	id := m.NewID()
	sess := Session{ID: id, Current: &user, SignedAt: m.now().UTC()}
	data, err := json.Marshal(sess)
	if err != nil {
		return Session{}, err
	}
	if err := m.store.Set(ctx, keyPrefix+id, string(data), m.ttl); err != nil {
		return Session{}, fmt.Errorf("session: save: %w", err)
	}
	return sess, nil
}

// SignOut forgets the session id.
func (m *Manager) SignOut(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	if err := m.store.Delete(ctx, keyPrefix+id); err != nil {
		return fmt.Errorf("session: delete: %w", err)
	}
	return nil
}

type contextKey struct{}

// ContextWithSession stores sess in ctx.
func ContextWithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// FromContext returns the session stored in ctx, or an anonymous one.
func FromContext(ctx context.Context) Session {
	sess, _ := ctx.Value(contextKey{}).(Session)
	return sess
}

// UserFromContext returns the signed-in user from ctx.
func UserFromContext(ctx context.Context) (User, error) {
	return FromContext(ctx).User()
}
