package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"hackafrica-web/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Listener is called after a session's identity changed. A cleared session
// is reported as the zero Session.
type Listener func(id string, s Session)

// Store reads and writes sessions in the persistent key-value table.
type Store struct {
	db *gorm.DB

	mu        sync.RWMutex
	listeners []Listener
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// OnChange registers fn to be called after every Set and Clear.
func (s *Store) OnChange(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify(id string, sess Session) {
	s.mu.RLock()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn(id, sess)
	}
}

// Get loads the identity fields of session id in a single read.
func (s *Store) Get(ctx context.Context, id string) (Session, error) {
	if id == "" {
		return Session{}, nil
	}

	var rows []models.SessionValue
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND key IN ?", id, identityKeys).
		Find(&rows).Error
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}

	var sess Session
	for _, r := range rows {
		switch r.Key {
		case KeyToken:
			sess.Token = r.Value
		case KeyRole:
			sess.Role = r.Value
		case KeyName:
			sess.Name = r.Value
		case KeyUserID:
			sess.UserID = r.Value
		}
	}
	return sess, nil
}

// Set stores token, role and display name for session id.
func (s *Store) Set(ctx context.Context, id, token, role, name string) error {
	err := s.put(ctx, id, map[string]string{
		KeyToken: token,
		KeyRole:  role,
		KeyName:  name,
	})
	if err != nil {
		return err
	}
	s.notifyCurrent(ctx, id)
	return nil
}

// Login stores token and the claims decoded from it. Undecodable tokens are
// kept; role and name then stay empty.
func (s *Store) Login(ctx context.Context, id, token string) (Session, error) {
	claims, err := DecodeClaims(token)
	if err != nil {
		slog.Warn("Login token carries no readable claims", "error", err)
	}

	err = s.put(ctx, id, map[string]string{
		KeyToken:  token,
		KeyRole:   claims.Role,
		KeyName:   claims.Name,
		KeyUserID: claims.UserID,
	})
	if err != nil {
		return Session{}, err
	}

	sess := Session{Token: token, Role: claims.Role, Name: claims.Name, UserID: claims.UserID}
	s.notify(id, sess)
	return sess, nil
}

// Clear removes all identity fields of session id in one statement, so no
// reader observes a partially cleared session.
func (s *Store) Clear(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND key IN ?", id, identityKeys).
		Delete(&models.SessionValue{}).Error
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.notify(id, Session{})
	return nil
}

// Rotate moves the non-identity values of session from to session to and
// drops from's identity, leaving from unauthenticated. Login calls it so a
// planted cookie id never carries a token.
func (s *Store) Rotate(ctx context.Context, from, to string) error {
	if to == "" {
		return errors.New("session id is required")
	}
	if from == "" || from == to {
		return nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("session_id = ? AND key IN ?", from, identityKeys).
			Delete(&models.SessionValue{}).Error
		if err != nil {
			return err
		}
		return tx.Model(&models.SessionValue{}).
			Where("session_id = ?", from).
			Update("session_id", to).Error
	})
	if err != nil {
		return fmt.Errorf("rotate session: %w", err)
	}
	s.notify(from, Session{})
	return nil
}

// ClearCurrent clears the session bound to ctx. It is the API client's
// unauthorized hook, so a 401 from any view ends the session.
func (s *Store) ClearCurrent(ctx context.Context) {
	id := IDFrom(ctx)
	if id == "" {
		return
	}
	if err := s.Clear(context.WithoutCancel(ctx), id); err != nil {
		slog.Error("Failed to clear session after unauthorized reply", "error", err)
	}
}

// Token returns the token of the session bound to ctx at call time.
func (s *Store) Token(ctx context.Context) string {
	id := IDFrom(ctx)
	if id == "" {
		return ""
	}
	v, err := s.value(ctx, id, KeyToken)
	if err != nil {
		slog.Error("Failed to read session token", "error", err)
		return ""
	}
	return v
}

// StashPending remembers a hackathon the user wanted to join before logging in.
func (s *Store) StashPending(ctx context.Context, id, hackathonID string) error {
	return s.put(ctx, id, map[string]string{KeyPending: hackathonID})
}

// TakePending returns and removes the stashed hackathon id.
func (s *Store) TakePending(ctx context.Context, id string) (string, error) {
	return s.take(ctx, id, KeyPending)
}

// SetFlash stores a one-shot notice for the next rendered page.
func (s *Store) SetFlash(ctx context.Context, id, msg string) error {
	return s.put(ctx, id, map[string]string{KeyFlash: msg})
}

// TakeFlash returns and removes the pending notice.
func (s *Store) TakeFlash(ctx context.Context, id string) (string, error) {
	return s.take(ctx, id, KeyFlash)
}

// MarkProjectCreated records when a project submission succeeded.
func (s *Store) MarkProjectCreated(ctx context.Context, id string, at time.Time) error {
	return s.put(ctx, id, map[string]string{KeyProjectCreated: at.UTC().Format(time.RFC3339Nano)})
}

// ProjectCreatedAt returns the mark set by MarkProjectCreated.
func (s *Store) ProjectCreatedAt(ctx context.Context, id string) (time.Time, bool, error) {
	v, err := s.value(ctx, id, KeyProjectCreated)
	if err != nil || v == "" {
		return time.Time{}, false, err
	}
	at, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse %s: %w", KeyProjectCreated, err)
	}
	return at, true, nil
}

// ClearProjectCreated drops the mark once the banner expired.
func (s *Store) ClearProjectCreated(ctx context.Context, id string) error {
	return s.delete(ctx, id, KeyProjectCreated)
}

func (s *Store) notifyCurrent(ctx context.Context, id string) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		slog.Error("Failed to reload session for listeners", "error", err)
		return
	}
	s.notify(id, sess)
}

func (s *Store) put(ctx context.Context, id string, values map[string]string) error {
	if id == "" {
		return errors.New("session id is required")
	}

	now := time.Now()
	rows := make([]models.SessionValue, 0, len(values))
	for k, v := range values {
		rows = append(rows, models.SessionValue{SessionID: id, Key: k, Value: v, UpdatedAt: now})
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *Store) value(ctx context.Context, id, key string) (string, error) {
	var row models.SessionValue
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND key = ?", id, key).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read session %s: %w", key, err)
	}
	return row.Value, nil
}

func (s *Store) delete(ctx context.Context, id, key string) error {
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND key = ?", id, key).
		Delete(&models.SessionValue{}).Error
	if err != nil {
		return fmt.Errorf("delete session %s: %w", key, err)
	}
	return nil
}

func (s *Store) take(ctx context.Context, id, key string) (string, error) {
	if id == "" {
		return "", nil
	}
	var v string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.SessionValue
		err := tx.Where("session_id = ? AND key = ?", id, key).Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		v = row.Value
		return tx.Delete(&row).Error
	})
	if err != nil {
		return "", fmt.Errorf("take session %s: %w", key, err)
	}
	return v, nil
}
