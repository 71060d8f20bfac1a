package server

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("not found")

// AdminStore keeps operator accounts and their sessions.
type AdminStore interface {
	AdminByEmail(ctx context.Context, email string) (adminID, passwordHash string, err error)
	CreateAdminSession(ctx context.Context, adminID, email string) (sessionID string, err error)
	DeleteAdminSession(ctx context.Context, sessionID string) error
	AdminFromSession(ctx context.Context, sessionID string) (adminSession, error)
}

type adminDoc struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

type adminSessionDoc struct {
	ID      string `json:"id"`
	AdminID string `json:"adminId"`
	Email   string `json:"email"`
}

// AdminDocStore implements AdminStore with JSONB documents in libSQL.
type AdminDocStore struct {
	db *sql.DB
}

// NewAdminDocStore makes sure the configured operator account exists. An
// existing account keeps its password.
func NewAdminDocStore(ctx context.Context, db *sql.DB, email, passwordHash string) (*AdminDocStore, error) {
	s := &AdminDocStore{db: db}
	if err := s.seed(ctx, strings.ToLower(strings.TrimSpace(email)), passwordHash); err != nil {
		return nil, fmt.Errorf("seeding admin: %w", err)
	}
	return s, nil
}

func (s *AdminDocStore) seed(ctx context.Context, email, passwordHash string) error {
	if email == "" || passwordHash == "" {
		return nil
	}
	admin := adminDoc{
		ID:           newID(),
		Email:        email,
		PasswordHash: passwordHash,
	}
	data, err := json.Marshal(admin)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO admins (id, email, data) VALUES (?, ?, jsonb(?))
		 ON CONFLICT(email) DO NOTHING`,
		admin.ID, admin.Email, string(data),
	)
	return err
}

func (s *AdminDocStore) AdminByEmail(ctx context.Context, email string) (string, string, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT json(data) FROM admins WHERE email = ?`, email,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", ErrNotFound
	}
	if err != nil {
		return "", "", err
	}
	var a adminDoc
	if err := json.Unmarshal([]byte(data), &a); err != nil {
		return "", "", err
	}
	return a.ID, a.PasswordHash, nil
}

func (s *AdminDocStore) CreateAdminSession(ctx context.Context, adminID, email string) (string, error) {
	sess := adminSessionDoc{ID: newID(), AdminID: adminID, Email: email}
	data, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO admin_sessions (id, data) VALUES (?, jsonb(?))`,
		sess.ID, string(data),
	)
	if err != nil {
		return "", err
	}
	return sess.ID, nil
}

func (s *AdminDocStore) DeleteAdminSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE id = ?`, sessionID)
	return err
}

func (s *AdminDocStore) AdminFromSession(ctx context.Context, sessionID string) (adminSession, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT json(data) FROM admin_sessions WHERE id = ?`, sessionID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return adminSession{}, errNoAdminSession
	}
	if err != nil {
		return adminSession{}, err
	}
	var d adminSessionDoc
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return adminSession{}, err
	}
	return adminSession{AdminID: d.AdminID, Email: d.Email}, nil
}

func newID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
