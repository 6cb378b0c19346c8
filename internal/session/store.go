// Package session provides the flat-file credential and session store and
// the in-memory conversation history. The store reads and rewrites each CSV
// file in full per operation; there is no partial update or transactional
// guarantee, which is acceptable for the intended single-user deployment.
package session

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Sanjana-2906/BudgetBee-ChatBot/pkg/persona"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SessionTTL is how long a "remember me" session token stays valid.
const SessionTTL = 30 * 24 * time.Hour

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

// Validation errors surfaced to the registration form.
var (
	ErrInvalidEmail     = fmt.Errorf("please enter a valid email")
	ErrEmailExists      = fmt.Errorf("an account with this email already exists")
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
)

// User is one stored account. Emails are stored lowercase and trimmed.
type User struct {
	Name         string
	Email        string
	PasswordHash string
	Persona      string
	CreatedAt    time.Time
}

type sessionRecord struct {
	Email     string
	ExpiresAt time.Time
}

// FileStore persists users and sessions as CSV files under one directory.
type FileStore struct {
	usersPath    string
	sessionsPath string
	logger       *zap.Logger
}

// NewFileStore creates the store directory and both CSV files (with header
// rows) if they do not exist yet.
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store directory %s: %w", dir, err)
	}

	s := &FileStore{
		usersPath:    filepath.Join(dir, "users.csv"),
		sessionsPath: filepath.Join(dir, "sessions.csv"),
		logger:       logger,
	}

	if err := ensureCSV(s.usersPath, []string{"name", "email", "password_hash", "persona", "created_at"}); err != nil {
		return nil, err
	}
	if err := ensureCSV(s.sessionsPath, []string{"token", "email", "expires_at"}); err != nil {
		return nil, err
	}
	return s, nil
}

func ensureCSV(path string, header []string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header to %s: %w", path, err)
	}
	writer.Flush()
	return writer.Error()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account. The persona label is canonicalized through
// the persona resolver, so unrecognized labels default to Professional.
func (s *FileStore) Register(name, email, password, personaLabel string) (User, error) {
	users, err := s.loadUsers()
	if err != nil {
		return User{}, err
	}

	emailNorm := normalizeEmail(email)
	passwordNorm := strings.TrimSpace(password)

	if emailNorm == "" || !strings.Contains(emailNorm, "@") {
		return User{}, ErrInvalidEmail
	}
	if _, exists := users[emailNorm]; exists {
		return User{}, ErrEmailExists
	}
	if len(passwordNorm) < MinPasswordLength {
		return User{}, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(passwordNorm), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	displayName := strings.TrimSpace(name)
	if displayName == "" {
		displayName = "User"
	}

	user := User{
		Name:         displayName,
		Email:        emailNorm,
		PasswordHash: string(hash),
		Persona:      persona.Resolve(personaLabel).Name,
		CreatedAt:    time.Now(),
	}
	users[emailNorm] = user

	if err := s.saveUsers(users); err != nil {
		return User{}, err
	}
	return user, nil
}

// Authenticate checks the credentials and returns the matching user.
func (s *FileStore) Authenticate(email, password string) (User, bool, error) {
	users, err := s.loadUsers()
	if err != nil {
		return User{}, false, err
	}

	user, ok := users[normalizeEmail(email)]
	if !ok {
		return User{}, false, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(strings.TrimSpace(password))) != nil {
		return User{}, false, nil
	}
	return user, true, nil
}

// GetUser looks up an account by email.
func (s *FileStore) GetUser(email string) (User, bool, error) {
	users, err := s.loadUsers()
	if err != nil {
		return User{}, false, err
	}
	user, ok := users[normalizeEmail(email)]
	return user, ok, nil
}

// UpdatePersona changes a stored account's persona. A missing account is a
// no-op, matching the forgiving behavior of the original store.
func (s *FileStore) UpdatePersona(email, personaLabel string) error {
	users, err := s.loadUsers()
	if err != nil {
		return err
	}
	key := normalizeEmail(email)
	user, ok := users[key]
	if !ok {
		return nil
	}
	user.Persona = persona.Resolve(personaLabel).Name
	users[key] = user
	return s.saveUsers(users)
}

// CreateSession issues a new session token for an email.
func (s *FileStore) CreateSession(email string) (string, error) {
	sessions, err := s.loadSessions()
	if err != nil {
		return "", err
	}

	token := strings.ReplaceAll(uuid.New().String(), "-", "")
	sessions[token] = sessionRecord{
		Email:     normalizeEmail(email),
		ExpiresAt: time.Now().Add(SessionTTL),
	}

	if err := s.saveSessions(sessions); err != nil {
		return "", err
	}
	return token, nil
}

// UserFromSession resolves a session token to its user. Expired tokens and
// tokens whose user no longer exists yield (User{}, false, nil).
func (s *FileStore) UserFromSession(token string) (User, bool, error) {
	if token == "" {
		return User{}, false, nil
	}
	sessions, err := s.loadSessions()
	if err != nil {
		return User{}, false, err
	}
	record, ok := sessions[token]
	if !ok {
		return User{}, false, nil
	}
	return s.GetUser(record.Email)
}

// RevokeSession deletes a session token. Unknown tokens are a no-op.
func (s *FileStore) RevokeSession(token string) error {
	sessions, err := s.loadSessions()
	if err != nil {
		return err
	}
	if _, ok := sessions[token]; !ok {
		return nil
	}
	delete(sessions, token)
	return s.saveSessions(sessions)
}

func (s *FileStore) loadUsers() (map[string]User, error) {
	rows, err := readCSV(s.usersPath)
	if err != nil {
		return nil, err
	}

	users := make(map[string]User)
	for _, row := range rows {
		if len(row) < 5 {
			continue
		}
		email := normalizeEmail(row[1])
		if email == "" {
			continue
		}
		createdAt, err := strconv.ParseInt(strings.TrimSpace(row[4]), 10, 64)
		if err != nil {
			createdAt = time.Now().Unix()
		}
		users[email] = User{
			Name:         strings.TrimSpace(row[0]),
			Email:        email,
			PasswordHash: row[2],
			Persona:      defaultPersona(row[3]),
			CreatedAt:    time.Unix(createdAt, 0),
		}
	}
	return users, nil
}

func defaultPersona(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return persona.Professional
	}
	return trimmed
}

func (s *FileStore) saveUsers(users map[string]User) error {
	rows := [][]string{{"name", "email", "password_hash", "persona", "created_at"}}
	for _, user := range users {
		rows = append(rows, []string{
			user.Name,
			user.Email,
			user.PasswordHash,
			user.Persona,
			strconv.FormatInt(user.CreatedAt.Unix(), 10),
		})
	}
	return writeCSV(s.usersPath, rows)
}

// loadSessions reads the session file and prunes expired rows, rewriting the
// file when anything was dropped.
func (s *FileStore) loadSessions() (map[string]sessionRecord, error) {
	rows, err := readCSV(s.sessionsPath)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sessions := make(map[string]sessionRecord)
	changed := false
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		token := strings.TrimSpace(row[0])
		email := normalizeEmail(row[1])
		expiresAt, err := strconv.ParseInt(strings.TrimSpace(row[2]), 10, 64)
		if err != nil {
			changed = true
			continue
		}
		if token == "" || email == "" {
			continue
		}
		if time.Unix(expiresAt, 0).After(now) {
			sessions[token] = sessionRecord{Email: email, ExpiresAt: time.Unix(expiresAt, 0)}
		} else {
			changed = true
		}
	}

	if changed {
		if err := s.saveSessions(sessions); err != nil {
			s.logger.Warn("failed to prune expired sessions",
				zap.String("op", "session.loadSessions"),
				zap.Error(err),
			)
		}
	}
	return sessions, nil
}

func (s *FileStore) saveSessions(sessions map[string]sessionRecord) error {
	rows := [][]string{{"token", "email", "expires_at"}}
	for token, record := range sessions {
		rows = append(rows, []string{
			token,
			record.Email,
			strconv.FormatInt(record.ExpiresAt.Unix(), 10),
		})
	}
	return writeCSV(s.sessionsPath, rows)
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
