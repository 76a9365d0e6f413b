package helper

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"sync"

	"github.com/SundayYogurt/inventory_service/internal/domain"
	"github.com/gofiber/fiber/v2"
)

// Auth keeps the session registry. Sessions live only in memory for the
// lifetime of the process and never expire, matching the original
// page-lifetime session model.
type Auth struct {
	mu       sync.Mutex
	sessions map[string]string // token -> user id
}

func SetupAuth() *Auth {
	return &Auth{sessions: make(map[string]string)}
}

func (a *Auth) IssueSession(userID string) string {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	token := hex.EncodeToString(buf)

	a.mu.Lock()
	a.sessions[token] = userID
	a.mu.Unlock()
	return token
}

// ResolveSession returns the user id bound to a token. It accepts both
// "Bearer <token>" and a bare token.
func (a *Auth) ResolveSession(tokenString string) (string, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return "", errors.New("missing token")
	}

	if strings.HasPrefix(strings.ToLower(tokenString), "bearer ") {
		parts := strings.SplitN(tokenString, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
			return "", errors.New("invalid token format")
		}
		tokenString = strings.TrimSpace(parts[1])
	}

	a.mu.Lock()
	userID, ok := a.sessions[tokenString]
	a.mu.Unlock()
	if !ok {
		return "", errors.New("invalid session")
	}
	return userID, nil
}

func (a *Auth) RevokeSession(tokenString string) {
	tokenString = strings.TrimSpace(tokenString)
	if strings.HasPrefix(strings.ToLower(tokenString), "bearer ") {
		parts := strings.SplitN(tokenString, " ", 2)
		if len(parts) == 2 {
			tokenString = strings.TrimSpace(parts[1])
		}
	}

	a.mu.Lock()
	delete(a.sessions, tokenString)
	a.mu.Unlock()
}

// GetCurrentUser reads the acting user placed in the context by the auth
// middleware.
func GetCurrentUser(ctx *fiber.Ctx) (domain.User, error) {
	u := ctx.Locals("user")
	user, ok := u.(domain.User)
	if !ok {
		return domain.User{}, errors.New("missing auth user in context")
	}
	return user, nil
}
