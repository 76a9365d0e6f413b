package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/SundayYogurt/inventory_service/internal/domain"
	"github.com/SundayYogurt/inventory_service/internal/dto"
	"github.com/SundayYogurt/inventory_service/internal/helper"
	"github.com/SundayYogurt/inventory_service/internal/repository"
	"github.com/google/uuid"
)

type UserService interface {
	// Login verifies credentials and opens a session. The token only lives
	// in the process memory; restarting the service logs everyone out.
	Login(email, password string) (dto.LoginResponse, error)
	Logout(actor domain.User, token string) error
	GetByID(id string) (domain.User, error)
	SetTheme(actor domain.User, theme string) (domain.User, error)

	List() ([]domain.User, error)
	Create(actor domain.User, input dto.UserInput) (domain.User, error)
	Update(actor domain.User, id string, input dto.UserInput) (domain.User, error)
	Delete(actor domain.User, id string) error
}

type userService struct {
	userRepo repository.UserRepository
	auth     *helper.Auth
	audit    AuditService
}

func NewUserService(userRepo repository.UserRepository, auth *helper.Auth, audit AuditService) UserService {
	return &userService{userRepo: userRepo, auth: auth, audit: audit}
}

func (s *userService) Login(email, password string) (dto.LoginResponse, error) {
	users, err := s.userRepo.LoadAll()
	if err != nil {
		return dto.LoginResponse{}, err
	}

	// Stored emails are exact-match credentials; no case folding.
	for _, u := range users {
		if u.Email != email || u.Password != password {
			continue
		}
		token := s.auth.IssueSession(u.ID)
		if err := s.audit.Record(u, domain.ActionLogin, "Connexion", "", nil); err != nil {
			log.Printf("record login log error: %v", err)
		}
		return dto.LoginResponse{Token: token, User: dto.NewUserResponse(u)}, nil
	}
	return dto.LoginResponse{}, ErrInvalidCredentials
}

func (s *userService) Logout(actor domain.User, token string) error {
	s.auth.RevokeSession(token)
	return nil
}

func (s *userService) GetByID(id string) (domain.User, error) {
	users, err := s.userRepo.LoadAll()
	if err != nil {
		return domain.User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, errors.New("utilisateur introuvable")
}

func (s *userService) SetTheme(actor domain.User, theme string) (domain.User, error) {
	users, err := s.userRepo.LoadAll()
	if err != nil {
		return domain.User{}, err
	}
	for i := range users {
		if users[i].ID != actor.ID {
			continue
		}
		users[i].Preferences.Theme = theme
		if err := s.userRepo.ReplaceAll(users); err != nil {
			return domain.User{}, err
		}
		return users[i], nil
	}
	return domain.User{}, errors.New("utilisateur introuvable")
}

func (s *userService) List() ([]domain.User, error) {
	return s.userRepo.LoadAll()
}

func (s *userService) Create(actor domain.User, input dto.UserInput) (domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if strings.TrimSpace(input.FirstName) == "" || email == "" || input.Password == "" {
		return domain.User{}, errors.New("prénom, email et mot de passe obligatoires")
	}

	users, err := s.userRepo.LoadAll()
	if err != nil {
		return domain.User{}, err
	}
	for _, u := range users {
		if strings.ToLower(u.Email) == email {
			return domain.User{}, fmt.Errorf("l'email '%s' est déjà utilisé", email)
		}
	}

	user := domain.User{
		ID:          uuid.NewString(),
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		Email:       email,
		Password:    input.Password,
		Permissions: input.Permissions,
		Preferences: domain.UserPreferences{Theme: "enterprise"},
	}
	users = append(users, user)
	if err := s.userRepo.ReplaceAll(users); err != nil {
		return domain.User{}, err
	}

	description := fmt.Sprintf("Création de l'utilisateur : %s", email)
	if err := s.audit.Record(actor, domain.ActionConfig, description, "", nil); err != nil {
		log.Printf("record user-create log error: %v", err)
	}
	return user, nil
}

func (s *userService) Update(actor domain.User, id string, input dto.UserInput) (domain.User, error) {
	users, err := s.userRepo.LoadAll()
	if err != nil {
		return domain.User{}, err
	}

	for i := range users {
		if users[i].ID != id {
			continue
		}
		if input.FirstName != "" {
			users[i].FirstName = strings.TrimSpace(input.FirstName)
		}
		if input.LastName != "" {
			users[i].LastName = strings.TrimSpace(input.LastName)
		}
		if input.Email != "" {
			users[i].Email = strings.ToLower(strings.TrimSpace(input.Email))
		}
		if input.Password != "" {
			users[i].Password = input.Password
		}
		users[i].Permissions = input.Permissions

		if err := s.userRepo.ReplaceAll(users); err != nil {
			return domain.User{}, err
		}
		description := fmt.Sprintf("Modification de l'utilisateur : %s", users[i].Email)
		if err := s.audit.Record(actor, domain.ActionConfig, description, "", nil); err != nil {
			log.Printf("record user-update log error: %v", err)
		}
		return users[i], nil
	}
	return domain.User{}, errors.New("utilisateur introuvable")
}

func (s *userService) Delete(actor domain.User, id string) error {
	if id == actor.ID {
		return errors.New("impossible de supprimer son propre compte")
	}

	users, err := s.userRepo.LoadAll()
	if err != nil {
		return err
	}

	out := make([]domain.User, 0, len(users))
	var removed *domain.User
	for _, u := range users {
		if u.ID == id {
			deleted := u
			removed = &deleted
			continue
		}
		out = append(out, u)
	}
	if removed == nil {
		return errors.New("utilisateur introuvable")
	}

	if err := s.userRepo.ReplaceAll(out); err != nil {
		return err
	}
	description := fmt.Sprintf("Suppression de l'utilisateur : %s", removed.Email)
	if err := s.audit.Record(actor, domain.ActionConfig, description, "", nil); err != nil {
		log.Printf("record user-delete log error: %v", err)
	}
	return nil
}
