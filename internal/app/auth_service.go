package app

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"recipeshare/internal/model"
	"recipeshare/internal/pkg/jwtutil"
	"recipeshare/internal/pkg/upload"
	"recipeshare/internal/repository"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUsernameExists    = errors.New("username already exists")
	ErrInvalidCredential = errors.New("invalid username or password")
	ErrUserNotFound      = errors.New("user not found")
)

type AuthService struct {
	userRepo  *repository.UserRepository
	uploads   *upload.Store
	jwtSecret string
	jwtTTL    time.Duration
}

type RegisterInput struct {
	Name     string
	Username string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

type UpdateProfileInput struct {
	Name    string
	Bio     string
	Picture *multipart.FileHeader
}

func NewAuthService(userRepo *repository.UserRepository, uploads *upload.Store, jwtSecret string, jwtTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		uploads:   uploads,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
	}
}

// Register creates a user with a bcrypt password hash and the default avatar.
// The existence check and the insert are separate statements; the unique index
// on username backstops the race between them.
func (s *AuthService) Register(input RegisterInput) (*model.User, error) {
	name := strings.TrimSpace(input.Name)
	username := strings.TrimSpace(input.Username)
	password := input.Password

	if name == "" || username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		Name:         name,
		Username:     username,
		PasswordHash: string(hash),
		ProfilePic:   model.DefaultProfilePic,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and issues a signed bearer token.
func (s *AuthService) Login(input LoginInput) (string, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return "", ErrInvalidCredential
	}

	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return "", ErrInvalidCredential
	}

	return jwtutil.Issue(s.jwtSecret, s.jwtTTL, user.ID)
}

func (s *AuthService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile replaces name and bio. A valid new picture is stored and the
// previous file removed, unless the previous value is the default sentinel;
// an absent or invalid picture keeps the existing filename.
func (s *AuthService) UpdateProfile(user *model.User, input UpdateProfileInput) error {
	stored, err := s.uploads.Save(input.Picture, upload.KindUser)
	if err != nil {
		return err
	}
	if stored != "" {
		if user.ProfilePic != "" && user.ProfilePic != model.DefaultProfilePic {
			s.uploads.Delete(upload.KindUser, user.ProfilePic)
		}
		user.ProfilePic = stored
	}

	user.Name = strings.TrimSpace(input.Name)
	user.Bio = input.Bio
	return s.userRepo.Update(user)
}
