package app

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"recipeshare/internal/model"
	"recipeshare/internal/pkg/jwtutil"
	"recipeshare/internal/pkg/upload"
	"recipeshare/internal/repository"
)

const testSecret = "service-test-secret"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Recipe{}))
	return db
}

func newTestUploads(t *testing.T) *upload.Store {
	t.Helper()
	store, err := upload.NewStore(
		filepath.Join(t.TempDir(), "user"),
		filepath.Join(t.TempDir(), "recipe"),
		zap.NewNop().Sugar(),
	)
	require.NoError(t, err)
	return store
}

func newAuthService(t *testing.T) (*AuthService, *repository.UserRepository, *upload.Store) {
	t.Helper()
	userRepo := repository.NewUserRepository(newTestDB(t))
	uploads := newTestUploads(t)
	return NewAuthService(userRepo, uploads, testSecret, 24*time.Hour), userRepo, uploads
}

// formFile builds a real multipart.FileHeader the way gin hands one to us.
func formFile(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	headers := req.MultipartForm.File["file"]
	require.Len(t, headers, 1)
	return headers[0]
}

func TestRegister_HashesPasswordAndDefaultsAvatar(t *testing.T) {
	svc, _, _ := newAuthService(t)

	user, err := svc.Register(RegisterInput{Name: "Ada", Username: "ada", Password: "pw"})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, model.DefaultProfilePic, user.ProfilePic)
	require.NotEqual(t, "pw", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw")))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, userRepo, _ := newAuthService(t)

	_, err := svc.Register(RegisterInput{Name: "Ada", Username: "ada", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterInput{Name: "Imposter", Username: "ada", Password: "other"})
	require.ErrorIs(t, err, ErrUsernameExists)

	count, err := userRepo.Count()
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestRegister_RejectsBlankFields(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Register(RegisterInput{Name: "Ada", Username: "  ", Password: "pw"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	svc, _, _ := newAuthService(t)

	user, err := svc.Register(RegisterInput{Name: "Ada", Username: "ada", Password: "pw"})
	require.NoError(t, err)

	token, err := svc.Login(LoginInput{Username: "ada", Password: "pw"})
	require.NoError(t, err)

	claims, err := jwtutil.Verify(testSecret, token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Register(RegisterInput{Name: "Ada", Username: "ada", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Login(LoginInput{Username: "ada", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredential)

	_, err = svc.Login(LoginInput{Username: "ghost", Password: "pw"})
	require.ErrorIs(t, err, ErrInvalidCredential)
}

func TestGetUserByID_Absent(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.GetUserByID(999)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfile_KeepsAvatarWithoutNewPicture(t *testing.T) {
	svc, userRepo, _ := newAuthService(t)

	user, err := svc.Register(RegisterInput{Name: "Ada", Username: "ada", Password: "pw"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateProfile(user, UpdateProfileInput{Name: "Ada L.", Bio: "pioneer"}))

	got, err := userRepo.GetByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, "Ada L.", got.Name)
	require.Equal(t, "pioneer", got.Bio)
	require.Equal(t, model.DefaultProfilePic, got.ProfilePic)
}

func TestUpdateProfile_ReplacesAvatarAndDeletesOld(t *testing.T) {
	svc, userRepo, uploads := newAuthService(t)

	user, err := svc.Register(RegisterInput{Name: "Ada", Username: "ada", Password: "pw"})
	require.NoError(t, err)

	// The sentinel file must never be unlinked, even when a real avatar
	// replaces it.
	sentinelPath := uploads.Path(upload.KindUser, model.DefaultProfilePic)
	require.NoError(t, os.WriteFile(sentinelPath, []byte("placeholder"), 0o644))

	require.NoError(t, svc.UpdateProfile(user, UpdateProfileInput{
		Name:    "Ada",
		Picture: formFile(t, "face1.png", "first avatar"),
	}))
	first := user.ProfilePic
	require.NotEqual(t, model.DefaultProfilePic, first)
	_, err = os.Stat(uploads.Path(upload.KindUser, first))
	require.NoError(t, err)
	_, err = os.Stat(sentinelPath)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateProfile(user, UpdateProfileInput{
		Name:    "Ada",
		Picture: formFile(t, "face2.jpg", "second avatar"),
	}))
	second := user.ProfilePic
	require.NotEqual(t, first, second)

	_, err = os.Stat(uploads.Path(upload.KindUser, first))
	require.True(t, os.IsNotExist(err), "previous avatar file must be removed")
	_, err = os.Stat(uploads.Path(upload.KindUser, second))
	require.NoError(t, err)
	_, err = os.Stat(sentinelPath)
	require.NoError(t, err, "sentinel file must survive replacements")

	got, err := userRepo.GetByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, second, got.ProfilePic)
}

func TestUpdateProfile_InvalidPictureKeepsAvatar(t *testing.T) {
	svc, userRepo, _ := newAuthService(t)

	user, err := svc.Register(RegisterInput{Name: "Ada", Username: "ada", Password: "pw"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateProfile(user, UpdateProfileInput{
		Name:    "Ada",
		Picture: formFile(t, "avatar.exe", "not an image"),
	}))

	got, err := userRepo.GetByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, model.DefaultProfilePic, got.ProfilePic)
}
