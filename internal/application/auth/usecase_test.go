package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/alluma/crm-api/internal/application/auth"
	"github.com/alluma/crm-api/internal/application/dto"
	"github.com/alluma/crm-api/internal/domain"
	"github.com/alluma/crm-api/internal/domain/entity"
	"github.com/alluma/crm-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

// fakeUserRepo repositorio en memoria indexado por email.
type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func (f *fakeUserRepo) Create(u *entity.User) (int64, error) { return 0, nil }

func (f *fakeUserRepo) GetByID(id int64) (*entity.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) Update(u *entity.User) error { return nil }

func (f *fakeUserRepo) Delete(id int64) error { return nil }

func (f *fakeUserRepo) List() ([]*entity.User, error) { return nil, nil }

func (f *fakeUserRepo) ListActiveSellers() ([]*entity.User, error) { return nil, nil }

func newAuthUseCase(t *testing.T, active bool) *auth.AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &fakeUserRepo{byEmail: map[string]*entity.User{
		"roberto@crm.local": {
			ID:           3,
			Name:         "Roberto",
			Email:        "roberto@crm.local",
			PasswordHash: string(hash),
			Role:         entity.RoleGerente,
			Active:       active,
		},
	}}
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "crm-api-test",
	})
}

func TestLogin_CredencialesValidas(t *testing.T) {
	uc := newAuthUseCase(t, true)

	out, err := uc.Login(dto.LoginRequest{Email: "roberto@crm.local", Password: "secreto123"})
	require.NoError(t, err)

	assert.True(t, out.Ok)
	assert.Equal(t, "Roberto", out.User.Name)
	assert.Equal(t, "gerente", out.User.Role)

	// El token emitido debe llevar los claims del usuario.
	claims, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(3), claims.UserID)
	assert.Equal(t, "gerente", claims.Role)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc := newAuthUseCase(t, true)

	_, err := uc.Login(dto.LoginRequest{Email: "roberto@crm.local", Password: "otro"})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmailInexistente(t *testing.T) {
	uc := newAuthUseCase(t, true)

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@crm.local", Password: "secreto123"})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CuentaDesactivada(t *testing.T) {
	uc := newAuthUseCase(t, false)

	_, err := uc.Login(dto.LoginRequest{Email: "roberto@crm.local", Password: "secreto123"})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// El flag allowInactiveUsers permite entrar con la cuenta desactivada
// (lo usa el panel de administración para cuentas suspendidas).
func TestLogin_InactivoPermitidoConFlag(t *testing.T) {
	uc := newAuthUseCase(t, false)

	out, err := uc.Login(dto.LoginRequest{
		Email:              "roberto@crm.local",
		Password:           "secreto123",
		AllowInactiveUsers: true,
	})
	require.NoError(t, err)

	assert.False(t, out.User.Active)
}

func TestVerify_UsuarioVigente(t *testing.T) {
	uc := newAuthUseCase(t, true)

	out, err := uc.Verify(3)
	require.NoError(t, err)

	assert.True(t, out.Ok)
	assert.Equal(t, "Roberto", out.User.Name)
}

func TestVerify_UsuarioEliminado(t *testing.T) {
	uc := newAuthUseCase(t, true)

	_, err := uc.Verify(999)

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
