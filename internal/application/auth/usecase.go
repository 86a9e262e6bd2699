package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/despachos-api/internal/application/dto"
	"github.com/jhoicas/despachos-api/internal/domain"
	"github.com/jhoicas/despachos-api/internal/domain/entity"
	"github.com/jhoicas/despachos-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login de operadores configurados por entorno.
type AuthUseCase struct {
	operators map[string]entity.Operator // por usuario en minúsculas
	jwtCfg    JWTConfig
}

// NewAuthUseCase indexa los operadores. Si un usuario se repite gana el último.
func NewAuthUseCase(operators []entity.Operator, jwtCfg JWTConfig) *AuthUseCase {
	idx := make(map[string]entity.Operator, len(operators))
	for _, op := range operators {
		idx[strings.ToLower(strings.TrimSpace(op.Username))] = op
	}
	return &AuthUseCase{operators: idx, jwtCfg: jwtCfg}
}

// Login verifica usuario/password con bcrypt y genera el JWT con el rol.
// Usuario inexistente y password incorrecto devuelven el mismo error.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	op, ok := uc.operators[username]
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if op.Role != entity.RoleAdmin && op.Role != entity.RoleDespachador {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, op.Username, op.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		Role:      op.Role,
		ExpiresIn: uc.jwtCfg.ExpMinutes,
	}, nil
}
