package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const operatorTokenType = "operator"

// JWTService emite y valida tokens de operador para endpoints de escritura.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	store  TokenStore
}

type Claims struct {
	Operator  string `json:"op"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

var (
	ErrJWTInvalid = errors.New("jwt invalid")
	ErrJWTExpired = errors.New("jwt expired")
)

func NewJWTService(secret string, ttl time.Duration) *JWTService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "president-insights",
	}
}

// NewJWTServiceWithStore habilita revocacion: solo valen los jti guardados en store.
func NewJWTServiceWithStore(secret string, ttl time.Duration, store TokenStore) *JWTService {
	svc := NewJWTService(secret, ttl)
	svc.store = store
	return svc
}

// IssueOperatorToken firma un token HS256 para el operador indicado.
func (s *JWTService) IssueOperatorToken(operator string) (string, error) {
	operator = strings.TrimSpace(operator)
	if len(s.secret) == 0 || operator == "" {
		return "", ErrJWTInvalid
	}
	now := time.Now().UTC()
	jti := uuid.NewString()
	claims := Claims{
		Operator:  operator,
		TokenType: operatorTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    s.issuer,
			Subject:   operator,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err
	}
	if s.store != nil {
		if err := s.store.Store(jti, operator, s.ttl); err != nil {
			return "", err
		}
	}
	return signed, nil
}

func (s *JWTService) ParseOperatorToken(token string) (Claims, error) {
	if len(s.secret) == 0 {
		return Claims{}, ErrJWTInvalid
	}
	if strings.TrimSpace(token) == "" {
		return Claims{}, ErrJWTInvalid
	}
	claims, err := s.parseToken(token)
	if err != nil {
		return Claims{}, err
	}
	if claims.TokenType != operatorTokenType || !s.isValidClaims(claims) {
		return Claims{}, ErrJWTInvalid
	}
	if s.store != nil {
		ok, err := s.store.Exists(claims.ID)
		if err != nil || !ok {
			return Claims{}, ErrJWTInvalid
		}
	}
	return claims, nil
}

// Revoke invalida un token emitido; requiere store.
func (s *JWTService) Revoke(token string) error {
	claims, err := s.ParseOperatorToken(token)
	if err != nil {
		return err
	}
	if s.store == nil {
		return ErrJWTInvalid
	}
	return s.store.Revoke(claims.ID)
}

func (s *JWTService) parseToken(tokenString string) (Claims, error) {
	var claims Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrJWTExpired
		}
		return Claims{}, ErrJWTInvalid
	}
	return claims, nil
}

func (s *JWTService) isValidClaims(claims Claims) bool {
	if strings.TrimSpace(claims.Operator) == "" || claims.Subject != claims.Operator {
		return false
	}
	if strings.TrimSpace(claims.ID) == "" {
		return false
	}
	return strings.TrimSpace(claims.Issuer) == s.issuer
}
