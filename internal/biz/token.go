package biz

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strconv"
	"time"

	"connect-register/internal/biz/model"
	conf "connect-register/internal/conf/v1"
	"connect-register/internal/data"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultTokenExpireHours = 24
	defaultTokenIssuer      = "connect-register"
)

var (
	ErrUserNotPersisted = errors.New("user is not persisted")
	ErrInvalidToken     = model.ErrInvalidToken
)

// TokenIssuer 为已创建的用户签发 JWT，并在 redis 中登记 jti
type TokenIssuer struct {
	repo   data.TokenRepo
	secret []byte
	ttl    time.Duration
	issuer string
	l      *zap.Logger
	now    func() time.Time
}

func NewTokenIssuer(repo data.TokenRepo, cfg *conf.Bootstrap, logger *zap.Logger) (*TokenIssuer, error) {
	auth := &conf.Auth{}
	if cfg != nil && cfg.Auth != nil {
		auth = cfg.Auth
	}

	var secret []byte
	if auth.JwtSecret != "" {
		secret = []byte(auth.JwtSecret)
	} else {
		// 生成默认密钥
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate jwt secret failed: %w", err)
		}
		logger.Warn("WARNING: Using auto-generated JWT secret, set auth.jwt_secret in config for production")
	}

	expireHours := auth.JwtExpireHours
	if expireHours <= 0 {
		expireHours = defaultTokenExpireHours
	}
	issuer := auth.JwtIssuer
	if issuer == "" {
		issuer = defaultTokenIssuer
	}

	return &TokenIssuer{
		repo:   repo,
		secret: secret,
		ttl:    time.Duration(expireHours) * time.Hour,
		issuer: issuer,
		l:      logger,
		now:    time.Now,
	}, nil
}

// Create 为用户签发令牌，用户必须已持久化
func (t *TokenIssuer) Create(ctx context.Context, user *model.User) (*model.AuthToken, error) {
	if user == nil || user.ID == 0 {
		return nil, ErrUserNotPersisted
	}

	now := t.now()
	expiresAt := now.Add(t.ttl)
	jti := uuid.NewString()

	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(user.ID, 10),
		"usr": user.Name,
		"jti": jti,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
		"iss": t.issuer,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	if err := t.repo.StoreToken(ctx, jti, user.ID, t.ttl); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}

	return &model.AuthToken{
		Token:     signed,
		ID:        jti,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify 校验签名与有效期，并确认 jti 仍登记在令牌存储中，返回用户 ID
func (t *TokenIssuer) Verify(ctx context.Context, token string) (int64, error) {
	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	jti, _ := claims["jti"].(string)

	stored, err := t.repo.TokenUser(ctx, jti)
	if errors.Is(err, data.ErrTokenNotFound) {
		return 0, fmt.Errorf("%w: token revoked or expired", ErrInvalidToken)
	}
	if err != nil {
		return 0, fmt.Errorf("load token: %w", err)
	}
	if stored != userID {
		return 0, fmt.Errorf("%w: subject mismatch", ErrInvalidToken)
	}
	return userID, nil
}
