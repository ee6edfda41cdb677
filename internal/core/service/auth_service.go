package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/ineludible/trazos-api/internal/core/domain"
	"github.com/ineludible/trazos-api/internal/core/ports"
	"github.com/ineludible/trazos-api/internal/core/trace"
)

// AuthService implements signature-based registration and login. The
// signature is the sole credential by design; this is a membership lookup,
// not a security mechanism.
type AuthService struct {
	users     ports.UserRepository
	bonuses   ports.BonusRepository
	stats     ports.StatsService
	calc      *trace.Calculator
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	bonuses ports.BonusRepository,
	stats ports.StatsService,
	calc *trace.Calculator,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		bonuses:   bonuses,
		stats:     stats,
		calc:      calc,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Register creates a member with the default rank and zero totals, grants the
// project-entry bonus, and resyncs so the bonus shows up in the totals.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	signature, err := domain.NormalizeSignature(in.Signature)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.FullName) == "" {
		verr := &domain.ValidationError{}
		verr.Add("full_name", "is required")
		return nil, verr
	}

	now := time.Now().UTC()
	user := &domain.User{
		Signature:  signature,
		FullName:   in.FullName,
		Age:        in.Age,
		BirthDay:   in.BirthDay,
		BirthMonth: in.BirthMonth,
		Link:       in.Link,
		Motivation: in.Motivation,
		Role:       domain.RoleUser,
		Rank:       domain.RankAlmaEnTransito,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if signature == domain.AdminSignature {
		user.Role = domain.RoleAdmin
	}

	created, err := s.users.Insert(ctx, user)
	if err != nil {
		return nil, err
	}

	// Welcome bonus. Failure here is non-fatal: registration already
	// succeeded and the grant can be repeated by an admin.
	award := &domain.BonusAward{
		UserID:    created.ID,
		Amount:    s.calc.BonusTraces(domain.BonusProjectEntry),
		Category:  domain.BonusProjectEntry,
		Reason:    "alta en el proyecto",
		CreatedAt: now,
	}
	if _, err := s.bonuses.Insert(ctx, award); err != nil {
		s.log.Warn().Err(err).Int64("user_id", created.ID).Msg("failed to grant registration bonus")
	} else if err := s.stats.Resync(ctx, created.ID); err != nil {
		s.log.Warn().Err(err).Int64("user_id", created.ID).Msg("resync after registration bonus failed")
	}

	refreshed, err := s.users.FindByID(ctx, created.ID)
	if err != nil {
		return created, nil
	}

	s.log.Info().Int64("user_id", refreshed.ID).Str("signature", signature).Msg("user registered")
	return refreshed, nil
}

// Login resolves the signature and issues a signed token. The reserved admin
// signature is promoted regardless of the stored role.
func (s *AuthService) Login(ctx context.Context, signature string) (string, *domain.User, error) {
	normalized, err := domain.NormalizeSignature(signature)
	if err != nil {
		return "", nil, err
	}

	user, err := s.users.FindBySignature(ctx, normalized)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	role := domain.RoleUser
	if user.IsAdmin() {
		role = domain.RoleAdmin
	}

	claims := jwt.MapClaims{
		"user_id":   user.ID,
		"signature": user.Signature,
		"role":      role,
		"exp":       time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
