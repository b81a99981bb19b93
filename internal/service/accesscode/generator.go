// Package accesscode issues and verifies single-use box access codes.
// Raw codes are returned to the caller exactly once; only bcrypt hashes
// reach storage.
package accesscode

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/boxswap/boxswap-backend/internal/domain"
)

type codeRepo interface {
	Insert(ctx context.Context, code *domain.AccessCode) error
	GetLive(ctx context.Context, exchangeID uuid.UUID, role domain.OpenRole) (*domain.AccessCode, error)
	RevokeLive(ctx context.Context, exchangeID uuid.UUID, role domain.OpenRole, now time.Time) error
	Consume(ctx context.Context, id uuid.UUID, now time.Time) error
}

// Characters that survive handwriting and phone screens: no 0/O, no 1/I.
// Exactly 32 characters, so a random byte masked to 5 bits indexes without bias.
const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Generator issues and verifies access codes.
type Generator struct {
	codes  codeRepo
	ttl    time.Duration
	length int
	log    *slog.Logger
	now    func() time.Time
}

// NewGenerator creates an access code generator.
func NewGenerator(log *slog.Logger, codes codeRepo, ttl time.Duration, length int) *Generator {
	return &Generator{
		codes:  codes,
		ttl:    ttl,
		length: length,
		log:    log.With("service", "accesscode"),
		now:    time.Now,
	}
}

// Issue revokes any live code for (exchangeID, role) and stores a fresh one,
// returning the raw code and its expiry. The raw code is unrecoverable after
// this call. Intended to run inside the caller's transaction.
func (g *Generator) Issue(ctx context.Context, exchangeID uuid.UUID, role domain.OpenRole) (string, time.Time, error) {
	now := g.now().UTC()

	if err := g.codes.RevokeLive(ctx, exchangeID, role, now); err != nil {
		return "", time.Time{}, fmt.Errorf("revoke prior code: %w", err)
	}

	raw, err := randomCode(g.length)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate code: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("hash code: %w", err)
	}

	code := &domain.AccessCode{
		ID:         uuid.New(),
		ExchangeID: exchangeID,
		Role:       role,
		CodeHash:   string(hash),
		IssuedAt:   now,
		ExpiresAt:  now.Add(g.ttl),
	}
	if err := g.codes.Insert(ctx, code); err != nil {
		return "", time.Time{}, fmt.Errorf("store code: %w", err)
	}

	g.log.InfoContext(ctx, "access code issued",
		slog.String("exchange_id", exchangeID.String()),
		slog.String("role", role.String()),
		slog.Time("expires_at", code.ExpiresAt),
	)

	return raw, code.ExpiresAt, nil
}

// ValidateAndConsume checks raw against the live code for (exchangeID, role)
// and consumes it. Every failure mode (no code, expired, wrong code, already
// consumed) surfaces as domain.ErrInvalidCode without detail.
func (g *Generator) ValidateAndConsume(ctx context.Context, exchangeID uuid.UUID, role domain.OpenRole, raw string) error {
	now := g.now().UTC()

	code, err := g.codes.GetLive(ctx, exchangeID, role)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no live code for %s/%s: %w", exchangeID, role, domain.ErrInvalidCode)
		}
		return fmt.Errorf("load code: %w", err)
	}

	if !code.Live(now) {
		return fmt.Errorf("code for %s/%s expired: %w", exchangeID, role, domain.ErrInvalidCode)
	}

	if bcrypt.CompareHashAndPassword([]byte(code.CodeHash), []byte(raw)) != nil {
		return fmt.Errorf("code mismatch for %s/%s: %w", exchangeID, role, domain.ErrInvalidCode)
	}

	if err := g.codes.Consume(ctx, code.ID, now); err != nil {
		return err
	}

	g.log.InfoContext(ctx, "access code consumed",
		slog.String("exchange_id", exchangeID.String()),
		slog.String("role", role.String()),
	)
	return nil
}

// LiveExpiry returns when the current live code for (exchangeID, role)
// expires, or nil when no live code exists. Read-only.
func (g *Generator) LiveExpiry(ctx context.Context, exchangeID uuid.UUID, role domain.OpenRole) (*time.Time, error) {
	code, err := g.codes.GetLive(ctx, exchangeID, role)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load code: %w", err)
	}
	if !code.Live(g.now()) {
		return nil, nil
	}
	expiresAt := code.ExpiresAt
	return &expiresAt, nil
}

func randomCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, length)
	for i, b := range buf {
		out[i] = alphabet[int(b)&31]
	}
	return string(out), nil
}
