package commands

import (
	"context"
	"encoding/json"
	"time"

	"resortly/internal/domain/otp"
	"resortly/internal/domain/user"
	"resortly/internal/infra"
	"resortly/internal/pkg/clock"
	"resortly/internal/pkg/config"
	"resortly/internal/pkg/errs"
	"resortly/internal/pkg/jwt"
	"resortly/internal/pkg/password"
	"resortly/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrEmailAlreadyExists = errs.New("email already registered")
	ErrInvalidCredentials = errs.New("invalid email or password")
	ErrUserInactive       = errs.New("user account is deactivated")
	ErrCommandFailed      = errs.New("command failed")
)

const (
	jobKindEmail       = "email"
	topicOtpChallenge  = "otp_challenge"
	topicBookingMade   = "booking_confirmation"
	topicBookingCancel = "booking_cancellation"
)

type AuthCommands interface {
	// Signup registers the identity and issues its first verification
	// challenge in the same transaction.
	Signup(ctx context.Context, email user.Email, pass user.Password, role user.Role) (uuid.UUID, error)
	// Login checks the credentials and issues a fresh challenge. Any
	// prior unconsumed challenge is superseded.
	Login(ctx context.Context, creds user.Credentials) error
	// VerifyOtp runs the challenge transition and, on success, returns
	// the session token. Mismatch and expiry leave the challenge in
	// place for retry.
	VerifyOtp(ctx context.Context, email string, code int) (string, *user.User, error)
}

type authCommandsImpl struct {
	uow   shared.UnitOfWork
	jwt   *jwt.Service
	gen   otp.Generator
	clock clock.Clock
	otp   config.OTPConfig
}

func NewAuthCommands(
	uow shared.UnitOfWork,
	jwtSvc *jwt.Service,
	gen otp.Generator,
	clk clock.Clock,
	cfg config.Config,
) AuthCommands {
	return &authCommandsImpl{
		uow:   uow,
		jwt:   jwtSvc,
		gen:   gen,
		clock: clk,
		otp:   cfg.OTP,
	}
}

func (c *authCommandsImpl) Signup(ctx context.Context, email user.Email, pass user.Password, role user.Role) (uuid.UUID, error) {
	hash, err := password.HashPassword(pass.String())
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrCommandFailed)
	}

	now := c.clock.Now()
	u := user.NewUser(email, hash, role)
	challenge, err := otp.Issue(c.gen, now, c.otp.Validity)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrCommandFailed)
	}
	u.AttachChallenge(challenge)

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, err := tx.Users().Create(ctx, u)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrEmailAlreadyExists
			}
			return err
		}
		if err := tx.Users().SaveChallenge(ctx, id, challenge.Code(), challenge.ExpiresAt()); err != nil {
			return err
		}
		return enqueueOtpMail(ctx, tx, email.String(), challenge, now)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return u.ID(), nil
}

func (c *authCommandsImpl) Login(ctx context.Context, creds user.Credentials) error {
	snap, err := c.uow.Reads().UserByEmail(ctx, creds.Email().String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrInvalidCredentials
		}
		return errs.Mark(err, ErrCommandFailed)
	}
	if !snap.IsActive {
		return ErrUserInactive
	}
	if err := password.ComparePassword(snap.PasswordHash, creds.Password().String()); err != nil {
		return ErrInvalidCredentials
	}

	now := c.clock.Now()
	challenge, err := otp.Issue(c.gen, now, c.otp.Validity)
	if err != nil {
		return errs.Mark(err, ErrCommandFailed)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Users().SaveChallenge(ctx, snap.ID, challenge.Code(), challenge.ExpiresAt()); err != nil {
			return err
		}
		return enqueueOtpMail(ctx, tx, snap.Email, challenge, now)
	})
}

func (c *authCommandsImpl) VerifyOtp(ctx context.Context, email string, code int) (string, *user.User, error) {
	snap, err := c.uow.Reads().UserByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return "", nil, otp.ErrNoActiveChallenge
		}
		return "", nil, errs.Mark(err, ErrCommandFailed)
	}

	u, err := shared.UserFromSnapshot(snap)
	if err != nil {
		return "", nil, errs.Mark(err, ErrCommandFailed)
	}
	if err := u.VerifyChallenge(code, c.clock.Now()); err != nil {
		return "", nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Users().ConsumeChallenge(ctx, u.ID()); err != nil {
			return err
		}
		return tx.Users().UpdateLastLogin(ctx, u.ID())
	})
	if err != nil {
		return "", nil, err
	}

	token, err := c.jwt.GenerateToken(u.ID(), u.Role())
	if err != nil {
		return "", nil, errs.Mark(err, ErrCommandFailed)
	}
	return token, u, nil
}

func enqueueOtpMail(ctx context.Context, tx shared.Tx, email string, challenge otp.Challenge, runAt time.Time) error {
	payload, err := json.Marshal(map[string]any{
		"email":      email,
		"otp":        challenge.Code(),
		"expires_at": challenge.ExpiresAt().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, jobKindEmail, topicOtpChallenge, payload, runAt)
}
