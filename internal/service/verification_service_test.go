package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"feedback-be/internal/domain"
)

// recordingProvider captures delivered codes for assertions.
type recordingProvider struct {
	sends []sentCode
	fail  bool
}

type sentCode struct {
	kind   domain.ChannelKind
	target string
	code   string
}

func (p *recordingProvider) Send(_ context.Context, kind domain.ChannelKind, target, code string) error {
	if p.fail {
		return fmt.Errorf("gateway unavailable")
	}
	p.sends = append(p.sends, sentCode{kind: kind, target: target, code: code})
	return nil
}

type verificationFixture struct {
	store    *SessionStore
	provider *recordingProvider
	svc      *VerificationService
	now      time.Time
}

func setupVerification(t *testing.T, fixedCode string) *verificationFixture {
	t.Helper()

	store := NewSessionStore(setupTestRedis(t))
	provider := &recordingProvider{}
	svc := NewVerificationService(store, provider, fixedCode, zap.NewNop())

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	return &verificationFixture{store: store, provider: provider, svc: svc, now: now}
}

func (f *verificationFixture) startSession(t *testing.T, phone, email string) *domain.FeedbackSession {
	t.Helper()
	sess := domain.NewFeedbackSession("sess-1", "ws-1", f.now)
	sess.Draft.Phone = phone
	sess.Draft.Email = email
	require.NoError(t, f.store.Save(context.Background(), sess))
	return sess
}

func TestRequestCode(t *testing.T) {
	ctx := context.Background()

	t.Run("issues and delivers a code", func(t *testing.T) {
		f := setupVerification(t, "")
		f.startSession(t, "081-234-5678", "alice@example.com")

		resp, err := f.svc.RequestCode(ctx, "sess-1", domain.ChannelPhone)
		require.NoError(t, err)

		assert.Equal(t, domain.ProofPending, resp.PhoneState)
		assert.EqualValues(t, 60, resp.PhoneCooldown)

		require.Len(t, f.provider.sends, 1)
		assert.Equal(t, domain.ChannelPhone, f.provider.sends[0].kind)
		assert.Equal(t, "0812345678", f.provider.sends[0].target)
		assert.Len(t, f.provider.sends[0].code, 6)
	})

	t.Run("fixed code override is used when configured", func(t *testing.T) {
		f := setupVerification(t, "000000")
		f.startSession(t, "0812345678", "alice@example.com")

		_, err := f.svc.RequestCode(ctx, "sess-1", domain.ChannelEmail)
		require.NoError(t, err)

		require.Len(t, f.provider.sends, 1)
		assert.Equal(t, "000000", f.provider.sends[0].code)
	})

	t.Run("invalid phone in draft", func(t *testing.T) {
		f := setupVerification(t, "")
		f.startSession(t, "12345", "alice@example.com")

		_, err := f.svc.RequestCode(ctx, "sess-1", domain.ChannelPhone)
		assert.ErrorIs(t, err, domain.ErrInvalidTarget)
		assert.Empty(t, f.provider.sends)
	})

	t.Run("invalid email in draft", func(t *testing.T) {
		f := setupVerification(t, "")
		f.startSession(t, "0812345678", "not-an-email")

		_, err := f.svc.RequestCode(ctx, "sess-1", domain.ChannelEmail)
		assert.ErrorIs(t, err, domain.ErrInvalidTarget)
	})

	t.Run("second request during cooldown is rejected", func(t *testing.T) {
		f := setupVerification(t, "")
		f.startSession(t, "0812345678", "alice@example.com")

		_, err := f.svc.RequestCode(ctx, "sess-1", domain.ChannelPhone)
		require.NoError(t, err)

		_, err = f.svc.RequestCode(ctx, "sess-1", domain.ChannelPhone)
		assert.ErrorIs(t, err, domain.ErrCooldownActive)
		assert.Len(t, f.provider.sends, 1)
	})

	t.Run("unknown session", func(t *testing.T) {
		f := setupVerification(t, "")

		_, err := f.svc.RequestCode(ctx, "missing", domain.ChannelPhone)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("delivery failure surfaces to the caller", func(t *testing.T) {
		f := setupVerification(t, "")
		f.startSession(t, "0812345678", "alice@example.com")
		f.provider.fail = true

		_, err := f.svc.RequestCode(ctx, "sess-1", domain.ChannelPhone)
		assert.Error(t, err)
	})

	t.Run("delivery failure does not start the cooldown", func(t *testing.T) {
		f := setupVerification(t, "424242")
		f.startSession(t, "0812345678", "alice@example.com")

		f.provider.fail = true
		_, err := f.svc.RequestCode(ctx, "sess-1", domain.ChannelPhone)
		require.Error(t, err)

		sess, err := f.store.Get(ctx, "sess-1")
		require.NoError(t, err)
		assert.Equal(t, domain.ProofUnsent, sess.Phone.State)
		assert.True(t, sess.Phone.CooldownUntil.IsZero())

		// The gateway recovers; a retry works immediately and the fresh
		// code verifies.
		f.provider.fail = false
		_, err = f.svc.RequestCode(ctx, "sess-1", domain.ChannelPhone)
		require.NoError(t, err)

		resp, err := f.svc.SubmitCode(ctx, "sess-1", domain.ChannelPhone, "424242")
		require.NoError(t, err)
		assert.Equal(t, domain.ProofVerified, resp.PhoneState)
	})
}

func TestSubmitCodeService(t *testing.T) {
	ctx := context.Background()

	t.Run("correct code verifies the channel", func(t *testing.T) {
		f := setupVerification(t, "424242")
		f.startSession(t, "0812345678", "alice@example.com")

		_, err := f.svc.RequestCode(ctx, "sess-1", domain.ChannelPhone)
		require.NoError(t, err)

		resp, err := f.svc.SubmitCode(ctx, "sess-1", domain.ChannelPhone, "424242")
		require.NoError(t, err)
		assert.Equal(t, domain.ProofVerified, resp.PhoneState)

		// The other channel is untouched.
		assert.Equal(t, domain.ProofUnsent, resp.EmailState)
	})

	t.Run("wrong code persists the failed state", func(t *testing.T) {
		f := setupVerification(t, "424242")
		f.startSession(t, "0812345678", "alice@example.com")

		_, err := f.svc.RequestCode(ctx, "sess-1", domain.ChannelEmail)
		require.NoError(t, err)

		_, err = f.svc.SubmitCode(ctx, "sess-1", domain.ChannelEmail, "111111")
		assert.ErrorIs(t, err, domain.ErrCodeMismatch)

		sess, err := f.store.Get(ctx, "sess-1")
		require.NoError(t, err)
		assert.Equal(t, domain.ProofFailed, sess.Email.State)
	})

	t.Run("retry after a mismatch succeeds", func(t *testing.T) {
		f := setupVerification(t, "424242")
		f.startSession(t, "0812345678", "alice@example.com")

		_, err := f.svc.RequestCode(ctx, "sess-1", domain.ChannelEmail)
		require.NoError(t, err)

		_, err = f.svc.SubmitCode(ctx, "sess-1", domain.ChannelEmail, "111111")
		require.ErrorIs(t, err, domain.ErrCodeMismatch)

		resp, err := f.svc.SubmitCode(ctx, "sess-1", domain.ChannelEmail, "424242")
		require.NoError(t, err)
		assert.Equal(t, domain.ProofVerified, resp.EmailState)
	})

	t.Run("submit without a requested code", func(t *testing.T) {
		f := setupVerification(t, "")
		f.startSession(t, "0812345678", "alice@example.com")

		_, err := f.svc.SubmitCode(ctx, "sess-1", domain.ChannelPhone, "123456")
		assert.ErrorIs(t, err, domain.ErrNoCodeIssued)
	})
}
