package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC)

func TestValidate(t *testing.T) {
	var nilSession *Session
	require.ErrorIs(t, nilSession.Validate(t0), ErrAnonymous)
	require.ErrorIs(t, New("  ", time.Hour, t0).Validate(t0), ErrAnonymous)

	s := New("ada", time.Hour, t0)
	require.NoError(t, s.Validate(t0))
	require.NoError(t, s.Validate(t0.Add(59*time.Minute)))
	require.ErrorIs(t, s.Validate(t0.Add(time.Hour)), ErrExpired)
}

func TestContextRoundTrip(t *testing.T) {
	require.Nil(t, FromContext(context.Background()))

	s := New("ada", time.Hour, t0)
	ctx := NewContext(context.Background(), s)
	require.Same(t, s, FromContext(ctx))
}

func TestCodec(t *testing.T) {
	now := t0
	codec := NewCodec("secret", "dayzen").WithClock(func() time.Time { return now })

	s := New("ada", time.Hour, t0)
	token, err := codec.Encode(s)
	require.NoError(t, err)

	got, err := codec.Decode(token)
	require.NoError(t, err)
	require.Equal(t, s.ID, got.ID)
	require.Equal(t, "ada", got.User)
	require.True(t, s.ExpiresAt.Equal(got.ExpiresAt))

	now = t0.Add(2 * time.Hour)
	_, err = codec.Decode(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestCodecRejectsForeignTokens(t *testing.T) {
	codec := NewCodec("secret", "dayzen").WithClock(func() time.Time { return t0 })
	s := New("ada", time.Hour, t0)

	other, err := NewCodec("other-secret", "dayzen").Encode(s)
	require.NoError(t, err)
	_, err = codec.Decode(other)
	require.ErrorIs(t, err, ErrInvalidToken)

	wrongIssuer, err := NewCodec("secret", "someone-else").Encode(s)
	require.NoError(t, err)
	_, err = codec.Decode(wrongIssuer)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = codec.Decode("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
