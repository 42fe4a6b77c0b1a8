package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	s := NewSessionService(nil, "test-secret")

	signed := s.sign([]byte("1234567890"))
	token, err := s.verify(signed)
	require.NoError(t, err)
	require.Equal(t, "1234567890", string(token))
}

func TestSessionTokenTamperDetected(t *testing.T) {
	s := NewSessionService(nil, "test-secret")

	signed := s.sign([]byte("1234567890"))
	tampered := "A" + signed[1:]

	_, err := s.verify(tampered)
	require.Error(t, err)
}

func TestSessionTokenWrongSecret(t *testing.T) {
	issuer := NewSessionService(nil, "secret-one")
	verifier := NewSessionService(nil, "secret-two")

	signed := issuer.sign([]byte("1234567890"))
	_, err := verifier.verify(signed)
	require.Error(t, err)
}

func TestSessionTokenGarbageInput(t *testing.T) {
	s := NewSessionService(nil, "test-secret")

	for _, input := range []string{"", "not-base64!!", "YWJj"} {
		_, err := s.verify(input)
		require.Error(t, err, "input %q should not verify", input)
	}
}

func TestSessionNoSecretConfigured(t *testing.T) {
	s := NewSessionService(nil, "")
	_, err := s.verify("anything")
	require.Error(t, err)
}
