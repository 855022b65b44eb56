package state

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestKeyPair generates an RSA key pair and writes private.pem and
// public.pem into dir.
func writeTestKeyPair(t *testing.T, dir string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "private.pem"), privPEM, 0600))

	pubBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubBytes,
	})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "public.pem"), pubPEM, 0644))
}

func chdir(t *testing.T, dir string) {
	t.Helper()

	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
}

func TestInitSecret_Success(t *testing.T) {
	dir := t.TempDir()
	writeTestKeyPair(t, dir)
	chdir(t, dir)

	secret, err := InitSecret()

	require.NoError(t, err)
	require.NotNil(t, secret)
	assert.NotNil(t, secret.Private)
	assert.NotNil(t, secret.Public)
	assert.Equal(t, &secret.Private.PublicKey, secret.Public)
}

func TestInitSecret_MissingFiles(t *testing.T) {
	chdir(t, t.TempDir())

	secret, err := InitSecret()

	assert.Error(t, err)
	assert.Nil(t, secret)
}

func TestInitSecret_InvalidPEM(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "private.pem"), []byte("not a key"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "public.pem"), []byte("not a key"), 0644))
	chdir(t, dir)

	secret, err := InitSecret()

	assert.Error(t, err)
	assert.Nil(t, secret)
}
