package jwt

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"japjap-server/internal/config"
)

const (
	// Issuer is the iss claim of every token this server signs
	Issuer = "japjap-server"

	// Audience is the aud claim a token must carry
	Audience = "japjap-client"

	tokenTTL = 30 * 24 * time.Hour
)

var (
	// ErrInvalidAudience is returned when the token was meant for someone else
	ErrInvalidAudience = errors.New("invalid audience")

	// ErrInvalidIssuer is returned when the token was not issued by this server
	ErrInvalidIssuer = errors.New("invalid issuer")

	errKeysNotLoaded = errors.New("jwt keys are not loaded")
)

var (
	publicKey  *rsa.PublicKey
	privateKey *rsa.PrivateKey
)

var parser = jwtgo.NewParser(
	jwtgo.WithValidMethods([]string{jwtgo.SigningMethodRS256.Alg()}),
	jwtgo.WithAudience(Audience),
	jwtgo.WithIssuer(Issuer),
	jwtgo.WithIssuedAt(),
)

// LoadKeys reads the configured RSA key pair, call it once at startup
func LoadKeys() error {
	cfg := config.Instance().JWT

	priv, err := loadPrivateKey(cfg.PrivateKey)
	if err != nil {
		return err
	}

	pub, err := loadPublicKey(cfg.PublicKey)
	if err != nil {
		return err
	}

	privateKey, publicKey = priv, pub
	return nil
}

// Sign issues a token for the player
func Sign(playerID int64) (string, error) {
	if privateKey == nil {
		return "", errKeysNotLoaded
	}

	now := time.Now()
	claims := jwtgo.RegisteredClaims{
		Issuer:    Issuer,
		Subject:   strconv.FormatInt(playerID, 10),
		Audience:  jwtgo.ClaimStrings{Audience},
		ExpiresAt: jwtgo.NewNumericDate(now.Add(tokenTTL)),
		IssuedAt:  jwtgo.NewNumericDate(now),
		ID:        uuid.NewString(),
	}

	return jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, claims).SignedString(privateKey)
}

// ValidUserID verifies a signed token and returns the player ID in its subject
func ValidUserID(signed string) (int64, error) {
	if publicKey == nil {
		return 0, errKeysNotLoaded
	}

	var claims jwtgo.RegisteredClaims
	_, err := parser.ParseWithClaims(signed, &claims, func(*jwtgo.Token) (interface{}, error) {
		return publicKey, nil
	})

	switch {
	case errors.Is(err, jwtgo.ErrTokenInvalidAudience):
		return 0, ErrInvalidAudience
	case errors.Is(err, jwtgo.ErrTokenInvalidIssuer):
		return 0, ErrInvalidIssuer
	case err != nil:
		return 0, err
	}

	return strconv.ParseInt(claims.Subject, 10, 64)
}

func readPEM(kind, path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s key: %w", kind, err)
	}

	return b, nil
}

func loadPublicKey(path string) (*rsa.PublicKey, error) {
	b, err := readPEM("public", path)
	if err != nil {
		return nil, err
	}

	return jwtgo.ParseRSAPublicKeyFromPEM(b)
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	b, err := readPEM("private", path)
	if err != nil {
		return nil, err
	}

	return jwtgo.ParseRSAPrivateKeyFromPEM(b)
}
