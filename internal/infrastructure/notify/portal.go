package notify

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pitchdesk/pitchdesk/internal/application/port"
)

// PortalConfig holds client portal link settings
type PortalConfig struct {
	BaseURL    string
	SigningKey string
	TokenTTL   time.Duration
}

// PortalIssuer issues signed, time-limited client portal links.
type PortalIssuer struct {
	config PortalConfig
	clock  port.Clock
}

// NewPortalIssuer creates a new portal issuer
func NewPortalIssuer(config PortalConfig, clock port.Clock) *PortalIssuer {
	return &PortalIssuer{
		config: config,
		clock:  clock,
	}
}

// portalClaims carries the project and client identity inside the token.
type portalClaims struct {
	ProjectID    int64 `json:"project_id"`
	ClientUserID int64 `json:"client_user_id"`
	jwt.RegisteredClaims
}

// IssueLink signs a short-lived token for the client and embeds it in the
// portal URL.
func (i *PortalIssuer) IssueLink(projectID, clientUserID int64) (string, error) {
	now := i.clock.Now()
	claims := portalClaims{
		ProjectID:    projectID,
		ClientUserID: clientUserID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", clientUserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.config.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(i.config.SigningKey))
	if err != nil {
		return "", fmt.Errorf("sign portal token: %w", err)
	}

	return fmt.Sprintf("%s/portal/projects/%d?token=%s", i.config.BaseURL, projectID, signed), nil
}

// VerifyToken parses and validates a portal token, returning the project
// and client it grants access to.
func (i *PortalIssuer) VerifyToken(tokenString string) (projectID, clientUserID int64, err error) {
	var claims portalClaims
	_, err = jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(i.config.SigningKey), nil
	}, jwt.WithTimeFunc(i.clock.Now))
	if err != nil {
		return 0, 0, fmt.Errorf("parse portal token: %w", err)
	}
	return claims.ProjectID, claims.ClientUserID, nil
}

// Verify interface compliance
var _ port.PortalLinkIssuer = (*PortalIssuer)(nil)
