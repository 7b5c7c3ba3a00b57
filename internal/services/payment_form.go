package services

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"publicweb/internal/domain/models"
	"publicweb/internal/utils"

	"github.com/golang-jwt/jwt/v5"
)

// PaymentFormSigner builds hosted payment form links. The form reads the
// order and amount from a HS256 token so the link cannot be tampered with.
type PaymentFormSigner struct {
	BaseURL string
	Secret  []byte
}

// PaymentFormClaims is the token payload; Amount is in minor units.
type PaymentFormClaims struct {
	OrderID  int64  `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	jwt.RegisteredClaims
}

// FormURL returns BaseURL with the signed session token in ?token=.
func (s PaymentFormSigner) FormURL(session models.PaymentSession) (string, error) {
	if len(s.Secret) == 0 {
		return "", errors.New("payment form secret not configured")
	}
	u, err := url.Parse(strings.TrimSpace(s.BaseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid payment form url %q", s.BaseURL)
	}

	claims := PaymentFormClaims{
		OrderID:  session.OrderID,
		Amount:   utils.ToMinorUnits(session.Amount),
		Currency: session.Currency,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   fmt.Sprintf("order:%d", session.OrderID),
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", fmt.Errorf("sign payment token: %w", err)
	}

	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ParseToken verifies a token produced by FormURL.
func (s PaymentFormSigner) ParseToken(raw string) (PaymentFormClaims, error) {
	var claims PaymentFormClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return PaymentFormClaims{}, err
	}
	return claims, nil
}
