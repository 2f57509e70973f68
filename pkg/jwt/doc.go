// Package jwt issues and verifies the HS256 access tokens handed out at login.
//
//	tokens, err := jwt.NewFromString(cfg.JWTSecret, jwt.WithTTL(24*time.Hour))
//
//	claims := accounts.Claims{ID: admin.ID, Username: admin.Username}
//	tokens.Stamp(&claims.StandardClaims)
//	token, err := tokens.Generate(&claims)
//
//	var parsed accounts.Claims
//	err = tokens.Parse(token, &parsed) // ErrExpiredToken, ErrInvalidSignature, ErrInvalidToken
package jwt
