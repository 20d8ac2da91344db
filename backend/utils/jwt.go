package utils

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/vamsidulam/aiprofessor-hub/backend/config"
)

const sessionTTL = 72 * time.Hour

func GenerateJWTToken(viewerID string, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"viewer_id": viewerID,
		"exp":       time.Now().Add(sessionTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

func ExtractViewerIDFromToken(c *fiber.Ctx, cfg *config.Config) (string, error) {
	tokenString := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Missing authorization token")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	viewerID, ok := claims["viewer_id"].(string)
	if !ok || viewerID == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Invalid viewer ID in token")
	}
	return viewerID, nil
}
