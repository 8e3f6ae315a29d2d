package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/senyabanana/rfq-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SendErrorResponse отправляет ошибку в формате JSON.
func SendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := models.ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
	}
	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		log.Println(err)
	}
}

// ParseLimitOffset обрабатывает limit и offset.
func ParseLimitOffset(limitStr, offsetStr string) (int, int, error) {
	var limit, offset int
	var err error

	if limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 || limit > 50 {
			return 0, 0, fmt.Errorf("invalid limit parameter, must be a positive integer [0:50]")
		}
	} else {
		limit = 5
	}

	if offsetStr != "" {
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset parameter, must be a non-negative integer")
		}
	} else {
		offset = 0
	}

	return limit, offset, nil
}

// ValidQuoteID проверяет, что идентификатор заявки - корректный UUID.
func ValidQuoteID(quoteID string) bool {
	_, err := uuid.Parse(quoteID)
	return err == nil
}

// CheckUserIsAdmin проверяет, что пользователь существует и имеет роль admin.
func CheckUserIsAdmin(ctx context.Context, dbPool *pgxpool.Pool, username string) (bool, error) {
	var isAdmin bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 AND role = $2)`
	err := dbPool.QueryRow(ctx, query, username, models.AdminRole).Scan(&isAdmin)
	if err != nil {
		return false, err
	}
	return isAdmin, nil
}

// CheckQuoteExists проверяет, существует ли заявка.
func CheckQuoteExists(ctx context.Context, dbPool *pgxpool.Pool, quoteID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM quotes WHERE id = $1)`
	err := dbPool.QueryRow(ctx, query, quoteID).Scan(&exists)
	return exists, err
}
