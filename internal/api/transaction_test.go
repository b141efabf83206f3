package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"finance_tracker/internal/domain"
	"finance_tracker/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTransactionForcesCallerUserID(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	aliceToken := registerUser(t, r, "alice", "alice@example.com")
	bobToken := registerUser(t, r, "bob", "bob@example.com")

	bobClaims, err := utils.ParseJWT(bobToken, testSecret)
	require.NoError(t, err)

	// Alice tries to smuggle Bob's user id into the payload
	w := doRequest(t, r, "POST", "/api/transactions", aliceToken, gin.H{
		"amount":      50,
		"description": "smuggled",
		"date":        "2025-01-10",
		"type":        "expense",
		"user_id":     bobClaims.UserID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// The row belongs to Alice regardless
	aliceClaims, err := utils.ParseJWT(aliceToken, testSecret)
	require.NoError(t, err)
	var stored domain.Transaction
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, aliceClaims.UserID, stored.UserID)

	// Bob's list stays empty
	list := doRequest(t, r, "GET", "/api/transactions", bobToken, nil)
	require.Equal(t, http.StatusOK, list.Code)
	assert.JSONEq(t, "[]", list.Body.String())
}

func TestListTransactionsJoinsCategoryName(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	token := registerUser(t, r, "alice", "alice@example.com")

	categoryID := createCategory(t, r, token, "Groceries", "expense")

	w := doRequest(t, r, "POST", "/api/transactions", token, gin.H{
		"amount": 42.5, "description": "weekly shop", "date": "2025-02-01",
		"category_id": categoryID, "type": "expense",
	})
	require.Equal(t, http.StatusOK, w.Code)
	w = doRequest(t, r, "POST", "/api/transactions", token, gin.H{
		"amount": 5, "description": "uncategorized", "date": "2025-02-02", "type": "expense",
	})
	require.Equal(t, http.StatusOK, w.Code)

	list := doRequest(t, r, "GET", "/api/transactions", token, nil)
	require.Equal(t, http.StatusOK, list.Code)
	var rows []TransactionRow
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &rows))
	require.Len(t, rows, 2)

	byDescription := map[string]TransactionRow{}
	for _, row := range rows {
		byDescription[row.Description] = row
	}
	require.NotNil(t, byDescription["weekly shop"].CategoryName)
	assert.Equal(t, "Groceries", *byDescription["weekly shop"].CategoryName)
	assert.Nil(t, byDescription["uncategorized"].CategoryName)
}

func TestListTransactionsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	token := registerUser(t, r, "alice", "alice@example.com")

	for _, date := range []string{"2025-01-15", "2025-03-01", "2025-02-10"} {
		w := doRequest(t, r, "POST", "/api/transactions", token, gin.H{
			"amount": 1, "description": date, "date": date, "type": "expense",
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	list := doRequest(t, r, "GET", "/api/transactions", token, nil)
	require.Equal(t, http.StatusOK, list.Code)
	var rows []TransactionRow
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "2025-03-01", rows[0].Date)
	assert.Equal(t, "2025-02-10", rows[1].Date)
	assert.Equal(t, "2025-01-15", rows[2].Date)
}

func TestUpdateTransaction(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	token := registerUser(t, r, "alice", "alice@example.com")

	w := doRequest(t, r, "POST", "/api/transactions", token, gin.H{
		"amount": 10, "description": "lunch", "date": "2025-04-01", "type": "expense",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = doRequest(t, r, "PUT", fmt.Sprintf("/api/transactions/%d", resp.ID), token, gin.H{
		"amount": 12.5, "description": "lunch and coffee", "date": "2025-04-01", "type": "expense",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var stored domain.Transaction
	require.NoError(t, db.First(&stored, resp.ID).Error)
	assert.Equal(t, 12.5, stored.Amount)
	assert.Equal(t, "lunch and coffee", stored.Description)
}

func TestForeignTransactionIsMaskedAsNotFound(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	aliceToken := registerUser(t, r, "alice", "alice@example.com")
	bobToken := registerUser(t, r, "bob", "bob@example.com")

	w := doRequest(t, r, "POST", "/api/transactions", aliceToken, gin.H{
		"amount": 10, "description": "private", "date": "2025-04-01", "type": "expense",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// Bob gets the same response as for a row that does not exist at all
	w = doRequest(t, r, "PUT", fmt.Sprintf("/api/transactions/%d", resp.ID), bobToken, gin.H{
		"amount": 1, "description": "tampered", "date": "2025-04-01", "type": "expense",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, r, "DELETE", fmt.Sprintf("/api/transactions/%d", resp.ID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Alice's row survived untouched
	var stored domain.Transaction
	require.NoError(t, db.First(&stored, resp.ID).Error)
	assert.Equal(t, "private", stored.Description)
	assert.Equal(t, float64(10), stored.Amount)
}

func TestTransactionsRequireToken(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	w := doRequest(t, r, "GET", "/api/transactions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "No token")

	w = doRequest(t, r, "GET", "/api/transactions", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "not valid")
}
