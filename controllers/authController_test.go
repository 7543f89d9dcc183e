package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Voxodinson/webass-api/models"
	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerRequest(form string) *http.Request {
	request := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(form))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return request
}

func TestRegisterIgnoresClientSuppliedRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.POST("/register", NewAuthController(db, nil).Register)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, registerRequest("name=eve&email=eve%40example.com&password=secret1&role=admin"))

	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var response struct {
		Data struct {
			Role string `json:"role"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, models.RoleUser, response.Data.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterLostInsertRaceReturnsConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'eve@example.com'"})
	mock.ExpectRollback()

	router := gin.New()
	router.POST("/register", NewAuthController(db, nil).Register)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, registerRequest("name=eve&email=eve%40example.com&password=secret1"))

	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code, recorder.Body.String())

	var response struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Contains(t, response.Errors, "email")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/logout", (&AuthController{}).Logout)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/logout", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Logged out successfully")
}
