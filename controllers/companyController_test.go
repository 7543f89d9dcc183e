package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two concurrent creates can both pass the count check; the loser's insert
// hits the unique index and must still come back as a validation conflict.
func TestCreateCompanyLostInsertRaceReturnsConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `companies`").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'shop@example.com'"})
	mock.ExpectRollback()

	router := gin.New()
	router.POST("/companies", NewCompanyController(db, nil, nil).CreateCompany)

	form := "name=Shop&email=shop%40example.com&phone=012345678&address=Street+1"
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/companies", strings.NewReader(form))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code, recorder.Body.String())

	var response struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Contains(t, response.Errors, "email")
	assert.NoError(t, mock.ExpectationsWereMet())
}
