package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// A failed aggregate must surface as a 500, never be reported as zero.
func TestGetOverviewSurfacesAggregateErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("0"))
	mock.ExpectQuery("SELECT count").
		WillReturnError(errors.New("lock wait timeout"))

	router := gin.New()
	router.GET("/dashboard/overview", NewDashboardController(db).GetOverview)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/dashboard/overview", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code, recorder.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
