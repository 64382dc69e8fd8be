package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	intconfig "hotelbackend/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/health", Health)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestDBCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	prev := intconfig.DB
	intconfig.DB = db
	defer func() { intconfig.DB = prev }()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM hotels").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	r := gin.New()
	r.GET("/api/db-check", DBCheck)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/db-check", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"hotels_in_db":3`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBCheckNotConnected(t *testing.T) {
	gin.SetMode(gin.TestMode)

	prev := intconfig.DB
	intconfig.DB = nil
	defer func() { intconfig.DB = prev }()

	r := gin.New()
	r.GET("/api/db-check", DBCheck)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/db-check", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
