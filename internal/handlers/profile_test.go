package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Ritwik411/DevConnector/internal/models"
	"github.com/gin-gonic/gin"
)

const profileLookupQuery = `SELECT id FROM profiles WHERE user_id = $1`

func profileRows(userID int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "name", "avatar", "status", "skills",
		"company", "website", "location", "bio", "githubusername",
		"youtube", "twitter", "facebook", "linkedin", "instagram",
		"updated_at",
	}).AddRow(
		7, userID, "Alice", "https://www.gravatar.com/avatar/x", "Developer", "{Go,SQL}",
		nil, nil, nil, nil, nil,
		nil, nil, nil, nil, nil,
		time.Now(),
	)
}

func expectProfileLoad(mock sqlmock.Sqlmock, userID int) {
	mock.
		ExpectQuery(`SELECT p\.id, p\.user_id`).
		WithArgs(userID).
		WillReturnRows(profileRows(userID))
	mock.
		ExpectQuery(`SELECT id, title, company`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "company", "location", "from_date", "to_date", "current", "description"}))
	mock.
		ExpectQuery(`SELECT id, school, degree`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "school", "degree", "fieldofstudy", "from_date", "to_date", "current", "description"}))
}

func TestUpsertProfileCreates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.
		ExpectQuery(regexp.QuoteMeta(profileLookupQuery)).
		WithArgs(101).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.
		ExpectExec(`INSERT INTO profiles`).
		WillReturnResult(sqlmock.NewResult(7, 1))
	expectProfileLoad(mock, 101)

	router := gin.New()
	router.POST("/api/profile", withTestUserID(101), UpsertProfile)

	payload, _ := json.Marshal(map[string]string{
		"status": "Developer",
		"skills": "Go, SQL",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/profile", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	expectHTTP200(t, resp.Code)

	var out models.Profile
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if out.Status != "Developer" {
		t.Fatalf("expected status Developer, got %q", out.Status)
	}
	if len(out.Skills) != 2 || out.Skills[0] != "Go" || out.Skills[1] != "SQL" {
		t.Fatalf("expected trimmed skills [Go SQL], got %v", out.Skills)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestUpsertProfileUpdatesExisting(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.
		ExpectQuery(regexp.QuoteMeta(profileLookupQuery)).
		WithArgs(101).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.
		ExpectExec(`UPDATE profiles`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectProfileLoad(mock, 101)

	router := gin.New()
	router.POST("/api/profile", withTestUserID(101), UpsertProfile)

	payload, _ := json.Marshal(map[string]string{
		"status":  "Developer",
		"skills":  "Go, SQL",
		"company": "Acme",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/profile", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	expectHTTP200(t, resp.Code)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestUpsertProfileValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, _, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.POST("/api/profile", withTestUserID(101), UpsertProfile)

	payload, _ := json.Marshal(map[string]string{"bio": "hello"})
	req := httptest.NewRequest(http.MethodPost, "/api/profile", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	mustStatus(t, resp.Code, http.StatusBadRequest)

	var out struct {
		Errors []fieldError `json:"errors"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if len(out.Errors) != 2 {
		t.Fatalf("expected status+skills errors, got %+v", out.Errors)
	}
}

func TestGetProfileByUserNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.
		ExpectQuery(`SELECT p\.id, p\.user_id`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	router := gin.New()
	router.GET("/api/profile/user/:user_id", GetProfileByUser)

	req := httptest.NewRequest(http.MethodGet, "/api/profile/user/42", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	mustStatus(t, resp.Code, http.StatusBadRequest)

	// A malformed id gets the same response as a missing profile.
	req = httptest.NewRequest(http.MethodGet, "/api/profile/user/not-a-number", nil)
	malformed := httptest.NewRecorder()
	router.ServeHTTP(malformed, req)
	mustStatus(t, malformed.Code, http.StatusBadRequest)
	if resp.Body.String() != malformed.Body.String() {
		t.Fatalf("responses differ: %q vs %q", resp.Body.String(), malformed.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestAddExperienceValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, _, cleanup := setupMockDB(t)
	defer cleanup()

	router := gin.New()
	router.PUT("/api/profile/experience", withTestUserID(101), AddExperience)

	payload, _ := json.Marshal(map[string]string{"location": "Remote"})
	req := httptest.NewRequest(http.MethodPut, "/api/profile/experience", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	mustStatus(t, resp.Code, http.StatusBadRequest)

	var out struct {
		Errors []fieldError `json:"errors"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if len(out.Errors) != 3 {
		t.Fatalf("expected title+company+from errors, got %+v", out.Errors)
	}
}

func TestAddExperiencePrepends(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.
		ExpectQuery(regexp.QuoteMeta(profileLookupQuery)).
		WithArgs(101).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.
		ExpectExec(`INSERT INTO profile_experience`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.
		ExpectQuery(`SELECT p\.id, p\.user_id`).
		WithArgs(101).
		WillReturnRows(profileRows(101))
	mock.
		ExpectQuery(`SELECT id, title, company`).
		WithArgs(7).
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "title", "company", "location", "from_date", "to_date", "current", "description"}).
				AddRow("9e3c8e9a-0000-0000-0000-000000000002", "Senior Engineer", "Acme", nil, "2023-01-01", nil, true, nil).
				AddRow("9e3c8e9a-0000-0000-0000-000000000001", "Engineer", "Initech", nil, "2020-01-01", "2022-12-31", false, nil),
		)
	mock.
		ExpectQuery(`SELECT id, school, degree`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "school", "degree", "fieldofstudy", "from_date", "to_date", "current", "description"}))

	router := gin.New()
	router.PUT("/api/profile/experience", withTestUserID(101), AddExperience)

	payload, _ := json.Marshal(map[string]any{
		"title":   "Senior Engineer",
		"company": "Acme",
		"from":    "2023-01-01",
		"current": true,
	})
	req := httptest.NewRequest(http.MethodPut, "/api/profile/experience", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	expectHTTP200(t, resp.Code)

	var out models.Profile
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if len(out.Experience) != 2 || out.Experience[0].Title != "Senior Engineer" {
		t.Fatalf("expected newest entry first, got %+v", out.Experience)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

// Removing an entry that does not exist is a no-op that still returns the
// profile.
func TestDeleteExperienceNoOpOnMiss(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.
		ExpectQuery(regexp.QuoteMeta(profileLookupQuery)).
		WithArgs(101).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	expectProfileLoad(mock, 101)

	router := gin.New()
	router.DELETE("/api/profile/experience/:exp_id", withTestUserID(101), DeleteExperience)

	req := httptest.NewRequest(http.MethodDelete, "/api/profile/experience/not-a-real-id", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	expectHTTP200(t, resp.Code)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestDeleteAccountCascades(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.
		ExpectExec(regexp.QuoteMeta(`DELETE FROM profiles WHERE user_id = $1`)).
		WithArgs(101).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.
		ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
		WithArgs(101).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.DELETE("/api/profile", withTestUserID(101), DeleteAccount)

	req := httptest.NewRequest(http.MethodDelete, "/api/profile", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	expectHTTP200(t, resp.Code)

	var out map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if out["msg"] != "User Deleted" {
		t.Fatalf("unexpected response: %v", out)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}
