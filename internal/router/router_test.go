package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"studentrecords/internal/auth"
	"studentrecords/internal/config"
	apperrors "studentrecords/internal/errors"
	"studentrecords/internal/handler"
	"studentrecords/internal/model"
	"studentrecords/internal/service"
)

const testSecret = "test-secret"

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

// MockStudentService is a mock implementation of service.StudentService.
type MockStudentService struct {
	mock.Mock
}

func (m *MockStudentService) List(ctx context.Context, search string, page, limit int) ([]model.Student, *service.Pagination, error) {
	args := m.Called(ctx, search, page, limit)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]model.Student), args.Get(1).(*service.Pagination), args.Error(2)
}

func (m *MockStudentService) Get(ctx context.Context, id uint) (*model.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Student), args.Error(1)
}

func (m *MockStudentService) Create(ctx context.Context, input service.StudentInput) (*model.Student, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Student), args.Error(1)
}

func (m *MockStudentService) Update(ctx context.Context, id uint, input service.StudentInput) error {
	args := m.Called(ctx, id, input)
	return args.Error(0)
}

func (m *MockStudentService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestServer(authSvc service.AuthService, studentSvc service.StudentService) *echo.Echo {
	e := echo.New()
	cfg := &config.Config{Env: "test", JWTSecret: testSecret}
	tokens := auth.NewTokenService(cfg.JWTSecret)
	Register(e, cfg, tokens, handler.NewAuthHandler(authSvc), handler.NewStudentHandler(studentSvc))
	return e
}

func doJSON(e *echo.Echo, method, target, body, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func validToken(t *testing.T) string {
	t.Helper()
	token, err := auth.NewTokenService(testSecret).Generate(1, "testuser")
	require.NoError(t, err)
	return "Bearer " + token
}

func TestLogin(t *testing.T) {
	t.Run("missing fields", func(t *testing.T) {
		authSvc := new(MockAuthService)
		e := newTestServer(authSvc, new(MockStudentService))

		for _, body := range []string{`{}`, `{"username":"testuser"}`, `{"password":"secret"}`} {
			rec := doJSON(e, http.MethodPost, "/api/auth/login", body, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Username and password are required", decodeBody(t, rec)["message"])
		}
		authSvc.AssertNotCalled(t, "Login")
	})

	t.Run("invalid credentials", func(t *testing.T) {
		authSvc := new(MockAuthService)
		authSvc.On("Login", mock.Anything, "testuser", "wrong").Return("", apperrors.ErrInvalidCredentials)
		e := newTestServer(authSvc, new(MockStudentService))

		rec := doJSON(e, http.MethodPost, "/api/auth/login", `{"username":"testuser","password":"wrong"}`, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid credentials", decodeBody(t, rec)["message"])
	})

	t.Run("successful login returns token", func(t *testing.T) {
		authSvc := new(MockAuthService)
		authSvc.On("Login", mock.Anything, "testuser", "password123").Return("signed-token", nil)
		e := newTestServer(authSvc, new(MockStudentService))

		rec := doJSON(e, http.MethodPost, "/api/auth/login", `{"username":"testuser","password":"password123"}`, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "signed-token", decodeBody(t, rec)["token"])
	})

	t.Run("store failure is a generic 500 with stack outside production", func(t *testing.T) {
		authSvc := new(MockAuthService)
		authSvc.On("Login", mock.Anything, "testuser", "password123").Return("", errors.New("pq: connection refused"))
		e := newTestServer(authSvc, new(MockStudentService))

		rec := doJSON(e, http.MethodPost, "/api/auth/login", `{"username":"testuser","password":"password123"}`, "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Something went wrong!", body["message"])
		assert.NotEmpty(t, body["stack"])
	})
}

func TestAccessGuard(t *testing.T) {
	expiredToken := func() string {
		claims := &auth.Claims{
			ID:       1,
			Username: "testuser",
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		return "Bearer " + signed
	}

	wrongSecretToken := func() string {
		token, err := auth.NewTokenService("other-secret").Generate(1, "testuser")
		require.NoError(t, err)
		return "Bearer " + token
	}

	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "absent header",
			header:      "",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Access denied. No token provided.",
		},
		{
			name:        "non-bearer scheme",
			header:      "InvalidFormat token123",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Access denied. No token provided.",
		},
		{
			name:        "bearer with garbage token",
			header:      "Bearer invalidtoken",
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid or expired token.",
		},
		{
			name:        "bearer with expired token",
			header:      expiredToken(),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid or expired token.",
		},
		{
			name:        "bearer signed with different secret",
			header:      wrongSecretToken(),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid or expired token.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			studentSvc := new(MockStudentService)
			e := newTestServer(new(MockAuthService), studentSvc)

			rec := doJSON(e, http.MethodGet, "/api/students", "", tt.header)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMessage, decodeBody(t, rec)["message"])
			studentSvc.AssertNotCalled(t, "List")
		})
	}

	t.Run("valid token attaches identity", func(t *testing.T) {
		e := newTestServer(new(MockAuthService), new(MockStudentService))

		rec := doJSON(e, http.MethodGet, "/api/auth/me", "", validToken(t))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, float64(1), body["id"])
		assert.Equal(t, "testuser", body["username"])
		assert.NotEmpty(t, body["exp"])
		assert.NotEmpty(t, body["iat"])
	})
}

func TestListStudents(t *testing.T) {
	studentSvc := new(MockStudentService)
	students := []model.Student{
		{ID: 2, Name: "Jane Smith", Email: "jane@example.com", IsActive: true},
		{ID: 1, Name: "John Doe", Email: "john@example.com", IsActive: true},
	}
	pagination := &service.Pagination{Total: 2, Page: 1, Limit: 10, TotalPages: 1}
	studentSvc.On("List", mock.Anything, "j", 1, 10).Return(students, pagination, nil)

	e := newTestServer(new(MockAuthService), studentSvc)
	rec := doJSON(e, http.MethodGet, "/api/students?search=j&page=1&limit=10", "", validToken(t))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Len(t, body["students"], 2)
	assert.Equal(t, map[string]interface{}{
		"total": float64(2), "page": float64(1), "limit": float64(10), "totalPages": float64(1),
	}, body["pagination"])
	studentSvc.AssertExpectations(t)
}

func TestListStudents_NonNumericParamsFallToDefaults(t *testing.T) {
	studentSvc := new(MockStudentService)
	studentSvc.On("List", mock.Anything, "", 0, 0).
		Return([]model.Student{}, &service.Pagination{Total: 0, Page: 1, Limit: 10, TotalPages: 0}, nil)

	e := newTestServer(new(MockAuthService), studentSvc)
	rec := doJSON(e, http.MethodGet, "/api/students?page=abc&limit=xyz", "", validToken(t))

	assert.Equal(t, http.StatusOK, rec.Code)
	// An empty page still serializes as a JSON array, not null.
	assert.Contains(t, rec.Body.String(), `"students":[]`)
	studentSvc.AssertExpectations(t)
}

func TestGetStudent(t *testing.T) {
	t.Run("invalid ids rejected before the service runs", func(t *testing.T) {
		studentSvc := new(MockStudentService)
		e := newTestServer(new(MockAuthService), studentSvc)

		for _, id := range []string{"abc", "0", "-1", "1.5"} {
			rec := doJSON(e, http.MethodGet, "/api/students/"+id, "", validToken(t))
			assert.Equal(t, http.StatusBadRequest, rec.Code, "id %q", id)
			assert.Equal(t, "Invalid student id", decodeBody(t, rec)["message"])
		}
		studentSvc.AssertNotCalled(t, "Get")
	})

	t.Run("not found", func(t *testing.T) {
		studentSvc := new(MockStudentService)
		studentSvc.On("Get", mock.Anything, uint(99)).Return(nil, apperrors.ErrStudentNotFound)
		e := newTestServer(new(MockAuthService), studentSvc)

		rec := doJSON(e, http.MethodGet, "/api/students/99", "", validToken(t))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Student not found", decodeBody(t, rec)["message"])
	})

	t.Run("found", func(t *testing.T) {
		studentSvc := new(MockStudentService)
		studentSvc.On("Get", mock.Anything, uint(1)).Return(&model.Student{
			ID: 1, Name: "John Doe", Email: "john@example.com", IsActive: true,
		}, nil)
		e := newTestServer(new(MockAuthService), studentSvc)

		rec := doJSON(e, http.MethodGet, "/api/students/1", "", validToken(t))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "John Doe", body["name"])
		assert.Equal(t, true, body["is_active"])
	})
}

func TestCreateStudent(t *testing.T) {
	t.Run("valid payload returns 201 with assigned id", func(t *testing.T) {
		studentSvc := new(MockStudentService)
		input := service.StudentInput{
			Name: "John Doe", Email: "john@example.com", Phone: "1234567890",
			Course: "CS", EnrolmentDate: "2024-01-01",
		}
		studentSvc.On("Create", mock.Anything, input).Return(&model.Student{
			ID: 7, Name: input.Name, Email: input.Email, Phone: input.Phone,
			Course: input.Course, EnrolmentDate: input.EnrolmentDate, IsActive: true,
		}, nil)
		e := newTestServer(new(MockAuthService), studentSvc)

		rec := doJSON(e, http.MethodPost, "/api/students",
			`{"name":"John Doe","email":"john@example.com","phone":"1234567890","course":"CS","enrolment_date":"2024-01-01"}`,
			validToken(t))

		assert.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, float64(7), body["id"])
		assert.Equal(t, "John Doe", body["name"])
		assert.Equal(t, "2024-01-01", body["enrolment_date"])
		studentSvc.AssertExpectations(t)
	})

	t.Run("blank name rejected with field-named message", func(t *testing.T) {
		studentSvc := new(MockStudentService)
		studentSvc.On("Create", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNameRequired)
		e := newTestServer(new(MockAuthService), studentSvc)

		rec := doJSON(e, http.MethodPost, "/api/students", `{"name":"  ","email":"john@example.com"}`, validToken(t))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Name is required", decodeBody(t, rec)["message"])
	})
}

func TestUpdateStudent(t *testing.T) {
	t.Run("successful update", func(t *testing.T) {
		studentSvc := new(MockStudentService)
		studentSvc.On("Update", mock.Anything, uint(1), mock.Anything).Return(nil)
		e := newTestServer(new(MockAuthService), studentSvc)

		rec := doJSON(e, http.MethodPut, "/api/students/1",
			`{"name":"John Doe","email":"john@example.com"}`, validToken(t))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Student updated successfully", decodeBody(t, rec)["message"])
	})

	t.Run("unknown id", func(t *testing.T) {
		studentSvc := new(MockStudentService)
		studentSvc.On("Update", mock.Anything, uint(99), mock.Anything).Return(apperrors.ErrStudentNotFound)
		e := newTestServer(new(MockAuthService), studentSvc)

		rec := doJSON(e, http.MethodPut, "/api/students/99",
			`{"name":"John Doe","email":"john@example.com"}`, validToken(t))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid id rejected before the service runs", func(t *testing.T) {
		studentSvc := new(MockStudentService)
		e := newTestServer(new(MockAuthService), studentSvc)

		rec := doJSON(e, http.MethodPut, "/api/students/abc",
			`{"name":"John Doe","email":"john@example.com"}`, validToken(t))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		studentSvc.AssertNotCalled(t, "Update")
	})
}

func TestDeleteStudent(t *testing.T) {
	t.Run("successful delete returns empty 204", func(t *testing.T) {
		studentSvc := new(MockStudentService)
		studentSvc.On("Delete", mock.Anything, uint(1)).Return(nil)
		e := newTestServer(new(MockAuthService), studentSvc)

		rec := doJSON(e, http.MethodDelete, "/api/students/1", "", validToken(t))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("unknown id", func(t *testing.T) {
		studentSvc := new(MockStudentService)
		studentSvc.On("Delete", mock.Anything, uint(99)).Return(apperrors.ErrStudentNotFound)
		e := newTestServer(new(MockAuthService), studentSvc)

		rec := doJSON(e, http.MethodDelete, "/api/students/99", "", validToken(t))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
