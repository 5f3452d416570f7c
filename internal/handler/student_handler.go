package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "studentrecords/internal/errors"
	"studentrecords/internal/model"
	"studentrecords/internal/service"
)

// StudentHandler handles student record endpoints.
type StudentHandler struct {
	studentService service.StudentService
}

// NewStudentHandler creates a new student handler.
func NewStudentHandler(studentService service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// StudentRequest represents a create or update payload.
type StudentRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Course        string `json:"course"`
	EnrolmentDate string `json:"enrolment_date"`
}

// CreatedStudentResponse echoes the submitted fields back with the
// store-assigned id; it is not a fresh read of the stored row.
type CreatedStudentResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Course        string `json:"course"`
	EnrolmentDate string `json:"enrolment_date"`
}

// ListResponse represents one page of students.
type ListResponse struct {
	Students   []model.Student     `json:"students"`
	Pagination *service.Pagination `json:"pagination"`
}

// MessageResponse represents a plain confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// List godoc
// @Summary List active students with search and pagination
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param search query string false "Case-insensitive name substring"
// @Param page query int false "Page number, defaults to 1"
// @Param limit query int false "Page size, defaults to 10"
// @Success 200 {object} ListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /students [get]
func (h *StudentHandler) List(c echo.Context) error {
	search := c.QueryParam("search")
	// Non-numeric values parse to zero and fall back to the defaults.
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	students, pagination, err := h.studentService.List(c.Request().Context(), search, page, limit)
	if err != nil {
		return err
	}

	if students == nil {
		students = []model.Student{}
	}
	return c.JSON(http.StatusOK, ListResponse{
		Students:   students,
		Pagination: pagination,
	})
}

// Get godoc
// @Summary Get an active student by id
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} model.Student
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c echo.Context) error {
	id, err := parseStudentID(c.Param("id"))
	if err != nil {
		return err
	}

	student, err := h.studentService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, student)
}

// Create godoc
// @Summary Create a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body StudentRequest true "Student payload"
// @Success 201 {object} CreatedStudentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /students [post]
func (h *StudentHandler) Create(c echo.Context) error {
	var req StudentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	student, err := h.studentService.Create(c.Request().Context(), service.StudentInput{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Course:        req.Course,
		EnrolmentDate: req.EnrolmentDate,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, CreatedStudentResponse{
		ID:            student.ID,
		Name:          student.Name,
		Email:         student.Email,
		Phone:         student.Phone,
		Course:        student.Course,
		EnrolmentDate: student.EnrolmentDate,
	})
}

// Update godoc
// @Summary Update a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body StudentRequest true "Student payload"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c echo.Context) error {
	id, err := parseStudentID(c.Param("id"))
	if err != nil {
		return err
	}

	var req StudentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	err = h.studentService.Update(c.Request().Context(), id, service.StudentInput{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Course:        req.Course,
		EnrolmentDate: req.EnrolmentDate,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Student updated successfully"})
}

// Delete godoc
// @Summary Soft-delete a student
// @Tags students
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 204 "No Content"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c echo.Context) error {
	id, err := parseStudentID(c.Param("id"))
	if err != nil {
		return err
	}

	if err := h.studentService.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// parseStudentID rejects non-integer and non-positive ids before any store
// access happens.
func parseStudentID(raw string) (uint, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrInvalidStudentID
	}
	return uint(id), nil
}
