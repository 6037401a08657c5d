package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hmngo/Coursea/internal/controller"
	"github.com/hmngo/Coursea/internal/dto"
	"github.com/hmngo/Coursea/internal/service"
	"github.com/rs/zerolog/log"
)

type EnrollmentController struct {
	enrollmentService  service.EnrollmentService
	certificateService service.CertificateService
	courseService      service.CourseService
}

func NewEnrollmentController(
	enrollmentService service.EnrollmentService,
	certificateService service.CertificateService,
	courseService service.CourseService,
) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService:  enrollmentService,
		certificateService: certificateService,
		courseService:      courseService,
	}
}

// GetAllCourses godoc
// @Summary List courses
// @Tags Courses & Enrollments
// @Produce json
// @Success 200 {array} dto.CourseResponse
// @Router /courses [get]
func (c *EnrollmentController) GetAllCourses(ctx *gin.Context) {
	courses, err := c.courseService.GetAllCourses()
	if err != nil {
		log.Error().Err(err).Msg("GetAllCourses: service error")
		controller.RespondError(ctx, err, "Failed to retrieve courses")
		return
	}
	ctx.JSON(http.StatusOK, courses)
}

// GetCourse godoc
// @Summary Get a course
// @Tags Courses & Enrollments
// @Produce json
// @Param course_id path int true "Course ID"
// @Success 200 {object} dto.CourseResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{course_id} [get]
func (c *EnrollmentController) GetCourse(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "course_id")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourse(courseID)
	if err != nil {
		log.Warn().Err(err).Uint("courseID", courseID).Msg("GetCourse: service error")
		controller.RespondError(ctx, err, "Failed to retrieve course")
		return
	}
	ctx.JSON(http.StatusOK, course)
}

// GetCourseTests godoc
// @Summary List a course's tests
// @Tags Courses & Enrollments
// @Produce json
// @Param course_id path int true "Course ID"
// @Success 200 {array} dto.TestSummaryDTO
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{course_id}/tests [get]
func (c *EnrollmentController) GetCourseTests(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "course_id")
	if !ok {
		return
	}

	tests, err := c.courseService.GetCourseTests(courseID)
	if err != nil {
		log.Warn().Err(err).Uint("courseID", courseID).Msg("GetCourseTests: service error")
		controller.RespondError(ctx, err, "Failed to retrieve course tests")
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// Enroll godoc
// @Summary Enroll a user into a course
// @Tags Courses & Enrollments
// @Accept json
// @Produce json
// @Param enrollment body dto.CreateEnrollmentRequest true "User and course"
// @Success 201 {object} dto.EnrollmentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled"
// @Router /enrollments [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	var req dto.CreateEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Enroll: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	enrollment, err := c.enrollmentService.Enroll(req)
	if err != nil {
		log.Error().Err(err).Uint("userID", req.UserID).Uint("courseID", req.CourseID).Msg("Enroll: service error")
		controller.RespondError(ctx, err, "Failed to create enrollment")
		return
	}
	ctx.JSON(http.StatusCreated, enrollment)
}

// GetUserEnrollments godoc
// @Summary List a user's enrollments
// @Tags Courses & Enrollments
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {array} dto.EnrollmentResponse
// @Router /users/{user_id}/enrollments [get]
func (c *EnrollmentController) GetUserEnrollments(ctx *gin.Context) {
	userID, ok := pathID(ctx, "user_id")
	if !ok {
		return
	}

	enrollments, err := c.enrollmentService.GetUserEnrollments(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("GetUserEnrollments: service error")
		controller.RespondError(ctx, err, "Failed to retrieve enrollments")
		return
	}
	ctx.JSON(http.StatusOK, enrollments)
}

// RequestCertificate godoc
// @Summary Request a certificate for a completed enrollment
// @Description Fails unless the course is completed and no request is already pending or approved.
// @Tags Certificates
// @Produce json
// @Param enrollment_id path int true "Enrollment ID"
// @Success 200 {object} dto.EnrollmentResponse
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 409 {object} dto.ErrorResponse "Already requested or approved"
// @Failure 422 {object} dto.ErrorResponse "Course not completed"
// @Router /enrollments/{enrollment_id}/certificate/request [post]
func (c *EnrollmentController) RequestCertificate(ctx *gin.Context) {
	enrollmentID, ok := pathID(ctx, "enrollment_id")
	if !ok {
		return
	}

	enrollment, err := c.certificateService.RequestCertificate(enrollmentID)
	if err != nil {
		log.Warn().Err(err).Uint("enrollmentID", enrollmentID).Msg("RequestCertificate: service error")
		controller.RespondError(ctx, err, "Failed to request certificate")
		return
	}
	ctx.JSON(http.StatusOK, enrollment)
}

// GetApprovedCertificates godoc
// @Summary List approved certificates
// @Tags Certificates
// @Produce json
// @Param user_id query int false "Filter by user"
// @Success 200 {array} dto.EnrollmentResponse
// @Router /certificates/approved [get]
func (c *EnrollmentController) GetApprovedCertificates(ctx *gin.Context) {
	var userID *uint
	if userIDStr := ctx.Query("user_id"); userIDStr != "" {
		val, err := strconv.ParseUint(userIDStr, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid user_id format in query"})
			return
		}
		uID := uint(val)
		userID = &uID
	}

	certificates, err := c.certificateService.GetApprovedCertificates(userID)
	if err != nil {
		log.Error().Err(err).Msg("GetApprovedCertificates: service error")
		controller.RespondError(ctx, err, "Failed to retrieve approved certificates")
		return
	}
	ctx.JSON(http.StatusOK, certificates)
}
