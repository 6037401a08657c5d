package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hmngo/Coursea/internal/controller"
	"github.com/hmngo/Coursea/internal/dto"
	"github.com/hmngo/Coursea/internal/service"
	"github.com/rs/zerolog/log"
)

type CourseController struct {
	courseService service.CourseService
	testService   service.TestService
}

func NewCourseController(courseService service.CourseService, testService service.TestService) *CourseController {
	return &CourseController{
		courseService: courseService,
		testService:   testService,
	}
}

// CreateCourse godoc
// @Summary (Admin) Create a course
// @Tags Admin - Courses
// @Accept json
// @Produce json
// @Param course body dto.CreateCourseRequest true "Course data"
// @Success 201 {object} dto.CourseResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Router /admin/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateCourse: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	course, err := c.courseService.CreateCourse(req)
	if err != nil {
		log.Error().Err(err).Str("slug", req.Slug).Msg("Admin CreateCourse: service error")
		controller.RespondError(ctx, err, "Failed to create course")
		return
	}
	ctx.JSON(http.StatusCreated, course)
}

// CreateTest godoc
// @Summary (Admin) Create a test under a course
// @Description Creates a test together with its questions. Question order must be unique and every correct option must reference one of the provided choices.
// @Tags Admin - Courses
// @Accept json
// @Produce json
// @Param course_id path int true "Course ID"
// @Param test body dto.CreateTestRequest true "Test data including questions"
// @Success 201 {object} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /admin/courses/{course_id}/tests [post]
func (c *CourseController) CreateTest(ctx *gin.Context) {
	courseID, err := strconv.ParseUint(ctx.Param("course_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid course_id format"})
		return
	}

	var req dto.CreateTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateTest: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	test, err := c.testService.CreateTest(uint(courseID), req)
	if err != nil {
		log.Error().Err(err).Uint64("courseID", courseID).Msg("Admin CreateTest: service error")
		controller.RespondError(ctx, err, "Failed to create test")
		return
	}
	ctx.JSON(http.StatusCreated, test)
}
