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

type AttemptController struct {
	submissionService service.SubmissionService
	testService       service.TestService
}

func NewAttemptController(submissionService service.SubmissionService, testService service.TestService) *AttemptController {
	return &AttemptController{
		submissionService: submissionService,
		testService:       testService,
	}
}

// GetTestDetails godoc
// @Summary Get a test with its questions
// @Description Retrieve a test and its questions in order. Correct answers are not included.
// @Tags Tests & Attempts
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Test ID format"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{test_id} [get]
func (c *AttemptController) GetTestDetails(ctx *gin.Context) {
	testID, ok := pathID(ctx, "test_id")
	if !ok {
		return
	}

	test, err := c.testService.GetTestDetails(testID)
	if err != nil {
		log.Warn().Err(err).Uint("testID", testID).Msg("GetTestDetails: service error")
		controller.RespondError(ctx, err, "Failed to retrieve test")
		return
	}
	ctx.JSON(http.StatusOK, test)
}

// SubmitTestAttempt godoc
// @Summary Submit answers for a test
// @Description Records an immutable attempt with the computed score. When the test is the course's final assessment the enrollment's progress, completion and certificate eligibility are updated as a side effect.
// @Tags Tests & Attempts
// @Accept json
// @Produce json
// @Param test_id path int true "Test ID"
// @Param submission body dto.TestAttemptSubmitDTO true "Answers and per-question correctness"
// @Success 201 {object} dto.SubmitResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Test or enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Error recording submission"
// @Router /tests/{test_id}/attempts [post]
func (c *AttemptController) SubmitTestAttempt(ctx *gin.Context) {
	testID, ok := pathID(ctx, "test_id")
	if !ok {
		return
	}

	var req dto.TestAttemptSubmitDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitTestAttempt: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.submissionService.SubmitTest(testID, req)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Uint("userID", req.UserID).Msg("SubmitTestAttempt: service error")
		controller.RespondError(ctx, err, "Failed to record test attempt")
		return
	}
	ctx.JSON(http.StatusCreated, result)
}

// GetTestAttempt godoc
// @Summary Get a test attempt
// @Tags Tests & Attempts
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.TestAttemptDTO
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /test-attempts/{attempt_id} [get]
func (c *AttemptController) GetTestAttempt(ctx *gin.Context) {
	attemptID, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}

	attempt, err := c.submissionService.GetTestAttempt(attemptID)
	if err != nil {
		log.Warn().Err(err).Uint("attemptID", attemptID).Msg("GetTestAttempt: service error")
		controller.RespondError(ctx, err, "Failed to retrieve test attempt")
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// GetUserTestAttempts godoc
// @Summary List a user's test attempts
// @Description Attempts are returned newest first, optionally filtered by course.
// @Tags Tests & Attempts
// @Produce json
// @Param user_id path int true "User ID"
// @Param course_id query int false "Filter by course"
// @Success 200 {array} dto.TestAttemptDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Router /users/{user_id}/test-attempts [get]
func (c *AttemptController) GetUserTestAttempts(ctx *gin.Context) {
	userID, ok := pathID(ctx, "user_id")
	if !ok {
		return
	}

	var courseID *uint
	if courseIDStr := ctx.Query("course_id"); courseIDStr != "" {
		val, err := strconv.ParseUint(courseIDStr, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid course_id format in query"})
			return
		}
		cID := uint(val)
		courseID = &cID
	}

	attempts, err := c.submissionService.GetUserTestAttempts(userID, courseID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("GetUserTestAttempts: service error")
		controller.RespondError(ctx, err, "Failed to retrieve test attempts")
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

// GetRetakeStatus godoc
// @Summary Check retake allowance for a test
// @Description Reports attempts used against the test's cap. Advisory only; it does not block resubmission.
// @Tags Tests & Attempts
// @Produce json
// @Param test_id path int true "Test ID"
// @Param user_id query int true "User ID"
// @Success 200 {object} dto.RetakeStatusDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{test_id}/retake [get]
func (c *AttemptController) GetRetakeStatus(ctx *gin.Context) {
	testID, ok := pathID(ctx, "test_id")
	if !ok {
		return
	}

	userIDStr := ctx.Query("user_id")
	userID, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid or missing user_id query parameter"})
		return
	}

	status, err := c.submissionService.RetakeStatus(testID, uint(userID))
	if err != nil {
		log.Warn().Err(err).Uint("testID", testID).Msg("GetRetakeStatus: service error")
		controller.RespondError(ctx, err, "Failed to retrieve retake status")
		return
	}
	ctx.JSON(http.StatusOK, status)
}

// pathID parses an unsigned id path parameter, responding 400 on failure.
func pathID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}
