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

type CertificateController struct {
	certificateService service.CertificateService
}

func NewCertificateController(certificateService service.CertificateService) *CertificateController {
	return &CertificateController{certificateService: certificateService}
}

// GetCertificateRequests godoc
// @Summary (Admin) List pending certificate requests
// @Tags Admin - Certificates
// @Produce json
// @Success 200 {array} dto.EnrollmentResponse
// @Router /admin/certificates/requests [get]
func (c *CertificateController) GetCertificateRequests(ctx *gin.Context) {
	requests, err := c.certificateService.GetCertificateRequests()
	if err != nil {
		log.Error().Err(err).Msg("Admin GetCertificateRequests: service error")
		controller.RespondError(ctx, err, "Failed to retrieve certificate requests")
		return
	}
	ctx.JSON(http.StatusOK, requests)
}

// ApproveCertificate godoc
// @Summary (Admin) Approve a requested certificate
// @Description Terminal transition. Mints the certificate serial and stamps the approval time.
// @Tags Admin - Certificates
// @Produce json
// @Param enrollment_id path int true "Enrollment ID"
// @Success 200 {object} dto.EnrollmentResponse
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 422 {object} dto.ErrorResponse "Certificate not in requested state"
// @Router /admin/certificates/{enrollment_id}/approve [post]
func (c *CertificateController) ApproveCertificate(ctx *gin.Context) {
	enrollmentID, err := strconv.ParseUint(ctx.Param("enrollment_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid enrollment_id format"})
		return
	}

	enrollment, svcErr := c.certificateService.ApproveCertificate(uint(enrollmentID))
	if svcErr != nil {
		log.Warn().Err(svcErr).Uint64("enrollmentID", enrollmentID).Msg("Admin ApproveCertificate: service error")
		controller.RespondError(ctx, svcErr, "Failed to approve certificate")
		return
	}
	ctx.JSON(http.StatusOK, enrollment)
}

// RejectCertificate godoc
// @Summary (Admin) Reject a requested certificate
// @Description Returns the enrollment to not_eligible and records the reason. The student may request again.
// @Tags Admin - Certificates
// @Accept json
// @Produce json
// @Param enrollment_id path int true "Enrollment ID"
// @Param rejection body dto.RejectCertificateRequest false "Optional rejection reason"
// @Success 200 {object} dto.EnrollmentResponse
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 422 {object} dto.ErrorResponse "Certificate not in requested state"
// @Router /admin/certificates/{enrollment_id}/reject [post]
func (c *CertificateController) RejectCertificate(ctx *gin.Context) {
	enrollmentID, err := strconv.ParseUint(ctx.Param("enrollment_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid enrollment_id format"})
		return
	}

	var req dto.RejectCertificateRequest
	if ctx.Request.Body != nil && ctx.Request.ContentLength > 0 {
		if bindErr := ctx.ShouldBindJSON(&req); bindErr != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{bindErr.Error()}})
			return
		}
	}

	enrollment, svcErr := c.certificateService.RejectCertificate(uint(enrollmentID), req.Reason)
	if svcErr != nil {
		log.Warn().Err(svcErr).Uint64("enrollmentID", enrollmentID).Msg("Admin RejectCertificate: service error")
		controller.RespondError(ctx, svcErr, "Failed to reject certificate")
		return
	}
	ctx.JSON(http.StatusOK, enrollment)
}
