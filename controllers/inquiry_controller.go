package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agvet-chatbot-backend/models"
	"agvet-chatbot-backend/services"
)

type InquiryController struct {
	whatsappService *services.WhatsAppService
}

func NewInquiryController(whatsappService *services.WhatsAppService) *InquiryController {
	return &InquiryController{
		whatsappService: whatsappService,
	}
}

// HandleInquiry formats a contact form submission into a WhatsApp deep link
func (ic *InquiryController) HandleInquiry(c *gin.Context) {
	var req models.InquiryRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	response, err := ic.whatsappService.BuildInquiryLink(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid inquiry",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}
