package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edupath/internal/models/request_models"
	"edupath/internal/models/response_models"
	"edupath/internal/services"
	"edupath/pkg/utils"
)

type ChatController struct {
	chatService services.ChatServiceInterface
}

func NewChatController(chatService services.ChatServiceInterface) *ChatController {
	return &ChatController{
		chatService: chatService,
	}
}

// Ask godoc
// @Summary Ask the career assistant
// @Description Answers in the requested language; falls back to a fixed answer when the model is unavailable
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body request_models.ChatRequest true "Question and optional language code"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/ask [post]
func (ch *ChatController) Ask(c *gin.Context) {
	var req request_models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	answer, err := ch.chatService.Ask(c.Request.Context(), req.Message, req.Language)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.ChatResponse{Answer: answer}, "")
}
