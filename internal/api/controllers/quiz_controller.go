package controllers

import (
	"github.com/gin-gonic/gin"

	"edupath/internal/models/request_models"
	"edupath/internal/models/response_models"
	"edupath/internal/services"
	"edupath/pkg/utils"
)

type QuizController struct {
	quizService services.QuizServiceInterface
}

func NewQuizController(quizService services.QuizServiceInterface) *QuizController {
	return &QuizController{
		quizService: quizService,
	}
}

// SubmitQuiz godoc
// @Summary Score a completed quiz
// @Description Scores the answers, stores the result with its recommendations and appends it to the user's history
// @Tags Quiz
// @Accept json
// @Produce json
// @Param request body request_models.SubmitQuizRequest true "Quiz answers"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/quiz/submit [post]
func (q *QuizController) SubmitQuiz(c *gin.Context) {
	var req request_models.SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleServiceError(c, utils.ErrQuizAnswersRequired)
		return
	}

	result, err := q.quizService.SubmitQuiz(c.Request.Context(), c.GetString("user_id"), req.Answers)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, result, "")
}

func (q *QuizController) ListResults(c *gin.Context) {
	results, err := q.quizService.ListResults(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if results == nil {
		results = []response_models.QuizResultResponse{}
	}
	utils.RespondList(c, results, len(results), nil, nil, "")
}

func (q *QuizController) GetResult(c *gin.Context) {
	result, err := q.quizService.GetResult(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, result, "")
}

func (q *QuizController) History(c *gin.Context) {
	ids, err := q.quizService.History(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	utils.RespondSuccess(c, response_models.HistoryResponse{ResultIDs: ids}, "")
}
