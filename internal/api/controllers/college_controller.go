package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"edupath/internal/models/request_models"
	"edupath/internal/services"
	"edupath/pkg/utils"
)

type CollegeController struct {
	collegeService services.CollegeServiceInterface
}

func NewCollegeController(collegeService services.CollegeServiceInterface) *CollegeController {
	return &CollegeController{
		collegeService: collegeService,
	}
}

// ListColleges godoc
// @Summary List colleges
// @Description Filter with field[gt|gte|lt|lte|in]=value, q, location, stream, course and minRating; shape with select, sort, page and limit
// @Tags Colleges
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/colleges [get]
func (cc *CollegeController) ListColleges(c *gin.Context) {
	page, err := cc.collegeService.ListColleges(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondList(c, page.Colleges, len(page.Colleges), &page.Total, &page.Pagination, "")
}

func (cc *CollegeController) GetCollege(c *gin.Context) {
	college, err := cc.collegeService.GetCollege(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, college, "")
}

func (cc *CollegeController) CreateCollege(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		utils.HandleServiceError(c, utils.ErrUnauthorized)
		return
	}

	var req request_models.CollegeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleServiceError(c, services.ValidationError(err))
		return
	}

	college, err := cc.collegeService.CreateCollege(c.Request.Context(), actor, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, college, "")
}

// UpdateCollege merges the body into the stored college; absent fields
// are left unchanged.
func (cc *CollegeController) UpdateCollege(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		utils.HandleServiceError(c, utils.ErrUnauthorized)
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	college, err := cc.collegeService.UpdateCollege(c.Request.Context(), actor, c.Param("id"), body)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, college, "")
}

func (cc *CollegeController) DeleteCollege(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		utils.HandleServiceError(c, utils.ErrUnauthorized)
		return
	}

	if err := cc.collegeService.DeleteCollege(c.Request.Context(), actor, c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{}, "College deleted")
}

// CollegesInRadius godoc
// @Summary Colleges within a distance
// @Tags Colleges
// @Produce json
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Param distance query number true "Distance in km"
// @Success 200 {object} utils.APIResponse
// @Router /api/colleges/radius [get]
func (cc *CollegeController) CollegesInRadius(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	distance, errDist := strconv.ParseFloat(c.Query("distance"), 64)
	if errLat != nil || errLng != nil || errDist != nil {
		utils.RespondError(c, http.StatusBadRequest, "Please provide numeric lat, lng and distance")
		return
	}

	colleges, err := cc.collegeService.CollegesInRadius(c.Request.Context(), lat, lng, distance)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondList(c, colleges, len(colleges), nil, nil, "")
}

func (cc *CollegeController) UploadPhoto(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		utils.HandleServiceError(c, utils.ErrUnauthorized)
		return
	}

	file, _ := c.FormFile("file")

	name, err := cc.collegeService.UploadPhoto(c.Request.Context(), actor, c.Param("id"), file)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, name, "")
}

func (cc *CollegeController) SemanticSearch(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	colleges, err := cc.collegeService.SemanticSearch(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondList(c, colleges, len(colleges), nil, nil, "")
}

func (cc *CollegeController) ListCourses(c *gin.Context) {
	courses, err := cc.collegeService.ListCourses(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondList(c, courses, len(courses), nil, nil, "")
}

func (cc *CollegeController) GetCourse(c *gin.Context) {
	course, err := cc.collegeService.GetCourse(c.Request.Context(), c.Param("id"), c.Param("courseId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, course, "")
}

func (cc *CollegeController) AddCourse(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		utils.HandleServiceError(c, utils.ErrUnauthorized)
		return
	}

	var req request_models.CourseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleServiceError(c, services.ValidationError(err))
		return
	}

	course, err := cc.collegeService.AddCourse(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, course, "")
}

func (cc *CollegeController) UpdateCourse(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		utils.HandleServiceError(c, utils.ErrUnauthorized)
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	course, err := cc.collegeService.UpdateCourse(c.Request.Context(), actor, c.Param("id"), c.Param("courseId"), body)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, course, "")
}

func (cc *CollegeController) DeleteCourse(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		utils.HandleServiceError(c, utils.ErrUnauthorized)
		return
	}

	if err := cc.collegeService.DeleteCourse(c.Request.Context(), actor, c.Param("id"), c.Param("courseId")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{}, "Course deleted")
}
