package handlers

import (
	"net/http"

	"alerthub_backend/internal/services"
	"alerthub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	*BaseHandler
	teamService services.TeamService
}

func NewTeamHandler(base *BaseHandler, teamService services.TeamService) *TeamHandler {
	return &TeamHandler{
		BaseHandler: base,
		teamService: teamService,
	}
}

func (h *TeamHandler) RegisterRoutes(r *gin.RouterGroup) {
	teams := r.Group("/teams")
	{
		teams.GET("", h.ListTeams)
		teams.POST("", h.CreateTeam)
		teams.PUT("/:teamId", h.UpdateTeam)
		teams.DELETE("/:teamId", h.DeleteTeam)
	}
}

func (h *TeamHandler) ListTeams(c *gin.Context) {
	teams, err := h.teamService.ListTeams()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"teams": teams,
		"total": len(teams),
	})
}

func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req dto.CreateTeamRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	team, err := h.teamService.CreateTeam(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, team)
}

func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	teamID := c.Param("teamId")

	var req dto.UpdateTeamRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	team, err := h.teamService.UpdateTeam(teamID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, team)
}

// DeleteTeam удаляет команду; ее участники остаются без команды и
// продолжают получать организационные и персональные алерты.
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	teamID := c.Param("teamId")

	if err := h.teamService.DeleteTeam(teamID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Team deleted successfully"})
}
