package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/user/cinehunt/internal/repository"
	"github.com/user/cinehunt/internal/utils"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register 注册
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请填写有效的姓名、邮箱和密码（至少 6 位）")
		return
	}

	user, token, err := h.Sessions.Register(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			utils.Error(c, 409, "该邮箱已被注册")
			return
		}
		utils.InternalServerError(c, "")
		return
	}

	h.setSessionCookie(c, token)
	utils.Success(c, gin.H{"user": user, "token": token})
}

// Login 登录
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请填写有效的邮箱和密码")
		return
	}

	user, token, err := h.Sessions.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			utils.Unauthorized(c, "邮箱或密码错误")
			return
		}
		utils.InternalServerError(c, "")
		return
	}

	h.setSessionCookie(c, token)
	utils.Success(c, gin.H{"user": user, "token": token})
}

// Logout 退出登录（幂等）
func (h *Handler) Logout(c *gin.Context) {
	h.Sessions.Logout()
	c.SetCookie("cine_token", "", -1, "/", "", false, true)
	utils.SuccessWithMessage(c, "已退出登录", nil)
}

// Me 当前会话
func (h *Handler) Me(c *gin.Context) {
	user := h.Sessions.CurrentSession()
	if user == nil {
		utils.Unauthorized(c, "")
		return
	}
	utils.Success(c, user)
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie("cine_token", token, int(h.Config.TokenExpiry.Seconds()), "/", "", false, true)
}
