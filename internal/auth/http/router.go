package http

import "github.com/gin-gonic/gin"

// Register mounts /login and /logout. guest keeps signed-in users away from
// the login form; limit throttles login attempts.
func (h *Handler) Register(r gin.IRouter, guest, limit gin.HandlerFunc) {
	r.GET("/login", guest, h.LoginForm)
	r.POST("/login", guest, limit, h.Login)
	r.POST("/logout", h.Logout)
}
