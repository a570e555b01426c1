package handler

import (
	"net/http"

	"github.com/devfolio/internal/db"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// Login 处理管理员登录请求
func (a *API) Login(c *gin.Context) {
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !bindJSON(c, &payload, "请求体格式错误") {
		return
	}

	// 查找用户
	var user db.User
	if err := a.db.Where("username = ?", payload.Username).First(&user).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "用户名或密码错误")
		return
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "用户名或密码错误")
		return
	}

	// 设置会话
	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("username", user.Username)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "登录成功", "username": user.Username})
}

// Logout 处理管理员登出
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.JSON(http.StatusOK, gin.H{"message": "已退出登录"})
}

// Dashboard 返回后台面板的互动统计数据
func (a *API) Dashboard(c *gin.Context) {
	overview, err := a.engagement.Overview(5)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取统计数据失败")
		return
	}

	session := sessions.Default(c)
	username := session.Get("username")

	topPosts := make([]gin.H, 0, len(overview.TopPosts))
	for _, stat := range overview.TopPosts {
		topPosts = append(topPosts, gin.H{
			"postId": stat.PostID,
			"title":  stat.Title,
			"slug":   stat.Slug,
			"views":  stat.ViewCount,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"username":        username,
		"totalViews":      overview.TotalViews,
		"totalReactions":  overview.TotalReactions,
		"postCount":       overview.PostCount,
		"pendingComments": overview.PendingComments,
		"topPosts":        topPosts,
	})
}

// AuthRequired 是一个简单的认证中间件
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")
		if userID == nil {
			respondError(c, http.StatusUnauthorized, "请先登录")
			c.Abort()
			return
		}
		c.Next()
	}
}
