// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/JamalC77/penned-works/internal/interfaces/http/middleware"
)

// RegisterRoutes 注册 API 路由
//
// /auth 组不要求会话，/auth/check 尽力解析会话但从不 401；
// 其余路由全部经过会话中间件。
func RegisterRoutes(api *gin.RouterGroup, sessionCfg middleware.SessionConfig, h Handlers) {
	// 认证
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/check", middleware.ResolveSession(sessionCfg), h.Auth.Check)
	}

	// 需要会话的业务路由
	authed := api.Group("")
	authed.Use(middleware.Session(sessionCfg))

	// 项目管理
	projects := authed.Group("/projects")
	{
		projects.GET("", h.Project.ListProjects)
		projects.POST("", h.Project.CreateProject)
		projects.GET("/:projectId", h.Project.GetProject)
		projects.PATCH("/:projectId", h.Project.UpdateProject)
		projects.DELETE("/:projectId", h.Project.DeleteProject)
	}

	// 章节管理
	chapters := authed.Group("/chapters")
	{
		chapters.POST("", h.Chapter.CreateChapter)
		chapters.GET("/:chapterId", h.Chapter.GetChapter)
		chapters.PATCH("/:chapterId", h.Chapter.UpdateChapter)
		chapters.DELETE("/:chapterId", h.Chapter.DeleteChapter)
		chapters.GET("/:chapterId/versions", h.Chapter.ListVersions)
	}

	// 写作辅助
	ai := authed.Group("/ai")
	{
		ai.POST("/feedback", h.AI.Feedback)
		ai.POST("/generate", h.AI.Generate)
		ai.POST("/storyweaver", h.AI.StoryWeaver)
		ai.POST("/assist", h.AI.Assist)
	}

	// 故事圣经
	storybible := authed.Group("/storybible")
	{
		storybible.POST("/characters", h.StoryBible.CreateCharacter)
		storybible.GET("/characters/:characterId", h.StoryBible.GetCharacter)
		storybible.PATCH("/characters/:characterId", h.StoryBible.UpdateCharacter)
		storybible.DELETE("/characters/:characterId", h.StoryBible.DeleteCharacter)
		storybible.GET("/:projectId", h.StoryBible.GetBible)
		storybible.POST("/:projectId/extract", h.StoryBible.Extract)
		storybible.POST("/:projectId/consistency", h.StoryBible.CheckConsistency)
	}
}
