package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/aiblog/middleware"
	"github.com/cppla/aiblog/models"
	"github.com/cppla/aiblog/utils"
)

// StatsController provides blog statistics such as post count and page views.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns aggregate statistics for the blog.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var postCount int64
	var todayViews int64
	var totalViews int64

	db := s.db.WithContext(ctx.Request.Context())
	if err := db.Model(&models.BlogPost{}).Count(&postCount).Error; err != nil {
		// Fallback to 0 instead of failing the whole endpoint
		postCount = 0
	}

	if err := db.Model(&models.PageView{}).
		Where("date = ?", middleware.PageViewDay(time.Now())).
		Select("COALESCE(SUM(count),0)").
		Scan(&todayViews).Error; err != nil {
		todayViews = 0
	}

	if err := db.Model(&models.PageView{}).
		Select("COALESCE(SUM(count),0)").
		Scan(&totalViews).Error; err != nil {
		totalViews = 0
	}

	utils.Success(ctx, gin.H{
		"post_count":  postCount,
		"today_views": todayViews,
		"total_views": totalViews,
	})
}
