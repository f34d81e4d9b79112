package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"learnify_backend/internals/features/courses/dto"
	"learnify_backend/internals/features/courses/model"
	helper "learnify_backend/internals/helpers"
)

/*
	========================================================
	  Public catalog controller

========================================================
*/
type CourseController struct {
	DB *gorm.DB
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{DB: db}
}

var courseSortColumns = map[string]string{
	"created_at": "created_at",
	"price":      "course_price",
	"rating":     "course_rating",
	"students":   "course_students_count",
	"title":      "course_title",
}

// GET /api/public/courses
func (ctrl *CourseController) List(c *fiber.Ctx) error {
	p := helper.ParsePage(c, "created_at", "desc")

	q := ctrl.DB.Model(&model.Course{}).Where("course_is_published = ?", true)

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(course_title) LIKE ? OR LOWER(course_description) LIKE ? OR LOWER(course_short_description) LIKE ?",
			like, like, like,
		)
	}
	if category := c.Query("category"); category != "" {
		q = q.Joins("JOIN categories ON categories.category_id = courses.course_category_id").
			Where("categories.category_slug = ?", category)
	}
	if level := c.Query("level"); level != "" {
		q = q.Where("course_level = ?", strings.ToUpper(level))
	}
	if isPaid := c.Query("is_paid"); isPaid != "" {
		q = q.Where("course_is_paid = ?", isPaid == "true")
	}
	if c.Query("is_popular") == "true" {
		q = q.Where("course_is_popular = ?", true)
	}
	if c.Query("is_new") == "true" {
		q = q.Where("course_is_new = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch courses")
	}

	var courses []model.Course
	err := q.Preload("Category").
		Order(p.SafeOrderClause(courseSortColumns, "created_at")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&courses).Error
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch courses")
	}

	cards := make([]dto.CourseCard, 0, len(courses))
	for _, course := range courses {
		cards = append(cards, dto.ToCourseCard(course))
	}

	return helper.Success(c, "OK", fiber.Map{
		"courses": cards,
		"meta":    helper.BuildPageMeta(total, p),
	})
}

// GET /api/public/courses/:idOrSlug
// Accepts either the course id or its slug.
func (ctrl *CourseController) Get(c *fiber.Ctx) error {
	idOrSlug := c.Params("idOrSlug")

	q := ctrl.DB.Preload("Category").
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lesson_order ASC")
		}).
		Where("course_is_published = ?", true)

	if id, err := uuid.Parse(idOrSlug); err == nil {
		q = q.Where("course_id = ?", id)
	} else {
		q = q.Where("course_slug = ?", idOrSlug)
	}

	var course model.Course
	if err := q.First(&course).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Course not found")
	}

	return helper.Success(c, "OK", course)
}

// GET /api/public/categories
func (ctrl *CourseController) ListCategories(c *fiber.Ctx) error {
	var categories []model.Category
	if err := ctrl.DB.Order("category_name ASC").Find(&categories).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch categories")
	}
	return helper.Success(c, "OK", categories)
}
