package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"learnify_backend/internals/features/courses/dto"
	"learnify_backend/internals/features/courses/model"
	helper "learnify_backend/internals/helpers"
)

type LessonAdminController struct {
	DB *gorm.DB
}

func NewLessonAdminController(db *gorm.DB) *LessonAdminController {
	return &LessonAdminController{DB: db}
}

// POST /api/a/courses/:id/lessons
func (ctrl *LessonAdminController) Create(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
	}

	var body dto.CreateLessonRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	var course model.Course
	if err := ctrl.DB.Where("course_id = ?", courseID).First(&course).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Course not found")
	}

	lesson := model.Lesson{
		LessonCourseID:    courseID,
		LessonTitle:       body.LessonTitle,
		LessonSlug:        helper.GenerateSlug(body.LessonTitle),
		LessonDescription: body.LessonDescription,
		LessonVideoURL:    body.LessonVideoURL,
		LessonDuration:    body.LessonDuration,
		LessonOrder:       body.LessonOrder,
		LessonIsFree:      body.LessonIsFree,
	}
	if err := ctrl.DB.Create(&lesson).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			return fiber.NewError(fiber.StatusConflict, "A lesson with this order already exists in the course")
		}
		log.Println("[ERROR] create lesson:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create lesson")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Lesson created", lesson)
}

// PUT /api/a/lessons/:id
func (ctrl *LessonAdminController) Update(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid lesson id")
	}

	var body dto.UpdateLessonRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	var lesson model.Lesson
	if err := ctrl.DB.Where("lesson_id = ?", lessonID).First(&lesson).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Lesson not found")
	}

	updates := map[string]interface{}{}
	setStr(updates, "lesson_title", body.LessonTitle)
	setStr(updates, "lesson_description", body.LessonDescription)
	setStr(updates, "lesson_video_url", body.LessonVideoURL)
	if body.LessonDuration != nil {
		updates["lesson_duration"] = *body.LessonDuration
	}
	if body.LessonOrder != nil {
		updates["lesson_order"] = *body.LessonOrder
	}
	setBool(updates, "lesson_is_free", body.LessonIsFree)

	if len(updates) > 0 {
		if err := ctrl.DB.Model(&lesson).Updates(updates).Error; err != nil {
			if helper.IsDuplicateKey(err) {
				return fiber.NewError(fiber.StatusConflict, "A lesson with this order already exists in the course")
			}
			log.Println("[ERROR] update lesson:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update lesson")
		}
	}

	return helper.Success(c, "Lesson updated", lesson)
}

// DELETE /api/a/lessons/:id
func (ctrl *LessonAdminController) Delete(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid lesson id")
	}

	res := ctrl.DB.Where("lesson_id = ?", lessonID).Delete(&model.Lesson{})
	if res.Error != nil {
		log.Println("[ERROR] delete lesson:", res.Error)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete lesson")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Lesson not found")
	}
	return helper.Success(c, "Lesson deleted", nil)
}
