package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "learnify_backend/internals/features/courses/model"
	"learnify_backend/internals/features/wishlist/model"
	helper "learnify_backend/internals/helpers"
)

type WishlistController struct {
	DB *gorm.DB
}

func NewWishlistController(db *gorm.DB) *WishlistController {
	return &WishlistController{DB: db}
}

// GET /api/u/wishlist
func (ctrl *WishlistController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var items []model.Wishlist
	err = ctrl.DB.Preload("Course").Preload("Course.Category").
		Where("wishlist_user_id = ?", userID).
		Order("wishlist_added_at DESC").
		Find(&items).Error
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch wishlist")
	}
	return helper.Success(c, "OK", fiber.Map{"wishlist": items})
}

// POST /api/u/wishlist/:courseId
func (ctrl *WishlistController) Add(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
	}

	var course courseModel.Course
	err = ctrl.DB.Where("course_id = ? AND course_is_published = ?", courseID, true).First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Course not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to add to wishlist")
	}

	item := model.Wishlist{
		WishlistUserID:   userID,
		WishlistCourseID: courseID,
	}
	if err := ctrl.DB.Create(&item).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			return fiber.NewError(fiber.StatusConflict, "Course already in wishlist")
		}
		log.Println("[ERROR] add to wishlist:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to add to wishlist")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Added to wishlist", item)
}

// DELETE /api/u/wishlist/:courseId
func (ctrl *WishlistController) Remove(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
	}

	res := ctrl.DB.Where("wishlist_user_id = ? AND wishlist_course_id = ?", userID, courseID).
		Delete(&model.Wishlist{})
	if res.Error != nil {
		log.Println("[ERROR] remove from wishlist:", res.Error)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to remove from wishlist")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Course not in wishlist")
	}
	return helper.Success(c, "Removed from wishlist", nil)
}
