package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"learnify_backend/internals/features/comments/dto"
	"learnify_backend/internals/features/comments/service"
	helper "learnify_backend/internals/helpers"
)

var validate = validator.New()

type CommentController struct {
	Comments *service.CommentService
}

func NewCommentController(comments *service.CommentService) *CommentController {
	return &CommentController{Comments: comments}
}

// GET /api/public/lessons/:id/comments
func (ctrl *CommentController) List(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid lesson id")
	}

	comments, err := ctrl.Comments.ListByLesson(lessonID)
	if err != nil {
		log.Println("[ERROR] list comments:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch comments")
	}
	return helper.Success(c, "OK", fiber.Map{"comments": comments})
}

// POST /api/u/lessons/:id/comments
func (ctrl *CommentController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid lesson id")
	}

	var body dto.CreateCommentRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	comment, err := ctrl.Comments.Create(userID, helper.GetUserNameFromToken(c), "", lessonID, body.CommentContent, body.CommentParentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLessonNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Lesson not found")
		case errors.Is(err, service.ErrNotEnrolled):
			return fiber.NewError(fiber.StatusForbidden, "Only enrolled users can comment on a lesson")
		case errors.Is(err, service.ErrParentNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Parent comment not found")
		case errors.Is(err, service.ErrParentMismatch):
			return fiber.NewError(fiber.StatusBadRequest, "Replies must target a top-level comment on the same lesson")
		default:
			log.Println("[ERROR] create comment:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to post comment")
		}
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Comment posted", comment)
}
