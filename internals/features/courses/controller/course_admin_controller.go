package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"learnify_backend/internals/features/courses/dto"
	"learnify_backend/internals/features/courses/model"
	helper "learnify_backend/internals/helpers"
	"learnify_backend/internals/helpers/storage"
)

var validate = validator.New()

/*
	========================================================
	  Admin CMS controller (role=admin only, gated by route)

========================================================
*/
type CourseAdminController struct {
	DB *gorm.DB
}

func NewCourseAdminController(db *gorm.DB) *CourseAdminController {
	return &CourseAdminController{DB: db}
}

// POST /api/a/courses
func (ctrl *CourseAdminController) Create(c *fiber.Ctx) error {
	var body dto.CreateCourseRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	slug, err := helper.EnsureUniqueSlug(ctrl.DB, "courses", "course_slug", helper.GenerateSlug(body.CourseTitle))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate slug")
	}

	course := model.Course{
		CourseTitle:            body.CourseTitle,
		CourseSlug:             slug,
		CourseDescription:      body.CourseDescription,
		CourseShortDescription: body.CourseShortDescription,
		CourseCategoryID:       body.CourseCategoryID,
		CourseInstructorID:     body.CourseInstructorID,
		CourseInstructorName:   body.CourseInstructorName,
		CourseInstructorAvatar: body.CourseInstructorAvatar,
		CourseInstructorBio:    body.CourseInstructorBio,
		CoursePrice:            body.CoursePrice,
		CourseOriginalPrice:    body.CourseOriginalPrice,
		CourseCurrency:         defaultStr(body.CourseCurrency, "USD"),
		CourseDuration:         body.CourseDuration,
		CourseLevel:            defaultStr(body.CourseLevel, model.LevelBeginner),
		CourseTags:             body.CourseTags,
		CourseWhatYouWillLearn: body.CourseWhatYouWillLearn,
		CourseRequirements:     body.CourseRequirements,
		CourseIsPaid:           body.CourseIsPaid,
		CourseIsPopular:        body.CourseIsPopular,
		CourseIsNew:            body.CourseIsNew,
		CourseIsPublished:      body.CourseIsPublished,
		CourseHasCertificate:   body.CourseHasCertificate,
		CourseColorScheme:      body.CourseColorScheme,
		CoursePreviewVideoURL:  body.CoursePreviewVideoURL,
	}
	if err := ctrl.DB.Create(&course).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			return fiber.NewError(fiber.StatusConflict, "Course slug already exists")
		}
		log.Println("[ERROR] create course:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create course")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Course created", course)
}

// PUT /api/a/courses/:id
func (ctrl *CourseAdminController) Update(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
	}

	var body dto.UpdateCourseRequest
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

	updates := map[string]interface{}{}
	setStr(updates, "course_title", body.CourseTitle)
	setStr(updates, "course_description", body.CourseDescription)
	setStr(updates, "course_short_description", body.CourseShortDescription)
	setStr(updates, "course_instructor_name", body.CourseInstructorName)
	setStr(updates, "course_instructor_avatar", body.CourseInstructorAvatar)
	setStr(updates, "course_instructor_bio", body.CourseInstructorBio)
	setStr(updates, "course_currency", body.CourseCurrency)
	setStr(updates, "course_level", body.CourseLevel)
	setStr(updates, "course_color_scheme", body.CourseColorScheme)
	setStr(updates, "course_preview_video_url", body.CoursePreviewVideoURL)
	if body.CourseCategoryID != nil {
		updates["course_category_id"] = *body.CourseCategoryID
	}
	if body.CoursePrice != nil {
		updates["course_price"] = *body.CoursePrice
	}
	if body.CourseOriginalPrice != nil {
		updates["course_original_price"] = *body.CourseOriginalPrice
	}
	if body.CourseDuration != nil {
		updates["course_duration"] = *body.CourseDuration
	}
	setBool(updates, "course_is_paid", body.CourseIsPaid)
	setBool(updates, "course_is_popular", body.CourseIsPopular)
	setBool(updates, "course_is_new", body.CourseIsNew)
	setBool(updates, "course_is_published", body.CourseIsPublished)
	setBool(updates, "course_has_certificate", body.CourseHasCertificate)
	if len(body.CourseTags) > 0 {
		updates["course_tags"] = body.CourseTags
	}
	if len(body.CourseWhatYouWillLearn) > 0 {
		updates["course_what_you_will_learn"] = body.CourseWhatYouWillLearn
	}
	if len(body.CourseRequirements) > 0 {
		updates["course_requirements"] = body.CourseRequirements
	}

	if len(updates) > 0 {
		if err := ctrl.DB.Model(&course).Updates(updates).Error; err != nil {
			log.Println("[ERROR] update course:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update course")
		}
	}

	return helper.Success(c, "Course updated", course)
}

// DELETE /api/a/courses/:id
func (ctrl *CourseAdminController) Delete(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
	}

	res := ctrl.DB.Where("course_id = ?", courseID).Delete(&model.Course{})
	if res.Error != nil {
		log.Println("[ERROR] delete course:", res.Error)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete course")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Course not found")
	}
	return helper.Success(c, "Course deleted", nil)
}

// POST /api/a/courses/:id/thumbnail (multipart: file)
func (ctrl *CourseAdminController) UploadThumbnail(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
	}

	var course model.Course
	if err := ctrl.DB.Where("course_id = ?", courseID).First(&course).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Course not found")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing file field")
	}

	url, err := storage.UploadCourseThumbnail("courses", fileHeader)
	if err != nil {
		log.Println("[ERROR] thumbnail upload:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to upload thumbnail")
	}

	if err := ctrl.DB.Model(&course).Update("course_thumbnail_url", url).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save thumbnail URL")
	}

	return helper.Success(c, "Thumbnail uploaded", fiber.Map{"thumbnail_url": url})
}

func defaultStr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func setStr(m map[string]interface{}, key string, v *string) {
	if v != nil {
		m[key] = *v
	}
}

func setBool(m map[string]interface{}, key string, v *bool) {
	if v != nil {
		m[key] = *v
	}
}
