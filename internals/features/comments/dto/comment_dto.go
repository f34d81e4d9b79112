package dto

import "github.com/google/uuid"

type CreateCommentRequest struct {
	CommentContent  string     `json:"comment_content" validate:"required,min=1,max=4000"`
	CommentParentID *uuid.UUID `json:"comment_parent_id"`
}
