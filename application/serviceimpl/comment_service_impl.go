package serviceimpl

import (
	"context"

	"heritage-archive/domain/models"
	"heritage-archive/domain/repositories"
	"heritage-archive/domain/services"
	"heritage-archive/pkg/apperror"
)

const maxCommentLength = 2000

type CommentServiceImpl struct {
	commentRepo repositories.CommentRepository
	personRepo  repositories.PersonRepository
}

func NewCommentService(commentRepo repositories.CommentRepository, personRepo repositories.PersonRepository) services.CommentService {
	return &CommentServiceImpl{
		commentRepo: commentRepo,
		personRepo:  personRepo,
	}
}

func (s *CommentServiceImpl) List(ctx context.Context, memberID string) ([]models.Comment, error) {
	if memberID == "" {
		return nil, apperror.BadRequest("member id is required")
	}
	return s.commentRepo.ListByMember(ctx, memberID)
}

// Create only accepts comments on approved persons.
func (s *CommentServiceImpl) Create(ctx context.Context, userID, memberID, content string) (*models.Comment, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("authentication required")
	}
	if memberID == "" {
		return nil, apperror.BadRequest("member id is required")
	}
	content, err := cleanContent(content, maxCommentLength)
	if err != nil {
		return nil, err
	}

	person, err := s.personRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if !person.IsApproved() {
		return nil, apperror.NotFound("person " + memberID + " not found")
	}

	comment := &models.Comment{MemberID: memberID, UserID: userID, Content: content}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentServiceImpl) Delete(ctx context.Context, actor *models.Profile, commentID string) error {
	if actor == nil {
		return apperror.Unauthorized("authentication required")
	}
	if commentID == "" {
		return apperror.BadRequest("comment id is required")
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != actor.ID && !actor.IsAdmin() {
		return apperror.Forbidden("only the author or an admin can delete this comment")
	}
	return s.commentRepo.Delete(ctx, commentID)
}
