package services

import (
	"context"

	"blog-api/ability"
	"blog-api/models"
	"blog-api/repositories"
)

type CommentService interface {
	CreateComment(ctx context.Context, req models.CreateCommentRequest, user *models.User) (*models.Comment, error)
	UpdateComment(ctx context.Context, req models.UpdateCommentRequest, user *models.User) (*models.Comment, error)
	DeleteComment(ctx context.Context, id uint, user *models.User) error
	GetAllComments(ctx context.Context) ([]models.Comment, error)
	GetAllCommentsOfPost(ctx context.Context, postID uint) ([]models.Comment, error)
}

type commentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

func (s *commentService) CreateComment(ctx context.Context, req models.CreateCommentRequest, user *models.User) (*models.Comment, error) {
	if err := authorize(user, ability.Create, ability.Comment, nil); err != nil {
		return nil, err
	}

	exists, err := s.postRepo.Exists(ctx, req.PostID)
	if err != nil {
		return nil, internal(ctx, "check post failed", err, "post_id", req.PostID)
	}
	if !exists {
		return nil, notFoundWithID("Post", req.PostID)
	}

	if req.ReplyTo != nil {
		parent, err := s.commentRepo.GetByID(ctx, *req.ReplyTo)
		if err != nil {
			if repositories.IsNotFound(err) {
				return nil, notFoundWithID("Comment", *req.ReplyTo)
			}
			return nil, internal(ctx, "load comment failed", err, "comment_id", *req.ReplyTo)
		}
		if parent.PostID != req.PostID {
			return nil, models.BadRequestf("Comment with id %d belongs to another post", parent.ID)
		}
	}

	comment := &models.Comment{
		Content:  req.Content,
		AuthorID: user.ID,
		PostID:   req.PostID,
		ParentID: req.ReplyTo,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, internal(ctx, "create comment failed", err, "post_id", req.PostID, "user_id", user.ID)
	}

	return comment, nil
}

func (s *commentService) UpdateComment(ctx context.Context, req models.UpdateCommentRequest, user *models.User) (*models.Comment, error) {
	comment, err := s.load(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := authorize(user, ability.Update, ability.Comment, *comment); err != nil {
		return nil, err
	}

	if err := s.commentRepo.UpdateContent(ctx, comment.ID, req.Content); err != nil {
		return nil, internal(ctx, "update comment failed", err, "comment_id", comment.ID)
	}

	return s.load(ctx, comment.ID)
}

func (s *commentService) DeleteComment(ctx context.Context, id uint, user *models.User) error {
	comment, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if err := authorize(user, ability.Delete, ability.Comment, *comment); err != nil {
		return err
	}

	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		return internal(ctx, "delete comment failed", err, "comment_id", comment.ID)
	}
	return nil
}

func (s *commentService) GetAllComments(ctx context.Context) ([]models.Comment, error) {
	comments, err := s.commentRepo.GetAll(ctx)
	if err != nil {
		return nil, internal(ctx, "list comments failed", err)
	}
	return comments, nil
}

func (s *commentService) GetAllCommentsOfPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	comments, err := s.commentRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, internal(ctx, "list comments failed", err, "post_id", postID)
	}
	for i := range comments {
		comments[i].Author.Sanitize()
	}
	return comments, nil
}

func (s *commentService) load(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.NotFoundf("Comment not found")
		}
		return nil, internal(ctx, "load comment failed", err, "comment_id", id)
	}
	comment.Author.Sanitize()
	return comment, nil
}
