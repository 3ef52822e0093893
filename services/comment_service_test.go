package services

import (
	"blog-api/models"
)

func (s *ServiceTestSuite) TestComments() {
	author := s.signUp("author@example.com")
	reader := s.signUp("reader@example.com")
	post := s.post(author, "Commented post")

	root, err := s.comments.CreateComment(s.ctx, models.CreateCommentRequest{Content: "first!", PostID: post.ID}, reader)
	s.Require().NoError(err)
	s.Equal(reader.ID, root.AuthorID)

	reply, err := s.comments.CreateComment(s.ctx, models.CreateCommentRequest{Content: "reply", PostID: post.ID, ReplyTo: &root.ID}, author)
	s.Require().NoError(err)
	s.Equal(root.ID, *reply.ParentID)

	_, err = s.comments.CreateComment(s.ctx, models.CreateCommentRequest{Content: "nested", PostID: post.ID, ReplyTo: &reply.ID}, reader)
	s.Require().NoError(err)

	comments, err := s.comments.GetAllCommentsOfPost(s.ctx, post.ID)
	s.Require().NoError(err)
	s.Len(comments, 3)
	for _, c := range comments {
		s.Require().NotNil(c.Author)
		s.Empty(c.Author.Password)
	}

	_, err = s.comments.UpdateComment(s.ctx, models.UpdateCommentRequest{ID: root.ID, Content: "edited"}, author)
	s.Equal("You cannot update comments you don't own", err.Error())

	updated, err := s.comments.UpdateComment(s.ctx, models.UpdateCommentRequest{ID: root.ID, Content: "edited"}, reader)
	s.Require().NoError(err)
	s.Equal("edited", updated.Content)

	err = s.comments.DeleteComment(s.ctx, root.ID, author)
	s.IsType(models.ErrorForbidden{}, err)

	s.Require().NoError(s.comments.DeleteComment(s.ctx, root.ID, reader))

	comments, err = s.comments.GetAllCommentsOfPost(s.ctx, post.ID)
	s.Require().NoError(err)
	s.Empty(comments)
}

func (s *ServiceTestSuite) TestCreateComment_References() {
	author := s.signUp("author@example.com")
	post := s.post(author, "First post")
	other := s.post(author, "Second post")

	_, err := s.comments.CreateComment(s.ctx, models.CreateCommentRequest{Content: "lost", PostID: 999}, author)
	s.Equal("Post with id 999 not found", err.Error())

	_, err = s.comments.CreateComment(s.ctx, models.CreateCommentRequest{Content: "lost", PostID: post.ID, ReplyTo: ptr(uint(555))}, author)
	s.Equal("Comment with id 555 not found", err.Error())

	elsewhere, err := s.comments.CreateComment(s.ctx, models.CreateCommentRequest{Content: "elsewhere", PostID: other.ID}, author)
	s.Require().NoError(err)

	_, err = s.comments.CreateComment(s.ctx, models.CreateCommentRequest{Content: "crossed", PostID: post.ID, ReplyTo: &elsewhere.ID}, author)
	s.IsType(models.ErrorBadRequest{}, err)
}

func (s *ServiceTestSuite) TestAdminManagesAnyComment() {
	author := s.signUp("author@example.com")
	post := s.post(author, "Post")
	comment, err := s.comments.CreateComment(s.ctx, models.CreateCommentRequest{Content: "spam spam", PostID: post.ID}, author)
	s.Require().NoError(err)

	s.Require().NoError(s.comments.DeleteComment(s.ctx, comment.ID, s.admin()))

	all, err := s.comments.GetAllComments(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)
}
