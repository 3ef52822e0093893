package services

import (
	"blog-api/models"
)

func (s *ServiceTestSuite) TestCreatePost() {
	author := s.signUp("author@example.com")
	req := s.postRequest("My First Title")

	post, err := s.posts.CreatePost(s.ctx, req, author)
	s.Require().NoError(err)

	s.Regexp(`^my-first-title-\d+$`, post.Slug)
	s.Equal(author.ID, post.AuthorID)
	s.False(post.IsPublished)
	s.Require().NotNil(post.Author)
	s.Empty(post.Author.Password)
	s.Require().Len(post.Tags, 1)
	s.Equal(req.Tags[0], post.Tags[0].ID)
	s.Require().Len(post.Categories, 1)
	s.Equal(req.Categories[0], post.Categories[0].ID)
	s.JSONEq(`{"blocks":[{"type":"paragraph","text":"hello"}]}`, string(post.Body))

	bySlug, err := s.posts.GetPostBySlug(s.ctx, post.Slug)
	s.Require().NoError(err)
	s.Equal(post.ID, bySlug.ID)
	s.Len(bySlug.Tags, 1)
}

func (s *ServiceTestSuite) TestCreatePost_MissingReferences() {
	author := s.signUp("author@example.com")

	req := s.postRequest("Missing tag")
	req.Tags = append(req.Tags, 9999)
	_, err := s.posts.CreatePost(s.ctx, req, author)
	s.IsType(models.ErrorNotFound{}, err)
	s.Equal("Tag with id 9999 not found", err.Error())

	req = s.postRequest("Missing category")
	req.Categories = []uint{4242}
	_, err = s.posts.CreatePost(s.ctx, req, author)
	s.Equal("Category with id 4242 not found", err.Error())

	req = s.postRequest("Missing cover")
	req.CoverImageFileID = ptr(uint(77))
	_, err = s.posts.CreatePost(s.ctx, req, author)
	s.Equal("File with id 77 not found", err.Error())
}

func (s *ServiceTestSuite) TestCreatePost_BodyMustBeObject() {
	author := s.signUp("author@example.com")

	for _, body := range []string{`{}`, `[]`, `"not json"`, `42`} {
		req := s.postRequest("Body check")
		req.Body = []byte(body)
		_, err := s.posts.CreatePost(s.ctx, req, author)
		s.IsType(models.ErrorBadRequest{}, err, body)
	}

	req := s.postRequest("Body as string")
	req.Body = []byte(`"{\"text\":\"wrapped\"}"`)
	post, err := s.posts.CreatePost(s.ctx, req, author)
	s.Require().NoError(err)
	s.JSONEq(`{"text":"wrapped"}`, string(post.Body))
}

func (s *ServiceTestSuite) TestCreatePost_Anonymous() {
	_, err := s.posts.CreatePost(s.ctx, s.postRequest("No user"), nil)
	s.IsType(models.ErrorForbidden{}, err)
}

func (s *ServiceTestSuite) TestUpdatePost_Ownership() {
	owner := s.signUp("owner@example.com")
	other := s.signUp("other@example.com")
	post := s.post(owner, "Original name")

	_, err := s.posts.UpdatePost(s.ctx, models.UpdatePostRequest{ID: post.ID, Name: ptr("Hijacked")}, other)
	s.IsType(models.ErrorForbidden{}, err)
	s.Equal("You cannot update posts you don't own", err.Error())

	newTag := s.tag("fresh")
	updated, err := s.posts.UpdatePost(s.ctx, models.UpdatePostRequest{
		ID:          post.ID,
		Name:        ptr("Renamed post"),
		IsPublished: ptr(true),
		Tags:        []uint{newTag.ID},
	}, owner)
	s.Require().NoError(err)
	s.Equal("Renamed post", updated.Name)
	s.Regexp(`^renamed-post-\d+$`, updated.Slug)
	s.True(updated.IsPublished)
	s.Require().Len(updated.Tags, 1)
	s.Equal(newTag.ID, updated.Tags[0].ID)
	s.Len(updated.Categories, 1)
	s.Equal(post.Summary, updated.Summary)
}

func (s *ServiceTestSuite) TestUpdatePost_MissingPostIsNotFoundBeforeForbidden() {
	stranger := s.signUp("stranger@example.com")

	_, err := s.posts.UpdatePost(s.ctx, models.UpdatePostRequest{ID: 123, Name: ptr("Whatever")}, stranger)
	s.IsType(models.ErrorNotFound{}, err)

	err = s.posts.DeletePost(s.ctx, 123, stranger)
	s.IsType(models.ErrorNotFound{}, err)
}

func (s *ServiceTestSuite) TestDeletePost_PublishedNeedsAdmin() {
	owner := s.signUp("owner@example.com")
	post := s.post(owner, "Published post")
	_, err := s.posts.UpdatePost(s.ctx, models.UpdatePostRequest{ID: post.ID, IsPublished: ptr(true)}, owner)
	s.Require().NoError(err)

	err = s.posts.DeletePost(s.ctx, post.ID, owner)
	s.IsType(models.ErrorForbidden{}, err)
	s.Equal("Published posts can only be deleted by admins", err.Error())

	_, err = s.comments.CreateComment(s.ctx, models.CreateCommentRequest{Content: "nice post", PostID: post.ID}, owner)
	s.Require().NoError(err)

	s.Require().NoError(s.posts.DeletePost(s.ctx, post.ID, s.admin()))

	_, err = s.posts.GetPostByID(s.ctx, post.ID)
	s.IsType(models.ErrorNotFound{}, err)

	comments, err := s.comments.GetAllCommentsOfPost(s.ctx, post.ID)
	s.Require().NoError(err)
	s.Empty(comments)

	var joins int64
	s.Require().NoError(s.db.Table("post_tags").Where("post_id = ?", post.ID).Count(&joins).Error)
	s.Zero(joins)
}

func (s *ServiceTestSuite) TestDeletePost_OwnDraft() {
	owner := s.signUp("owner@example.com")
	other := s.signUp("other@example.com")
	post := s.post(owner, "Draft post")

	err := s.posts.DeletePost(s.ctx, post.ID, other)
	s.Equal("You cannot delete posts you don't own", err.Error())

	s.Require().NoError(s.posts.DeletePost(s.ctx, post.ID, owner))
}

func (s *ServiceTestSuite) TestGetAllPosts() {
	alice := s.signUp("alice@example.com")
	bob := s.signUp("bob@example.com")

	first := s.post(alice, "Alice one")
	s.post(alice, "Alice two")
	s.post(bob, "Bob one")

	_, err := s.posts.UpdatePost(s.ctx, models.UpdatePostRequest{ID: first.ID, IsPublished: ptr(true)}, alice)
	s.Require().NoError(err)

	all, total, err := s.posts.GetAllPosts(s.ctx, models.PostListParams{})
	s.Require().NoError(err)
	s.EqualValues(3, total)
	s.Len(all, 3)

	byAlice, total, err := s.posts.GetAllPosts(s.ctx, models.PostListParams{AuthorID: alice.ID, Page: 1, Limit: 1})
	s.Require().NoError(err)
	s.EqualValues(2, total)
	s.Len(byAlice, 1)

	published, total, err := s.posts.GetAllPosts(s.ctx, models.PostListParams{IsPublished: ptr(true)})
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Equal(first.ID, published[0].ID)

	byTag, total, err := s.posts.GetAllPosts(s.ctx, models.PostListParams{TagID: first.Tags[0].ID})
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Equal(first.ID, byTag[0].ID)

	byCategory, _, err := s.posts.GetAllPosts(s.ctx, models.PostListParams{CategoryID: first.Categories[0].ID})
	s.Require().NoError(err)
	s.Len(byCategory, 1)
}
