package services

import (
	"blog-api/models"
)

func (s *ServiceTestSuite) TestTags() {
	regular := s.signUp("regular@example.com")
	admin := s.admin()

	_, err := s.tags.CreateTag(s.ctx, models.CreateTagRequest{Name: "golang"}, regular)
	s.IsType(models.ErrorForbidden{}, err)
	s.Equal("Only admins can create tags", err.Error())

	golang, err := s.tags.CreateTag(s.ctx, models.CreateTagRequest{Name: "golang"}, admin)
	s.Require().NoError(err)
	_, err = s.tags.CreateTag(s.ctx, models.CreateTagRequest{Name: "golang"}, admin)
	s.IsType(models.ErrorConflict{}, err)

	rust, err := s.tags.CreateTag(s.ctx, models.CreateTagRequest{Name: "rust"}, admin)
	s.Require().NoError(err)

	found, err := s.tags.SearchTags(s.ctx, "lang")
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal(golang.ID, found[0].ID)

	byID, err := s.tags.GetTagsByID(s.ctx, []uint{rust.ID, golang.ID, rust.ID, 404})
	s.Require().NoError(err)
	s.Len(byID, 2)

	_, err = s.tags.UpdateTag(s.ctx, models.UpdateTagRequest{ID: golang.ID, Name: "go"}, regular)
	s.Equal("Only admins can update tags", err.Error())

	renamed, err := s.tags.UpdateTag(s.ctx, models.UpdateTagRequest{ID: golang.ID, Name: "go"}, admin)
	s.Require().NoError(err)
	s.Equal("go", renamed.Name)

	_, err = s.tags.UpdateTag(s.ctx, models.UpdateTagRequest{ID: 9000, Name: "x"}, regular)
	s.IsType(models.ErrorNotFound{}, err)

	s.Equal("Only admins can delete tags", s.tags.DeleteTag(s.ctx, rust.ID, regular).Error())
	s.Require().NoError(s.tags.DeleteTag(s.ctx, rust.ID, admin))
}

func (s *ServiceTestSuite) TestDeleteTagDetachesPosts() {
	author := s.signUp("author@example.com")
	post := s.post(author, "Tagged post")

	s.Require().NoError(s.tags.DeleteTag(s.ctx, post.Tags[0].ID, s.admin()))

	reloaded, err := s.posts.GetPostByID(s.ctx, post.ID)
	s.Require().NoError(err)
	s.Empty(reloaded.Tags)
}

func (s *ServiceTestSuite) TestCategories() {
	regular := s.signUp("regular@example.com")
	admin := s.admin()

	_, err := s.categories.CreateCategory(s.ctx, models.CreateCategoryRequest{Name: "Programming"}, regular)
	s.Equal("Only admins can create categories", err.Error())

	root, err := s.categories.CreateCategory(s.ctx, models.CreateCategoryRequest{Name: "Programming"}, admin)
	s.Require().NoError(err)

	_, err = s.categories.CreateCategory(s.ctx, models.CreateCategoryRequest{Name: "Orphan", ParentID: ptr(uint(31337))}, admin)
	s.Equal("Category with id 31337 not found", err.Error())

	child, err := s.categories.CreateCategory(s.ctx, models.CreateCategoryRequest{Name: "Backend", ParentID: &root.ID}, admin)
	s.Require().NoError(err)
	s.Require().NotNil(child.Parent)
	s.Equal(root.ID, child.Parent.ID)

	_, err = s.categories.UpdateCategory(s.ctx, models.UpdateCategoryRequest{ID: root.ID, ParentID: models.Some(root.ID)}, admin)
	s.IsType(models.ErrorBadRequest{}, err)

	_, err = s.categories.UpdateCategory(s.ctx, models.UpdateCategoryRequest{ID: root.ID, ParentID: models.Some(child.ID)}, admin)
	s.IsType(models.ErrorBadRequest{}, err)

	renamed, err := s.categories.UpdateCategory(s.ctx, models.UpdateCategoryRequest{ID: child.ID, Name: ptr("Back end")}, admin)
	s.Require().NoError(err)
	s.Equal("Back end", renamed.Name)
	s.Require().NotNil(renamed.ParentID, "an absent parent_id leaves the parent alone")

	found, err := s.categories.SearchCategories(s.ctx, "Prog")
	s.Require().NoError(err)
	s.Len(found, 1)

	s.Require().NoError(s.categories.DeleteCategory(s.ctx, root.ID, admin))

	orphaned, err := s.categories.GetCategoriesByID(s.ctx, []uint{child.ID})
	s.Require().NoError(err)
	s.Require().Len(orphaned, 1)
	s.Nil(orphaned[0].ParentID)
}

func (s *ServiceTestSuite) TestUpdateCategory_MoveToRoot() {
	admin := s.admin()
	root := s.category("Programming")

	child, err := s.categories.CreateCategory(s.ctx, models.CreateCategoryRequest{Name: "Backend", ParentID: &root.ID}, admin)
	s.Require().NoError(err)
	s.Require().NotNil(child.ParentID)

	moved, err := s.categories.UpdateCategory(s.ctx, models.UpdateCategoryRequest{ID: child.ID, ParentID: models.Null[uint]()}, admin)
	s.Require().NoError(err)
	s.Nil(moved.ParentID)
	s.Nil(moved.Parent)

	_, err = s.categories.UpdateCategory(s.ctx, models.UpdateCategoryRequest{ID: child.ID, ParentID: models.Some(uint(31337))}, admin)
	s.IsType(models.ErrorNotFound{}, err)
}
