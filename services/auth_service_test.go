package services

import (
	"blog-api/mailer"
	"blog-api/models"

	"golang.org/x/crypto/bcrypt"
)

func (s *ServiceTestSuite) TestSignUp() {
	user, err := s.auth.SignUp(s.ctx, models.AuthRequest{Email: "  Jane@Example.com ", Password: "secret123"})
	s.Require().NoError(err)

	s.Equal("jane@example.com", user.Email)
	s.Empty(user.Password)
	s.Require().Len(s.mail.sent, 1)
	s.Equal(mailer.TemplateWelcome, s.mail.sent[0].Template)
	s.Equal("jane@example.com", s.mail.sent[0].To)

	var stored models.User
	s.Require().NoError(s.db.First(&stored, user.ID).Error)
	s.NotEqual("secret123", stored.Password)
}

func (s *ServiceTestSuite) TestSignUp_EmailTaken() {
	s.signUp("taken@example.com")

	_, err := s.auth.SignUp(s.ctx, models.AuthRequest{Email: "taken@example.com", Password: "another123"})
	s.Require().Error(err)
	s.IsType(models.ErrorConflict{}, err)
	s.Equal(MsgEmailTaken, err.Error())
}

func (s *ServiceTestSuite) TestSignUp_MailFailureIsIgnored() {
	s.mail.err = assertErr("smtp down")

	user, err := s.auth.SignUp(s.ctx, models.AuthRequest{Email: "mailless@example.com", Password: "secret123"})
	s.Require().NoError(err)
	s.NotZero(user.ID)
}

func (s *ServiceTestSuite) TestSignIn() {
	s.signUp("reader@example.com")

	res, err := s.auth.SignIn(s.ctx, models.AuthRequest{Email: "READER@example.com", Password: "secret123"})
	s.Require().NoError(err)
	s.NotEmpty(res.Token)
	s.Empty(res.User.Password)

	user, err := s.auth.Authenticate(s.ctx, res.Token)
	s.Require().NoError(err)
	s.Equal(res.User.ID, user.ID)
}

func (s *ServiceTestSuite) TestSignIn_SameErrorForUnknownEmailAndWrongPassword() {
	s.signUp("known@example.com")

	_, wrongPassword := s.auth.SignIn(s.ctx, models.AuthRequest{Email: "known@example.com", Password: "wrong-pass"})
	_, unknownEmail := s.auth.SignIn(s.ctx, models.AuthRequest{Email: "nobody@example.com", Password: "secret123"})

	s.Require().Error(wrongPassword)
	s.Require().Error(unknownEmail)
	s.IsType(models.ErrorForbidden{}, wrongPassword)
	s.Equal(wrongPassword, unknownEmail)
	s.Equal(MsgCredentialsIncorrect, unknownEmail.Error())
}

func (s *ServiceTestSuite) TestSignIn_UnknownEmailStillComparesHash() {
	s.signUp("known@example.com")

	svc := s.auth.(*authService)
	var hashes [][]byte
	svc.compare = func(hash, password []byte) error {
		hashes = append(hashes, hash)
		return bcrypt.CompareHashAndPassword(hash, password)
	}

	_, err := s.auth.SignIn(s.ctx, models.AuthRequest{Email: "nobody@example.com", Password: "secret123"})
	s.IsType(models.ErrorForbidden{}, err)
	s.Require().Len(hashes, 1)

	cost, err := bcrypt.Cost(hashes[0])
	s.Require().NoError(err)
	s.Equal(bcrypt.MinCost, cost)

	_, err = s.auth.SignIn(s.ctx, models.AuthRequest{Email: "known@example.com", Password: "wrong-pass"})
	s.IsType(models.ErrorForbidden{}, err)
	s.Len(hashes, 2)
}

func (s *ServiceTestSuite) TestAuthenticate_Rejects() {
	_, err := s.auth.Authenticate(s.ctx, "not-a-token")
	s.IsType(models.ErrorUnauthorized{}, err)

	user := s.signUp("gone@example.com")
	res, err := s.auth.SignIn(s.ctx, models.AuthRequest{Email: "gone@example.com", Password: "secret123"})
	s.Require().NoError(err)
	s.Require().NoError(s.db.Delete(&models.User{}, user.ID).Error)

	_, err = s.auth.Authenticate(s.ctx, res.Token)
	s.IsType(models.ErrorUnauthorized{}, err)
}

func (s *ServiceTestSuite) TestUpdateMe() {
	user := s.signUp("me@example.com")
	s.signUp("other@example.com")

	updated, err := s.users.UpdateMe(s.ctx, models.UpdateUserRequest{FirstName: ptr("Jane"), LastName: ptr("Doe")}, user)
	s.Require().NoError(err)
	s.Equal("Jane", *updated.FirstName)
	s.Equal("Doe", *updated.LastName)
	s.Empty(updated.Password)

	_, err = s.users.UpdateMe(s.ctx, models.UpdateUserRequest{Email: ptr("Other@example.com")}, user)
	s.IsType(models.ErrorConflict{}, err)

	me, err := s.users.GetMe(s.ctx, user)
	s.Require().NoError(err)
	s.Equal("me@example.com", me.Email)
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
